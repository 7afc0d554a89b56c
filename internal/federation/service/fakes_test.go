package service

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
)

// fakeExchanger answers the three upstream calls from canned results and
// records which ones were made.
type fakeExchanger struct {
	mu    sync.Mutex
	calls []string

	health   *healthsdk.TokenExchangeResult
	provider *healthsdk.TokenExchangeResult
	profile  *healthsdk.ProfileResult

	healthErr   error
	providerErr error
	profileErr  error

	panicOn string

	gotCode          string
	gotRedirectURI   string
	gotHealthToken   string
	gotProviderToken string
}

func happyExchanger() *fakeExchanger {
	return &fakeExchanger{
		health: &healthsdk.TokenExchangeResult{
			Status:      200,
			Body:        map[string]any{"data": map[string]any{"access_token": "health-token"}},
			AccessToken: "health-token",
		},
		provider: &healthsdk.TokenExchangeResult{
			Status:      200,
			Body:        map[string]any{"data": map[string]any{"access_token": "provider-token"}},
			AccessToken: "provider-token",
		},
		profile: &healthsdk.ProfileResult{
			Status: 200,
			Body: map[string]any{"data": map[string]any{
				"provider_id": "P123",
				"name_th":     "ทดสอบ",
			}},
		},
	}
}

func (f *fakeExchanger) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.panicOn == call {
		panic("boom in " + call)
	}
}

func (f *fakeExchanger) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeExchanger) ExchangeAuthorizationCode(_ context.Context, code, redirectURI string, _ healthsdk.Credentials) (*healthsdk.TokenExchangeResult, error) {
	f.record("health_token")
	f.gotCode = code
	f.gotRedirectURI = redirectURI
	return f.health, f.healthErr
}

func (f *fakeExchanger) ExchangeForProviderToken(_ context.Context, token string, _ healthsdk.Credentials) (*healthsdk.TokenExchangeResult, error) {
	f.record("provider_token")
	f.gotHealthToken = token
	return f.provider, f.providerErr
}

func (f *fakeExchanger) FetchProfile(_ context.Context, token string, _ healthsdk.Credentials) (*healthsdk.ProfileResult, error) {
	f.record("provider_profile")
	f.gotProviderToken = token
	return f.profile, f.profileErr
}

type stubVerifier struct{ err error }

func (v stubVerifier) Verify(string, string) error { return v.err }
