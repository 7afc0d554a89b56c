package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/redact"
)

// UpstreamCall is one upstream response as shown in a debug report.
type UpstreamCall struct {
	Status int `json:"status"`
	Body   any `json:"body"`
}

// DebugReport is the redacted trace of a full exchange.
type DebugReport struct {
	OK            bool          `json:"ok"`
	Error         string        `json:"error,omitempty"`
	RedirectURI   string        `json:"redirect_uri,omitempty"`
	HealthToken   *UpstreamCall `json:"health_token,omitempty"`
	ProviderToken *UpstreamCall `json:"provider_token,omitempty"`
	Profile       *UpstreamCall `json:"provider_profile,omitempty"`

	// StatusCode is the status the report should be served with.
	StatusCode int `json:"-"`
}

// DebugExchange runs the three upstream calls without sealing anything and
// reports every response with tokens and secrets masked.
func (s *CallbackService) DebugExchange(ctx context.Context, code, redirectURI string) *DebugReport {
	if code == "" {
		return &DebugReport{Error: string(TagMissingCode), StatusCode: http.StatusBadRequest}
	}
	if !s.Health.Complete() || !s.Provider.Complete() {
		return &DebugReport{Error: string(TagMissingEnv), StatusCode: http.StatusInternalServerError}
	}

	report := &DebugReport{RedirectURI: redirectURI}
	fail := func(tag ErrorTag, err error) *DebugReport {
		report.Error = string(tag)
		report.StatusCode = http.StatusBadGateway
		if errors.Is(err, healthsdk.ErrTimeout) {
			report.StatusCode = http.StatusGatewayTimeout
		}
		return report
	}

	health, err := s.Exchanger.ExchangeAuthorizationCode(ctx, code, redirectURI, s.Health)
	if err != nil {
		return fail(TagHealthTokenMissing, err)
	}
	report.HealthToken = &UpstreamCall{Status: health.Status, Body: redact.Value(health.Body)}
	if !health.OK() {
		return fail(TagHealthTokenMissing, nil)
	}

	provider, err := s.Exchanger.ExchangeForProviderToken(ctx, health.AccessToken, s.Provider)
	if err != nil {
		return fail(TagProviderTokenMissing, err)
	}
	report.ProviderToken = &UpstreamCall{Status: provider.Status, Body: redact.Value(provider.Body)}
	if !provider.OK() {
		return fail(TagProviderTokenMissing, nil)
	}

	profile, err := s.Exchanger.FetchProfile(ctx, provider.AccessToken, s.Provider)
	if err != nil {
		return fail(TagProviderProfileFetchFailed, err)
	}
	report.Profile = &UpstreamCall{Status: profile.Status, Body: redact.Value(profile.Body)}

	if !profile.OK() {
		return fail(TagProviderProfileFetchFailed, nil)
	}

	report.OK = true
	report.StatusCode = http.StatusOK
	return report
}
