package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

// State is a position in the callback pipeline. The pipeline is linear:
// every state either advances to the next one or falls into StateErrored.
type State int

const (
	StateStart State = iota
	StateCodeReceived
	StateFirstTokenObtained
	StateSecondTokenObtained
	StateProfileFetched
	StateSealed
	StateDone
	StateErrored
)

var stateNames = [...]string{
	StateStart:               "start",
	StateCodeReceived:        "code_received",
	StateFirstTokenObtained:  "first_token_obtained",
	StateSecondTokenObtained: "second_token_obtained",
	StateProfileFetched:      "profile_fetched",
	StateSealed:              "sealed",
	StateDone:                "done",
	StateErrored:             "errored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether the pipeline has stopped.
func (s State) Terminal() bool { return s == StateDone || s == StateErrored }

// ErrorTag is the failure reason carried back to the browser in the error
// query parameter. It never contains internal error text.
type ErrorTag string

const (
	TagMissingCode                ErrorTag = "missing_code"
	TagMissingEnv                 ErrorTag = "missing_env"
	TagStateMismatch              ErrorTag = "state_mismatch"
	TagHealthTokenMissing         ErrorTag = "health_token_missing"
	TagProviderTokenMissing       ErrorTag = "provider_token_missing"
	TagProviderProfileFetchFailed ErrorTag = "provider_profile_fetch_failed"
	TagUnknownError               ErrorTag = "unknown_error"
)

// Exchanger performs the three upstream calls of a federated sign-in.
// *healthsdk.Client implements it.
type Exchanger interface {
	ExchangeAuthorizationCode(ctx context.Context, code, redirectURI string, health healthsdk.Credentials) (*healthsdk.TokenExchangeResult, error)
	ExchangeForProviderToken(ctx context.Context, healthAccessToken string, provider healthsdk.Credentials) (*healthsdk.TokenExchangeResult, error)
	FetchProfile(ctx context.Context, providerAccessToken string, provider healthsdk.Credentials) (*healthsdk.ProfileResult, error)
}

// Sealer turns a profile into an opaque cookie value. *cryptox.Sealer
// implements it.
type Sealer interface {
	Seal(v any) (string, error)
}

// StateVerifier checks the state parameter against the binding cookie set
// when the flow started. *jwtx.StateBinder implements it.
type StateVerifier interface {
	Verify(binding, state string) error
}

// IdentityRecorder keeps a local record of who signed in.
type IdentityRecorder interface {
	RecordIdentity(ctx context.Context, profile any) (domain.Identity, error)
}

// Flow is one run of the callback pipeline.
type Flow struct {
	State State

	Params       domain.CallbackParameters
	StateBinding string // value of the state cookie, if any
	RedirectURI  string // must equal the one sent to Health ID

	healthToken   string
	providerToken string
	profile       any

	// Sealed is the session cookie value, set once State reaches StateSealed.
	Sealed string

	// Tag is set when State is StateErrored.
	Tag ErrorTag

	// Err is the internal cause of a failure, for logs only.
	Err error
}

// NewFlow starts a flow for one callback request.
func NewFlow(params domain.CallbackParameters, stateBinding, redirectURI string) *Flow {
	return &Flow{
		State:        StateStart,
		Params:       params,
		StateBinding: stateBinding,
		RedirectURI:  redirectURI,
	}
}

func (f *Flow) fail(tag ErrorTag, err error) {
	f.State = StateErrored
	f.Tag = tag
	f.Err = err
}

// CallbackService drives a Health ID callback through the token exchanges,
// the profile fetch and sealing.
type CallbackService struct {
	Exchanger Exchanger
	Sealer    Sealer

	Health   healthsdk.Credentials
	Provider healthsdk.Credentials

	// StateVerifier is optional. When nil the state parameter is echoed but
	// not checked.
	StateVerifier StateVerifier

	// Identities is optional. Recording is best effort and never fails the
	// flow.
	Identities IdentityRecorder
}

// Run advances f until it is Done or Errored. A panic in any step ends the
// flow with TagUnknownError.
func (s *CallbackService) Run(ctx context.Context, f *Flow) {
	logger := slogx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("callback pipeline panicked", "state", f.State.String(), "panic", r)
			f.fail(TagUnknownError, fmt.Errorf("panic in state %s: %v", f.State, r))
		}
	}()

	for !f.State.Terminal() {
		from := f.State
		s.Step(ctx, f)
		logger.Debug("callback transition", "from", from.String(), "to", f.State.String())
	}

	if f.State == StateErrored {
		attrs := []any{"tag", string(f.Tag)}
		if f.Err != nil {
			attrs = append(attrs, "error", f.Err.Error())
		}
		logger.Warn("provider id callback failed", attrs...)
	}
}

// Step performs exactly one transition from f.State.
func (s *CallbackService) Step(ctx context.Context, f *Flow) {
	switch f.State {
	case StateStart:
		s.start(f)
	case StateCodeReceived:
		s.exchangeCode(ctx, f)
	case StateFirstTokenObtained:
		s.exchangeProviderToken(ctx, f)
	case StateSecondTokenObtained:
		s.fetchProfile(ctx, f)
	case StateProfileFetched:
		s.seal(f)
	case StateSealed:
		s.finish(ctx, f)
	case StateDone, StateErrored:
	default:
		f.fail(TagUnknownError, fmt.Errorf("unknown state %d", int(f.State)))
	}
}

// start validates the callback before any network call is made.
func (s *CallbackService) start(f *Flow) {
	switch {
	case f.Params.Error != "":
		f.fail(ErrorTag(f.Params.Error), errors.New("authorization server returned an error"))
		return
	case f.Params.Code == "":
		f.fail(TagMissingCode, errors.New("callback has neither code nor error"))
		return
	case !s.Health.Complete() || !s.Provider.Complete():
		f.fail(TagMissingEnv, errors.New("client credentials are not configured"))
		return
	}

	if s.StateVerifier != nil {
		if err := s.StateVerifier.Verify(f.StateBinding, f.Params.State); err != nil {
			f.fail(TagStateMismatch, err)
			return
		}
	}

	f.State = StateCodeReceived
}

func (s *CallbackService) exchangeCode(ctx context.Context, f *Flow) {
	res, err := s.Exchanger.ExchangeAuthorizationCode(ctx, f.Params.Code, f.RedirectURI, s.Health)
	if err != nil {
		logUpstreamError(ctx, "health_token", err)
		f.fail(TagHealthTokenMissing, err)
		return
	}
	if !res.OK() {
		logUpstreamBody(ctx, "health_token", res.Status, res.Body)
		f.fail(TagHealthTokenMissing, fmt.Errorf("health id token endpoint returned %d without access token", res.Status))
		return
	}

	f.healthToken = res.AccessToken
	f.State = StateFirstTokenObtained
}

func (s *CallbackService) exchangeProviderToken(ctx context.Context, f *Flow) {
	res, err := s.Exchanger.ExchangeForProviderToken(ctx, f.healthToken, s.Provider)
	if err != nil {
		logUpstreamError(ctx, "provider_token", err)
		f.fail(TagProviderTokenMissing, err)
		return
	}
	if !res.OK() {
		logUpstreamBody(ctx, "provider_token", res.Status, res.Body)
		f.fail(TagProviderTokenMissing, fmt.Errorf("provider id token endpoint returned %d without access token", res.Status))
		return
	}

	f.providerToken = res.AccessToken
	f.State = StateSecondTokenObtained
}

func (s *CallbackService) fetchProfile(ctx context.Context, f *Flow) {
	res, err := s.Exchanger.FetchProfile(ctx, f.providerToken, s.Provider)
	if err != nil {
		logUpstreamError(ctx, "provider_profile", err)
		f.fail(TagProviderProfileFetchFailed, err)
		return
	}
	if !res.OK() {
		logUpstreamBody(ctx, "provider_profile", res.Status, res.Body)
		f.fail(TagProviderProfileFetchFailed, fmt.Errorf("provider id profile endpoint returned %d", res.Status))
		return
	}

	f.profile = res.Body
	f.State = StateProfileFetched
}

// seal encrypts the profile as received. Redaction applies to logs only.
func (s *CallbackService) seal(f *Flow) {
	sealed, err := s.Sealer.Seal(f.profile)
	if err != nil {
		f.fail(TagUnknownError, fmt.Errorf("seal profile: %w", err))
		return
	}

	f.Sealed = sealed
	f.State = StateSealed
}

func (s *CallbackService) finish(ctx context.Context, f *Flow) {
	if s.Identities != nil {
		if _, err := s.Identities.RecordIdentity(ctx, f.profile); err != nil {
			slogx.FromContext(ctx).Warn("failed to record federated identity", "error", err)
		}
	}

	f.healthToken = ""
	f.providerToken = ""
	f.State = StateDone
}

func logUpstreamError(ctx context.Context, step string, err error) {
	reason := "transport"
	if errors.Is(err, healthsdk.ErrTimeout) {
		reason = "timeout"
	}
	slogx.FromContext(ctx).Warn("upstream call failed",
		"step", step,
		"reason", reason,
		"error", err.Error(),
	)
}

func logUpstreamBody(ctx context.Context, step string, status int, body any) {
	slogx.FromContext(ctx).Warn("upstream returned no usable result",
		"step", step,
		"status", status,
		slogx.Redacted("body", body),
	)
}
