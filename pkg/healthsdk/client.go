package healthsdk

import (
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHealthBaseURL   = "https://moph.id.th"
	DefaultProviderBaseURL = "https://provider.id.th"
	DefaultTimeout         = 10 * time.Second

	// TokenByHealthID names the origin of the first-party token when
	// exchanging it at Provider ID.
	TokenByHealthID = "Health ID"
)

const (
	pathAuthorize     = "/oauth/redirect"
	pathHealthToken   = "/api/v1/token"
	pathProviderToken = "/api/v1/services/token"
	pathProfile       = "/api/v1/services/profile"

	// maxBodyBytes caps how much of an upstream response is buffered.
	maxBodyBytes = 1 << 20
)

// Credentials is a client id and secret registered with one upstream.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both halves are set.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Client talks to Health ID and Provider ID. It holds no per-flow state and
// is safe for concurrent use.
type Client struct {
	HealthBaseURL   string
	ProviderBaseURL string
	HTTPClient      *http.Client

	// Timeout bounds every outbound call on top of the caller's context.
	Timeout time.Duration
}

// NewClient creates a client for the given upstream hosts. Empty base URLs
// fall back to the production hosts.
func NewClient(healthBaseURL, providerBaseURL string, timeout time.Duration) *Client {
	if healthBaseURL == "" {
		healthBaseURL = DefaultHealthBaseURL
	}
	if providerBaseURL == "" {
		providerBaseURL = DefaultProviderBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		HealthBaseURL:   strings.TrimSuffix(healthBaseURL, "/"),
		ProviderBaseURL: strings.TrimSuffix(providerBaseURL, "/"),
		HTTPClient: &http.Client{
			// Backstop in case a caller passes a context without a deadline.
			Timeout: timeout + time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Timeout: timeout,
	}
}
