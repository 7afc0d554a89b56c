package healthsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testHealth   = Credentials{ClientID: "health-client", ClientSecret: "health-secret"}
	testProvider = Credentials{ClientID: "provider-client", ClientSecret: "provider-secret"}
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.URL, 2*time.Second)
}

func TestExchangeAuthorizationCode(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "https://app.example.com/cb", r.PostForm.Get("redirect_uri"))
		require.Equal(t, "health-client", r.PostForm.Get("client_id"))
		require.Equal(t, "health-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"access_token":"health-token","expires_in":3600}}`)
	}))

	res, err := c.ExchangeAuthorizationCode(context.Background(), "the-code", "https://app.example.com/cb", testHealth)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, http.StatusOK, res.Status)
	require.Equal(t, "health-token", res.AccessToken)
}

func TestExchangeAuthorizationCode_NoToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"ok without token", http.StatusOK, `{"data":{}}`},
		{"empty token", http.StatusOK, `{"data":{"access_token":""}}`},
		{"non-string token", http.StatusOK, `{"data":{"access_token":42}}`},
		{"error status", http.StatusBadRequest, `{"message":"invalid code"}`},
		{"plain text", http.StatusBadGateway, `upstream exploded`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			res, err := c.ExchangeAuthorizationCode(context.Background(), "code", "cb", testHealth)
			require.NoError(t, err)
			require.False(t, res.OK())
			require.Equal(t, tt.status, res.Status)
		})
	}
}

func TestExchangeAuthorizationCode_TextBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	}))

	res, err := c.ExchangeAuthorizationCode(context.Background(), "code", "cb", testHealth)
	require.NoError(t, err)
	require.Equal(t, "<html>maintenance</html>", res.Body)
}

func TestExchangeForProviderToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/services/token", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, map[string]string{
			"client_id":  "provider-client",
			"secret_key": "provider-secret",
			"token_by":   "Health ID",
			"token":      "health-token",
		}, req)

		_, _ = io.WriteString(w, `{"data":{"access_token":"provider-token"}}`)
	}))

	res, err := c.ExchangeForProviderToken(context.Background(), "health-token", testProvider)
	require.NoError(t, err)
	require.Equal(t, "provider-token", res.AccessToken)
}

func TestFetchProfile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/services/profile", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("position_type"))
		require.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		require.Equal(t, "provider-client", r.Header.Get("client-id"))
		require.Equal(t, "provider-secret", r.Header.Get("secret-key"))

		_, _ = io.WriteString(w, `{"data":{"provider_id":"P123","name_th":"สมชาย"}}`)
	}))

	res, err := c.FetchProfile(context.Background(), "provider-token", testProvider)
	require.NoError(t, err)
	require.True(t, res.OK())

	data, ok := ProfileData(res.Body)
	require.True(t, ok)
	require.Equal(t, "P123", data["provider_id"])
	require.Equal(t, "สมชาย", data["name_th"])
}

func TestFetchProfile_ErrorStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"expired"}`)
	}))

	res, err := c.FetchProfile(context.Background(), "provider-token", testProvider)
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewClient(srv.URL, srv.URL, 50*time.Millisecond)

	_, err := c.ExchangeAuthorizationCode(context.Background(), "code", "cb", testHealth)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Transport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, base, time.Second)

	_, err := c.ExchangeForProviderToken(context.Background(), "token", testProvider)
	require.ErrorIs(t, err, ErrTransport)
	require.NotErrorIs(t, err, ErrTimeout)
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	c := NewClient("https://health.example.com/", "", 0)
	require.Equal(t, DefaultProviderBaseURL, c.ProviderBaseURL)
	require.Equal(t, DefaultTimeout, c.Timeout)

	raw := c.AuthorizeURL("health-client", "https://app.example.com/cb", "state-1")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	require.Equal(t, "health.example.com", u.Host)
	require.Equal(t, "/oauth/redirect", u.Path)

	q := u.Query()
	require.Equal(t, "health-client", q.Get("client_id"))
	require.Equal(t, "https://app.example.com/cb", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "state-1", q.Get("state"))
	require.False(t, q.Has("scope"))
}

func TestNewState(t *testing.T) {
	t.Parallel()

	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
