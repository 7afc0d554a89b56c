package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseFile:         ":memory:",
		HealthBaseURL:        "http://127.0.0.1:1",
		ProviderBaseURL:      "http://127.0.0.1:1",
		SessionSecret:        "s3cret",
		UpstreamTimeout:      time.Second,
		LandingPath:          "/provider-id/profile",
		SessionMaxAge:        time.Hour,
		StateBinding:         true,
	}
}

func TestNewWiresRoutes(t *testing.T) {
	application, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.NotNil(t, application.stateBinder)
	require.NotNil(t, application.callbackService.StateVerifier)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/provider-id/debug?code=x", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// No credentials configured, so the callback ends in missing_env.
	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/provider-id/callback?code=abc", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=missing_env")
}

func TestNewWithoutStateBinding(t *testing.T) {
	cfg := testConfig()
	cfg.StateBinding = false

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.Nil(t, application.stateBinder)
	require.Nil(t, application.callbackService.StateVerifier)
}
