package federation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup, a fake Health ID / Provider ID upstream reachable from the
 * container, and small HTTP helpers for the federation end-to-end tests.
 */

const (
	testImageName = "providerid-federation-test:latest"

	healthClientID     = "e2e-health-client"
	healthClientSecret = "e2e-health-secret"
	providerClientID   = "e2e-provider-client"
	providerSecret     = "e2e-provider-secret"
	sessionSecret      = "e2e-session-secret"
	landingPath        = "/provider-id/profile"
)

// TestMain builds the Docker image once before all tests and removes it afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Federation Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Federation Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/federation/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// fakeUpstream plays both Health ID and Provider ID.
type fakeUpstream struct {
	srv *httptest.Server

	healthCalls   atomic.Int32
	providerCalls atomic.Int32
	profileCalls  atomic.Int32
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	u := &fakeUpstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *fakeUpstream) port(t *testing.T) int {
	t.Helper()
	parsed, err := url.Parse(u.srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return port
}

func (u *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/token":
		u.healthCalls.Add(1)
		if err := r.ParseForm(); err != nil || r.PostForm.Get("client_id") != healthClientID {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"invalid_client"}`)
			return
		}
		if r.PostForm.Get("code") == "bad-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"access_token":"e2e-health-token","expires_in":3600}}`)
	case "/api/v1/services/token":
		u.providerCalls.Add(1)
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["token"] != "e2e-health-token" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"bad token"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"access_token":"e2e-provider-token"}}`)
	case "/api/v1/services/profile":
		u.profileCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer e2e-provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"bad token"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"provider_id":"E2E-1","name_th":"ผู้ทดสอบ","organization":[{"hcode":"10001"}]}}`)
	default:
		http.NotFound(w, r)
	}
}

type containerOption func(env map[string]string)

func withoutCredentials() containerOption {
	return func(env map[string]string) {
		delete(env, "HEALTH_CLIENT_ID")
		delete(env, "PROVIDER_CLIENT_ID")
	}
}

func withDefaultRateLimits() containerOption {
	return func(env map[string]string) {
		for k := range env {
			if len(k) > 10 && k[:10] == "RATELIMIT_" {
				delete(env, k)
			}
		}
	}
}

// setupFederationContainer starts the service pointed at up and returns its base URL.
func setupFederationContainer(t *testing.T, up *fakeUpstream, opts ...containerOption) string {
	t.Helper()
	ctx := context.Background()

	upstreamURL := fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, up.port(t))
	env := map[string]string{
		"ENV":                        "test",
		"LOG_LEVEL":                  "info",
		"LOG_FORMAT":                 "json",
		"HEALTH_BASE_URL":            upstreamURL,
		"PROVIDER_BASE_URL":          upstreamURL,
		"HEALTH_CLIENT_ID":           healthClientID,
		"HEALTH_CLIENT_SECRET":       healthClientSecret,
		"PROVIDER_CLIENT_ID":         providerClientID,
		"PROVIDER_CLIENT_SECRET":     providerSecret,
		"PROVIDER_ID_SESSION_SECRET": sessionSecret,
		"PROFILE_LANDING_PATH":       landingPath,
		"UPSTREAM_TIMEOUT":           "5s",
		"DEBUG_EXCHANGE":             "true",
		// Tests make many rapid requests from one address.
		"RATELIMIT_EXCHANGE_REQUESTS": "1000",
		"RATELIMIT_EXCHANGE_BURST":    "1000",
		"RATELIMIT_SESSION_REQUESTS":  "1000",
		"RATELIMIT_SESSION_BURST":     "1000",
	}
	for _, opt := range opts {
		opt(env)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:           testImageName,
			ExposedPorts:    []string{"8080/tcp"},
			HostAccessPorts: []int{up.port(t)},
			Env:             env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// browser is an HTTP client that never follows redirects.
func browser() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, target, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := browser().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func redirectTarget(t *testing.T, resp *http.Response) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	return loc
}

func decodeProfileRead(t *testing.T, resp *http.Response) healthsdk.ProfileReadResponse {
	t.Helper()
	var body healthsdk.ProfileReadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func assertHealthy(t *testing.T, resp *http.Response) healthsdk.HealthResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health healthsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	return health
}
