package federation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	baseURL := setupFederationContainer(t, newFakeUpstream(t))

	health := assertHealthy(t, get(t, baseURL+"/livez"))
	require.NotEmpty(t, health.Version)
}

func TestReadyzEndpoint(t *testing.T) {
	baseURL := setupFederationContainer(t, newFakeUpstream(t))

	health := assertHealthy(t, get(t, baseURL+"/readyz"))
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Sealer)
}

func TestSwaggerServed(t *testing.T) {
	baseURL := setupFederationContainer(t, newFakeUpstream(t))

	resp := get(t, baseURL+"/swagger/doc.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
