package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

const maxTokenRequestBytes = 64 << 10

// TokenProxyHandler serves POST /v1/health-id/token.
type TokenProxyHandler struct {
	Client *healthsdk.Client
}

// ServeHTTP godoc
//
//	@Summary		Health ID token proxy
//	@Description	Forwards the request body and Content-Type unchanged to the Health ID token endpoint.
//	@Description	A JSON answer carrying data.access_token is flattened so access_token sits at the top level.
//	@Description	Any other answer is relayed with the upstream status.
//	@Tags			Health ID
//	@Accept			application/x-www-form-urlencoded
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	healthsdk.TokenResponse	"access_token, token_type, refresh_token, expires_in, scope"
//	@Failure		400	{object}	healthsdk.OAuth2Error	"error, error_description"
//	@Failure		502	{object}	healthsdk.OAuth2Error	"error, error_description"
//	@Failure		504	{object}	healthsdk.OAuth2Error	"error, error_description"
//	@Router			/v1/health-id/token [post].
func (h *TokenProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTokenRequestBytes))
	if err != nil {
		healthsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.Client.ProxyToken(r.Context(), r.Header.Get("Content-Type"), body)
	if err != nil {
		logger := slogx.FromContext(r.Context())
		if errors.Is(err, healthsdk.ErrTimeout) {
			logger.Warn("token proxy upstream failed", "reason", "timeout", "error", err.Error())
			healthsdk.NewOAuth2Error(http.StatusGatewayTimeout, healthsdk.ErrorCodeTemporarilyUnavailable,
				"the identity provider did not answer in time").WriteError(w)
			return
		}
		logger.Warn("token proxy upstream failed", "reason", "transport", "error", err.Error())
		healthsdk.ErrUpstreamUnavailable.WriteError(w)
		return
	}

	if !res.IsJSON {
		httpx.WriteText(w, res.Status, res.ContentType, string(res.Raw))
		return
	}
	httpx.WriteJSON(w, res.Status, res.Body)
}
