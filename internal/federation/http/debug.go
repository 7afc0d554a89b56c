package http

import (
	"net/http"

	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
)

// DebugHandler serves GET /v1/provider-id/debug. It is only mounted when
// DEBUG_EXCHANGE is enabled.
type DebugHandler struct {
	flowSettings

	CallbackService *service.CallbackService
}

// ServeHTTP godoc
//
//	@Summary		Debug the upstream exchange
//	@Description	Runs both token exchanges and the profile fetch for a code and returns every upstream response
//	@Description	with tokens and secrets masked. Nothing is sealed and no cookie is set.
//	@Tags			Provider ID
//	@Produce		json
//	@Param			code	query		string				true	"Authorization code"
//	@Param			state	query		string				false	"Ignored"
//	@Success		200		{object}	service.DebugReport
//	@Failure		400		{object}	service.DebugReport	"missing_code"
//	@Failure		500		{object}	service.DebugReport	"missing_env"
//	@Failure		502		{object}	service.DebugReport	"upstream returned no token or profile"
//	@Failure		504		{object}	service.DebugReport	"upstream timed out"
//	@Router			/v1/provider-id/debug [get].
func (h *DebugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := h.CallbackService.DebugExchange(r.Context(), r.URL.Query().Get("code"), h.callbackURL(r))
	httpx.WriteJSON(w, report.StatusCode, report)
}
