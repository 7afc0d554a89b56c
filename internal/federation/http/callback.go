package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
)

// CallbackHandler serves GET /v1/provider-id/callback.
type CallbackHandler struct {
	flowSettings

	CallbackService *service.CallbackService
	SessionMaxAge   time.Duration
}

// ServeHTTP godoc
//
//	@Summary		Health ID callback
//	@Description	Exchanges the authorization code for a Health ID token, exchanges that for a Provider ID token,
//	@Description	fetches the Provider ID profile and stores it sealed in an httpOnly cookie.
//	@Description	Always answers with a redirect to the profile landing page. On failure the redirect carries
//	@Description	error (missing_code, missing_env, state_mismatch, health_token_missing, provider_token_missing,
//	@Description	provider_profile_fetch_failed, unknown_error or the error sent by Health ID) and the original state.
//	@Tags			Provider ID
//	@Param			code	query	string	false	"Authorization code"
//	@Param			state	query	string	false	"State echoed by Health ID"
//	@Param			error	query	string	false	"Error reported by Health ID"
//	@Success		302		"Location: landing page"
//	@Header			302		{string}	Set-Cookie	"provider_id_profile (on success only)"
//	@Router			/v1/provider-id/callback [get].
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	params := domain.ParseCallbackParameters(r.URL.Query())

	binding := httpx.CookieValue(r, StateCookieName)
	if binding != "" {
		httpx.ClearCookie(w, StateCookieName, h.secureCookies)
	}

	flow := service.NewFlow(params, binding, h.callbackURL(r))
	h.CallbackService.Run(r.Context(), flow)

	if flow.State != service.StateDone {
		http.Redirect(w, r, h.landingURL(flow.Tag, params.State), http.StatusFound)
		return
	}

	httpx.SetCookie(w, SessionCookieName, flow.Sealed, httpx.CookieOptions{
		Secure: h.secureCookies,
		MaxAge: h.SessionMaxAge,
	})
	http.Redirect(w, r, h.landingURL("", ""), http.StatusFound)
}
