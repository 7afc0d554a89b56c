package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

// ProfileHandler serves GET /v1/provider-id/profile.
type ProfileHandler struct {
	SessionService *service.SessionService
	SecureCookies  bool
}

// ServeHTTP godoc
//
//	@Summary		Read the signed-in profile once
//	@Description	Opens the sealed profile cookie, returns the Provider ID profile and clears the cookie in the same
//	@Description	response. A cookie that is malformed, fails authentication or was already read is rejected with
//	@Description	invalid_session and cleared as well.
//	@Tags			Provider ID
//	@Produce		json
//	@Success		200	{object}	healthsdk.ProfileReadResponse	"ok, profile"
//	@Failure		400	{object}	healthsdk.ProfileReadResponse	"invalid_session"
//	@Failure		401	{object}	healthsdk.ProfileReadResponse	"missing_session"
//	@Failure		503	{object}	healthsdk.ProfileReadResponse	"session_unavailable"
//	@Header			200	{string}	Set-Cookie						"provider_id_profile=; Max-Age=0"
//	@Router			/v1/provider-id/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sealed := httpx.CookieValue(r, SessionCookieName)

	profile, err := h.SessionService.ReadProfile(r.Context(), sealed)
	switch {
	case errors.Is(err, service.ErrMissingSession):
		httpx.WriteJSON(w, http.StatusUnauthorized, healthsdk.ProfileReadResponse{Error: service.ErrMissingSession.Error()})
		return

	case errors.Is(err, service.ErrSessionUnavailable):
		// The cookie is left in place so the read can be retried.
		slogx.FromContext(r.Context()).Error("replay guard unavailable", "error", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, healthsdk.ProfileReadResponse{Error: service.ErrSessionUnavailable.Error()})
		return

	case err != nil:
		httpx.ClearCookie(w, SessionCookieName, h.SecureCookies)
		httpx.WriteJSON(w, http.StatusBadRequest, healthsdk.ProfileReadResponse{Error: service.ErrInvalidSession.Error()})
		return
	}

	httpx.ClearCookie(w, SessionCookieName, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, healthsdk.ProfileReadResponse{OK: true, Profile: profile})
}
