package http

import (
	"net/http"

	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
	"github.com/aussiebroadwan/providerid/pkg/jwtx"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

// AuthorizeHandler serves GET /v1/provider-id/authorize and starts a
// Health ID sign-in.
type AuthorizeHandler struct {
	flowSettings

	Client      *healthsdk.Client
	ClientID    string
	StateBinder *jwtx.StateBinder
}

// ServeHTTP godoc
//
//	@Summary		Start Provider ID sign-in
//	@Description	Redirects the browser to the Health ID authorization page with a fresh state value.
//	@Description	When state binding is enabled the state is also signed into a short-lived httpOnly cookie.
//	@Tags			Provider ID
//	@Success		302	"Location: Health ID authorization URL, or the landing page with error=missing_env"
//	@Router			/v1/provider-id/authorize [get].
func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	if h.ClientID == "" {
		http.Redirect(w, r, h.landingURL(service.TagMissingEnv, ""), http.StatusFound)
		return
	}

	state, err := healthsdk.NewState()
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to generate state", "error", err)
		http.Redirect(w, r, h.landingURL(service.TagUnknownError, ""), http.StatusFound)
		return
	}

	if h.StateBinder != nil {
		binding, err := h.StateBinder.Bind(state)
		if err != nil {
			slogx.FromContext(r.Context()).Error("failed to bind state", "error", err)
			http.Redirect(w, r, h.landingURL(service.TagUnknownError, ""), http.StatusFound)
			return
		}
		httpx.SetCookie(w, StateCookieName, binding, httpx.CookieOptions{
			Secure: h.secureCookies,
			MaxAge: h.StateBinder.TTL(),
		})
	}

	http.Redirect(w, r, h.Client.AuthorizeURL(h.ClientID, h.callbackURL(r), state), http.StatusFound)
}
