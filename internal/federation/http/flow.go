package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/providerid/internal/federation/service"
)

// flowSettings are shared by the handlers that take part in a sign-in.
type flowSettings struct {
	redirectURI   string
	landingPath   string
	secureCookies bool
}

// callbackURL is the redirect_uri registered with Health ID. Without an
// explicit setting it is derived from Host and X-Forwarded-Proto.
func (s flowSettings) callbackURL(r *http.Request) string {
	if s.redirectURI != "" {
		return s.redirectURI
	}

	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}
	host := r.Host
	if host == "" {
		host = "localhost:8080"
	}
	return proto + "://" + host + CallbackPath
}

// landingURL is the profile landing page, with error and state appended when
// tag is set.
func (s flowSettings) landingURL(tag service.ErrorTag, state string) string {
	u, err := url.Parse(s.landingPath)
	if err != nil || s.landingPath == "" {
		u = &url.URL{Path: "/"}
	}

	if tag != "" {
		q := u.Query()
		q.Set("error", string(tag))
		if state != "" {
			q.Set("state", state)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
