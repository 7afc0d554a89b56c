package httpx

import (
	"net/http"
	"time"
)

// CookieOptions are the attributes shared by every cookie this service sets.
// Cookies are always httpOnly, SameSite=Lax and scoped to "/".
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// SetCookie writes an httpOnly cookie bounded by opts.MaxAge.
func SetCookie(w http.ResponseWriter, name, value string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		Expires:  time.Now().Add(opts.MaxAge),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires a cookie immediately (empty value, Max-Age=0).
func ClearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // serialised as Max-Age=0
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieValue returns the named cookie's value, or "" when it is absent.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
