package http

import (
	"net/http"
	"time"
)

// CookieOptions controls the attributes of the visitor tracking cookies.
// A zero MaxAge issues session cookies.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

func (o CookieOptions) set(w http.ResponseWriter, r *http.Request, name, value string) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if o.MaxAge > 0 {
		c.MaxAge = int(o.MaxAge.Seconds())
		c.Expires = time.Now().Add(o.MaxAge)
	}
	http.SetCookie(w, c)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
