// Package session carries the admin session between the cookie, the
// request context and the handlers. Sessions are stateless: the cookie
// holds a signed token and nothing is stored server side.
package session

import (
	"context"
	"net/http"
	"time"
)

const (
	CookieName = "nebula_admin_session"
	MaxAge     = 8 * time.Hour
)

type Data struct {
	Email string
}

type contextKey struct{}

func WithData(ctx context.Context, data *Data) context.Context {
	return context.WithValue(ctx, contextKey{}, data)
}

// FromContext returns the session loaded for the request, or nil.
func FromContext(ctx context.Context) *Data {
	data, _ := ctx.Value(contextKey{}).(*Data)
	return data
}

func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func SetCookie(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	if maxAge <= 0 {
		maxAge = MaxAge
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
