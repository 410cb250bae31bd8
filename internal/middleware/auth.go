package middleware

import (
	"net/http"

	"nebulanotes/internal/session"
)

// SessionVerifier turns a cookie token into session data. It is satisfied
// by service.AuthService.
type SessionVerifier interface {
	Verify(token string) *session.Data
}

const LoginPath = "/admin/login"

// LoadSession puts the verified session, if any, into the request context.
// It never rejects a request.
func LoadSession(verifier SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if data := verifier.Verify(session.TokenFromRequest(r)); data != nil {
				r = r.WithContext(session.WithData(r.Context(), data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession redirects to the login page when no session was loaded.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSessionJSON is RequireSession for JSON endpoints.
func RequireSessionJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			writeJSONMessage(w, "Sign in to the admin panel before uploading images.", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
