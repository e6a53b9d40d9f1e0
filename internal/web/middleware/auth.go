package middleware

import (
	"net/http"
)

// RequireAuth returns middleware gating a route to logged-in users.
// Anonymous visitors are flashed a notice and redirected to the login page.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r.Context())
			if session == nil || !session.Authenticated() {
				SetFlash(w, "error", "You must be logged in to view that page")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
