package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nkessler/guessgame-go/internal/api/apierr"
	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates authentication middleware requiring a logged-in session.
// The token is read from the Authorization header or the session cookie.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.GetSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if !session.Authenticated() {
				apierr.WriteError(w, auth.ErrNotAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionOnly creates middleware requiring a session, logged in or not
func SessionOnly(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				// No token yet, start a fresh session for the caller
				session, err := authService.StartSession(r.Context())
				if err != nil {
					apierr.WriteError(w, err)
					return
				}
				ctx := context.WithValue(r.Context(), sessionContextKey, session)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			session, err := authService.GetSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *model.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
