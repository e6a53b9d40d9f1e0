package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

// GetSession retrieves the current session from the request context.
// The session middleware guarantees one is present on wrapped routes.
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// Session returns middleware that attaches a session to every request,
// creating a fresh anonymous one when the client has no valid cookie
func Session(authService *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			if session == nil {
				created, err := authService.StartSession(r.Context())
				if err != nil {
					logger.Error("failed to start session", slog.String("error", err.Error()))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				session = created

				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    session.Token,
					Path:     "/",
					Expires:  session.ExpiresAt,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromCookie(r *http.Request, authService *auth.Service) *model.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return session
}
