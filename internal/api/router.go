package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nkessler/guessgame-go/internal/api/handler"
	apimiddleware "github.com/nkessler/guessgame-go/internal/api/middleware"
	"github.com/nkessler/guessgame-go/internal/api/response"
	"github.com/nkessler/guessgame-go/internal/middleware"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	CredentialService *credential.Service
	GameService       *game.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, jsonPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.CredentialService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.Logger)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Session-bearing routes that do not require a login
	open := v1.NewRoute().Subrouter()
	open.Use(apimiddleware.SessionOnly(cfg.AuthService))
	open.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)
	open.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)

	// Routes requiring a logged-in session
	authed := v1.NewRoute().Subrouter()
	authed.Use(apimiddleware.Auth(cfg.AuthService))
	authed.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/game/round", gameHandler.Round).Methods(http.MethodPost)
	authed.HandleFunc("/game/guess", gameHandler.Guess).Methods(http.MethodPost)

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

func jsonPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	response.JSON(w, http.StatusInternalServerError, map[string]any{
		"error": map[string]string{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		},
	})
}
