package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nkessler/guessgame-go/internal/middleware"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/services/game"
	"github.com/nkessler/guessgame-go/internal/web/handler"
	webmiddleware "github.com/nkessler/guessgame-go/internal/web/middleware"
	"github.com/nkessler/guessgame-go/internal/web/view"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	CredentialService *credential.Service
	GameService       *game.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(webmiddleware.Session(cfg.AuthService, cfg.Logger))
	r.Use(webmiddleware.Flash())

	homeHandler := handler.NewHomeHandler(renderer, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.CredentialService, renderer, cfg.Logger)
	pagesHandler := handler.NewPagesHandler(cfg.CredentialService, renderer, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameService, renderer, cfg.Logger)

	// Public routes
	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	// Routes gated on login
	protected := r.NewRoute().Subrouter()
	protected.Use(webmiddleware.RequireAuth())
	protected.HandleFunc("/dashboard", pagesHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/settings", pagesHandler.Settings).Methods(http.MethodGet)
	protected.HandleFunc("/profile", pagesHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/games", pagesHandler.Games).Methods(http.MethodGet)
	protected.HandleFunc("/guess_number", gameHandler.GuessNumber).Methods(http.MethodGet)
	protected.HandleFunc("/check_guess", gameHandler.CheckGuess).Methods(http.MethodPost)

	return r, nil
}
