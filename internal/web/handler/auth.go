package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/web/middleware"
	"github.com/nkessler/guessgame-go/internal/web/view"
)

// AuthHandler handles registration, login, and logout
type AuthHandler struct {
	authService       *auth.Service
	credentialService *credential.Service
	renderer          *view.Renderer
	logger            *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService *auth.Service,
	credentialService *credential.Service,
	renderer *view.Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		credentialService: credentialService,
		renderer:          renderer,
		logger:            logger,
	}
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil && session.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, h.logger, h.renderer, "register.tmpl", pageData(r, "Register"))
}

// Register handles the registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.credentialService.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, credential.ErrMissingFields),
			errors.Is(err, credential.ErrPasswordMismatch):
			middleware.SetFlash(w, "error", err.Error())
		case errors.Is(err, model.ErrDuplicateUser):
			middleware.SetFlash(w, "error", "That username or email is already registered")
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			middleware.SetFlash(w, "error", "Something went wrong, please try again")
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Account created, you can now log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil && session.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, h.logger, h.renderer, "login.tmpl", pageData(r, "Log in"))
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	session := middleware.GetSession(r.Context())
	_, err := h.authService.Login(r.Context(), session.Token,
		r.PostFormValue("username"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.SetFlash(w, "error", "Invalid username or password")
		} else {
			h.logger.Error("login failed", slog.String("error", err.Error()))
			middleware.SetFlash(w, "error", "Something went wrong, please try again")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session's login state and returns to the home page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := h.authService.Logout(r.Context(), session.Token); err != nil {
		h.logger.Error("logout failed", slog.String("error", err.Error()))
	}

	middleware.SetFlash(w, "success", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
