package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/api/apierr"
	"github.com/nkessler/guessgame-go/internal/api/middleware"
	"github.com/nkessler/guessgame-go/internal/api/request"
	"github.com/nkessler/guessgame-go/internal/api/response"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
)

// UserHandler handles account and session endpoints
type UserHandler struct {
	authService       *auth.Service
	credentialService *credential.Service
	logger            *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *auth.Service, credentialService *credential.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		authService:       authService,
		credentialService: credentialService,
		logger:            logger,
	}
}

// Register creates a new account and logs the caller's session into it
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.Register
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	_, err := h.credentialService.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	session := middleware.MustGetSession(r.Context())
	loggedIn, err := h.authService.Login(r.Context(), session.Token, req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Session{
		Token:    loggedIn.Token,
		Username: loggedIn.Username,
	})
}

// Login binds the caller's session to the given account
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	loggedIn, err := h.authService.Login(r.Context(), session.Token, req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Session{
		Token:    loggedIn.Token,
		Username: loggedIn.Username,
	})
}

// Logout clears the caller's login state
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	if err := h.authService.Logout(r.Context(), session.Token); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Me returns the logged-in user's account details
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	user, err := h.credentialService.FindByUsername(r.Context(), session.Username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewUser(user))
}
