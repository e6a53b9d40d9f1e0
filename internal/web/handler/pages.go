package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/web/middleware"
	"github.com/nkessler/guessgame-go/internal/web/view"
)

// PagesHandler handles the logged-in informational pages
type PagesHandler struct {
	credentialService *credential.Service
	renderer          *view.Renderer
	logger            *slog.Logger
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(credentialService *credential.Service, renderer *view.Renderer, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		credentialService: credentialService,
		renderer:          renderer,
		logger:            logger,
	}
}

// Dashboard renders the dashboard page
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.logger, h.renderer, "dashboard.tmpl", pageData(r, "Dashboard"))
}

// Settings renders the settings page
func (h *PagesHandler) Settings(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.logger, h.renderer, "settings.tmpl", pageData(r, "Settings"))
}

// Games renders the game list page
func (h *PagesHandler) Games(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.logger, h.renderer, "games.tmpl", pageData(r, "Games"))
}

// Profile renders the profile page with the user's account details
func (h *PagesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	data := view.ProfileData{PageData: pageData(r, "Profile")}
	user, err := h.credentialService.FindByUsername(r.Context(), session.Username)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			h.logger.Error("failed to load profile", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	} else {
		data.Email = user.Email
	}

	renderPage(w, h.logger, h.renderer, "profile.tmpl", data)
}
