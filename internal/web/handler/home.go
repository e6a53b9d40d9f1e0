package handler

import (
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/web/view"
)

// HomeHandler handles the landing page
type HomeHandler struct {
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *view.Renderer, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{renderer: renderer, logger: logger}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.logger, h.renderer, "home.tmpl", pageData(r, "Home"))
}
