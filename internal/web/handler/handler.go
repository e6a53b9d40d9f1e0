package handler

import (
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/web/middleware"
	"github.com/nkessler/guessgame-go/internal/web/view"
)

// pageData assembles the layout fields from the request context
func pageData(r *http.Request, title string) view.PageData {
	data := view.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
	}
	if session := middleware.GetSession(r.Context()); session != nil && session.Authenticated() {
		data.LoggedIn = true
		data.Username = session.Username
	}
	return data
}

// renderPage renders a page template, logging and failing with a 500 on error
func renderPage(w http.ResponseWriter, logger *slog.Logger, renderer *view.Renderer, name string, data any) {
	if err := renderer.Render(w, name, data); err != nil {
		logger.Error("failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
