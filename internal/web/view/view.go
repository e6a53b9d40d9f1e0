package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FlashMessage is a one-shot notice shown on the next page view
type FlashMessage struct {
	Type    string
	Message string
}

// PageData carries the fields every page template needs
type PageData struct {
	Title    string
	Username string
	LoggedIn bool
	Flash    *FlashMessage
}

// ProfileData is the data for the profile page
type ProfileData struct {
	PageData
	Email string
}

// GuessData is the data for the guessing game page
type GuessData struct {
	PageData
	Attempts int
}

// Renderer renders page templates against the shared layout
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page template. The page is buffered so a
// template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
