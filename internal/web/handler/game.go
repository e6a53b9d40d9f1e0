package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/services/game"
	"github.com/nkessler/guessgame-go/internal/web/middleware"
	"github.com/nkessler/guessgame-go/internal/web/view"
)

// GameHandler handles the number guessing game pages
type GameHandler struct {
	gameService *game.Service
	renderer    *view.Renderer
	logger      *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *game.Service, renderer *view.Renderer, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		renderer:    renderer,
		logger:      logger,
	}
}

// GuessNumber renders the game page, starting a round if none is active.
// An in-progress round keeps its target and attempt count, so refreshing
// the page or returning after a guess does not discard progress.
func (h *GameHandler) GuessNumber(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	if !session.RoundActive() {
		if err := h.gameService.StartRound(r.Context(), session.Token); err != nil {
			h.logger.Error("failed to start round", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Re-read for the fresh round's attempt count
		updated, err := h.gameService.Session(r.Context(), session.Token)
		if err != nil {
			h.logger.Error("failed to load round state", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		session = updated
	}

	data := view.GuessData{PageData: pageData(r, "Guess the number")}
	data.Attempts = session.Attempts

	renderPage(w, h.logger, h.renderer, "guess_number.tmpl", data)
}

// CheckGuess evaluates a submitted guess and redirects back to the game page
// with the outcome as a flash message
func (h *GameHandler) CheckGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	session := middleware.GetSession(r.Context())
	result, err := h.gameService.Guess(r.Context(), session.Token, r.PostFormValue("guess"))
	if err != nil {
		var invalid *game.InvalidGuessError
		switch {
		case errors.As(err, &invalid):
			middleware.SetFlash(w, "error",
				fmt.Sprintf("Please enter a whole number. Attempts so far: %d", invalid.Attempts))
		case errors.Is(err, game.ErrNoActiveRound):
			middleware.SetFlash(w, "error", "No round in progress, starting a new one")
		default:
			h.logger.Error("failed to check guess", slog.String("error", err.Error()))
			middleware.SetFlash(w, "error", "Something went wrong, please try again")
		}
		http.Redirect(w, r, "/guess_number", http.StatusSeeOther)
		return
	}

	switch result.Outcome {
	case game.TooLow:
		middleware.SetFlash(w, "info", "Too low! Try again.")
	case game.TooHigh:
		middleware.SetFlash(w, "info", "Too high! Try again.")
	case game.Correct:
		middleware.SetFlash(w, "success",
			fmt.Sprintf("Correct! You got it in %d attempts. A new round has started.", result.Attempts))
	}

	http.Redirect(w, r, "/guess_number", http.StatusSeeOther)
}
