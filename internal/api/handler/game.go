package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/api/apierr"
	"github.com/nkessler/guessgame-go/internal/api/middleware"
	"github.com/nkessler/guessgame-go/internal/api/request"
	"github.com/nkessler/guessgame-go/internal/api/response"
	"github.com/nkessler/guessgame-go/internal/services/game"
)

// GameHandler handles the guessing game endpoints
type GameHandler struct {
	gameService *game.Service
	logger      *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *game.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// Round starts a fresh round, discarding any round in progress, and
// reports its state
func (h *GameHandler) Round(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	if err := h.gameService.StartRound(r.Context(), session.Token); err != nil {
		apierr.WriteError(w, err)
		return
	}

	current, err := h.gameService.Session(r.Context(), session.Token)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Round{
		Active:   current.RoundActive(),
		Attempts: current.Attempts,
	})
}

// Guess evaluates a guess against the caller's active round
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.Guess
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	result, err := h.gameService.Guess(r.Context(), session.Token, req.Guess)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResult{
		Outcome:  result.Outcome.String(),
		Attempts: result.Attempts,
	})
}
