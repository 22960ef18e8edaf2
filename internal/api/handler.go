package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/leaderboard"
	"github.com/preplane/backend/internal/service"
	"github.com/preplane/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	store  store.Store
	engine *service.SessionEngine
	board  *leaderboard.Board // nil when the leaderboard is disabled
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, engine *service.SessionEngine, board *leaderboard.Board, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		engine: engine,
		board:  board,
		logger: logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	// Hint tells the client how to recover from a precondition
	// violation, e.g. resume or abandon the blocking session.
	Hint string `json:"hint,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON decodes the request body into v. On failure it writes a
// 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleEngineError maps engine errors to HTTP responses. Returns true
// if an error was handled (caller should return). ErrSessionExpired is
// deliberately not handled here; the expiry path attaches the final
// report and is handled per-route.
func (h *Handler) handleEngineError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrDuplicateActiveSession):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: "an active session already exists",
			Hint:  "resume it via GET /exams/active or abandon it first",
		})
	case errors.Is(err, service.ErrSessionNotActive):
		respondError(w, http.StatusConflict, "session is no longer active")
	case errors.Is(err, service.ErrQuestionMismatch):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: "question does not match the current question",
			Hint:  "resume the session to fetch the pending question",
		})
	case errors.Is(err, service.ErrInvalidDuration):
		respondError(w, http.StatusBadRequest, "duration_min must be a positive integer")
	case errors.Is(err, service.ErrNoQuestions):
		respondError(w, http.StatusConflict, "the question bank has no active questions")
	default:
		h.logger.Error("engine error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// handleStoreError is the CRUD counterpart of handleEngineError.
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// QuestionPayload is the question as shown to an examinee: no answer
// key, no lifetime stats.
type QuestionPayload struct {
	ID         string              `json:"id"`
	Text       string              `json:"text"`
	Options    question.Options    `json:"options"`
	Difficulty question.Difficulty `json:"difficulty"`
}

func toQuestionPayload(q *question.Question) QuestionPayload {
	return QuestionPayload{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}
