package api

import (
	"net/http"

	"github.com/preplane/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuestionRequest struct {
	Text       string           `json:"text"`
	Options    question.Options `json:"options"`
	Correct    string           `json:"correct"`
	Difficulty string           `json:"difficulty"`
	Tags       []string         `json:"tags,omitempty"`
}

type AdminQuestionResponse struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Options       question.Options `json:"options"`
	Correct       string           `json:"correct"`
	Difficulty    string           `json:"difficulty"`
	Tags          []string         `json:"tags"`
	Active        bool             `json:"active"`
	TimesAnswered int              `json:"times_answered"`
	TimesCorrect  int              `json:"times_correct"`
	SuccessRate   float64          `json:"success_rate"`
}

func toAdminQuestion(q *question.Question) AdminQuestionResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return AdminQuestionResponse{
		ID:            q.ID,
		Text:          q.Text,
		Options:       q.Options,
		Correct:       q.Correct,
		Difficulty:    string(q.Difficulty),
		Tags:          tags,
		Active:        q.Active,
		TimesAnswered: q.TimesAnswered,
		TimesCorrect:  q.TimesCorrect,
		SuccessRate:   q.SuccessRate(),
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /questions
func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := question.New(req.Text, req.Options, req.Correct,
		question.Difficulty(req.Difficulty), req.Tags...)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveQuestion(r.Context(), q); err != nil {
		h.logger.Error("save question", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}

	respondJSON(w, http.StatusCreated, toAdminQuestion(q))
}

// GET /questions
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ListQuestions(r.Context())
	if err != nil {
		h.logger.Error("list questions", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load questions")
		return
	}

	response := make([]AdminQuestionResponse, len(questions))
	for i, q := range questions {
		response[i] = toAdminQuestion(q)
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /questions/{questionID}
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.GetQuestion(r.Context(), r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toAdminQuestion(q))
}

// PUT /questions/{questionID}
func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	existing, err := h.store.GetQuestion(r.Context(), questionID)
	if h.handleStoreError(w, err, "question") {
		return
	}

	var req CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing.Text = req.Text
	existing.Options = req.Options
	existing.Correct = question.NormalizeLabel(req.Correct)
	existing.Difficulty = question.Difficulty(req.Difficulty)
	existing.Tags = req.Tags
	if err := existing.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateQuestion(r.Context(), existing); h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toAdminQuestion(existing))
}

// DELETE /questions/{questionID}
//
// Questions that have been served keep their row (response logs
// reference them) and are deactivated instead of removed.
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	q, err := h.store.GetQuestion(r.Context(), questionID)
	if h.handleStoreError(w, err, "question") {
		return
	}

	if q.TimesAnswered > 0 {
		if err := h.store.DeactivateQuestion(r.Context(), questionID); h.handleStoreError(w, err, "question") {
			return
		}
	} else {
		if err := h.store.DeleteQuestion(r.Context(), questionID); h.handleStoreError(w, err, "question") {
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
