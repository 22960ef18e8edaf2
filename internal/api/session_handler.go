package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/report"
	"github.com/preplane/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartExamRequest struct {
	DurationMin int `json:"duration_min"`
}

type StartExamResponse struct {
	SessionID      string          `json:"session_id"`
	ExamNumber     int             `json:"exam_number"`
	Question       QuestionPayload `json:"question"`
	CurrentAbility float64         `json:"current_ability"`
	DurationMin    int             `json:"duration_min"`
}

type SubmitAnswerRequest struct {
	QuestionID       string `json:"question_id"`
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool                `json:"is_correct"`
	CorrectAnswer string              `json:"correct_answer"`
	NewAbility    float64             `json:"new_ability"`
	Progress      examsession.Progress `json:"progress"`
	NextQuestion  *QuestionPayload    `json:"next_question,omitempty"`
	Report        *report.Report      `json:"report,omitempty"`
}

type EndExamRequest struct {
	TimeExpired       bool `json:"time_expired"`
	AbandonedViaClose bool `json:"abandoned_via_close"`
	SaveResults       bool `json:"save_results"`
}

type ResumeExamResponse struct {
	SessionID      string              `json:"session_id"`
	ExamNumber     int                 `json:"exam_number"`
	Question       QuestionPayload     `json:"question"`
	CurrentAbility float64             `json:"current_ability"`
	Progress       examsession.Progress `json:"progress"`
}

type ActiveSessionResponse struct {
	SessionID      string              `json:"session_id"`
	ExamNumber     int                 `json:"exam_number"`
	StartedAt      string              `json:"started_at"`
	DurationMin    int                 `json:"duration_min"`
	CurrentAbility float64             `json:"current_ability"`
	Progress       examsession.Progress `json:"progress"`
}

// expiredResponse carries the final report when a call finds the
// session past its deadline.
type expiredResponse struct {
	Error  string         `json:"error"`
	Status string         `json:"status"`
	Report *report.Report `json:"report,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startExam godoc
// @Summary  Start a new adaptive exam session
// @Tags     exams
// @Param    request body StartExamRequest true "exam settings"
// @Success  201 {object} StartExamResponse
// @Failure  409 {object} errorResponse "an active session already exists"
// @Router   /exams [post]
func (h *Handler) startExam(w http.ResponseWriter, r *http.Request) {
	var req StartExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.engine.Start(r.Context(), UserID(r.Context()), req.DurationMin)
	if h.handleEngineError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, StartExamResponse{
		SessionID:      res.Session.ID,
		ExamNumber:     res.Session.ExamNumber,
		Question:       toQuestionPayload(res.Question),
		CurrentAbility: res.Session.Ability,
		DurationMin:    res.Session.DurationMin,
	})
}

// submitAnswer godoc
// @Summary  Submit the answer to the current question
// @Tags     exams
// @Param    sessionID path string true "session id"
// @Param    request body SubmitAnswerRequest true "answer"
// @Success  200 {object} SubmitAnswerResponse
// @Router   /exams/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == "" || req.Answer == "" {
		respondError(w, http.StatusBadRequest, "question_id and answer are required")
		return
	}

	res, err := h.engine.SubmitAnswer(r.Context(),
		UserID(r.Context()), sessionID, req.QuestionID, req.Answer, req.TimeSpentSeconds)
	if errors.Is(err, service.ErrSessionExpired) {
		h.respondExpired(w, r, sessionID)
		return
	}
	if h.handleEngineError(w, err) {
		return
	}

	resp := SubmitAnswerResponse{
		IsCorrect:     res.IsCorrect,
		CorrectAnswer: res.CorrectAnswer,
		NewAbility:    res.NewAbility,
		Progress:      res.Progress,
		Report:        res.Report,
	}
	if res.NextQuestion != nil {
		q := toQuestionPayload(res.NextQuestion)
		resp.NextQuestion = &q
	}
	respondJSON(w, http.StatusOK, resp)
}

// endExam godoc
// @Summary  End the session (manual finish, client timer, or close)
// @Tags     exams
// @Router   /exams/{sessionID}/end [post]
func (h *Handler) endExam(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	req := EndExamRequest{SaveResults: true}
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	rep, err := h.engine.End(r.Context(), UserID(r.Context()), sessionID, service.EndFlags{
		TimeExpired:       req.TimeExpired,
		AbandonedViaClose: req.AbandonedViaClose,
		SaveResults:       req.SaveResults,
	})
	if h.handleEngineError(w, err) {
		return
	}

	// rep is nil when the caller asked not to save results.
	respondJSON(w, http.StatusOK, map[string]any{"report": rep})
}

// abandonExam godoc
// @Summary  Abandon the session to allow starting a fresh one
// @Tags     exams
// @Router   /exams/{sessionID}/abandon [post]
func (h *Handler) abandonExam(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	err := h.engine.Abandon(r.Context(), UserID(r.Context()), sessionID)
	if h.handleEngineError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// resumeExam godoc
// @Summary  Resume an interrupted session
// @Tags     exams
// @Success  200 {object} ResumeExamResponse
// @Router   /exams/{sessionID} [get]
func (h *Handler) resumeExam(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	res, err := h.engine.Resume(r.Context(), UserID(r.Context()), sessionID)
	if errors.Is(err, service.ErrSessionExpired) {
		h.respondExpired(w, r, sessionID)
		return
	}
	if h.handleEngineError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, ResumeExamResponse{
		SessionID:      res.Session.ID,
		ExamNumber:     res.Session.ExamNumber,
		Question:       toQuestionPayload(res.Question),
		CurrentAbility: res.Session.Ability,
		Progress:       res.Progress,
	})
}

// getReport godoc
// @Summary  Analytics report for a session
// @Tags     exams
// @Success  200 {object} report.Report
// @Router   /exams/{sessionID}/report [get]
func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	rep, err := h.engine.GetReport(r.Context(), UserID(r.Context()), sessionID)
	if h.handleEngineError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// getActiveExam godoc
// @Summary  The caller's active session, if any
// @Tags     exams
// @Router   /exams/active [get]
func (h *Handler) getActiveExam(w http.ResponseWriter, r *http.Request) {
	sess, err := h.engine.GetActiveSession(r.Context(), UserID(r.Context()))
	if err != nil {
		h.logger.Error("get active session", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if sess == nil {
		respondJSON(w, http.StatusOK, map[string]any{"active": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"active": ActiveSessionResponse{
		SessionID:      sess.ID,
		ExamNumber:     sess.ExamNumber,
		StartedAt:      sess.StartedAt.Format(time.RFC3339),
		DurationMin:    sess.DurationMin,
		CurrentAbility: sess.Ability,
		Progress:       sess.Progress(),
	}})
}

// examHistory godoc
// @Summary  Reports for the caller's terminated sessions, newest first
// @Tags     exams
// @Router   /exams/history [get]
func (h *Handler) examHistory(w http.ResponseWriter, r *http.Request) {
	reports, err := h.engine.History(r.Context(), UserID(r.Context()))
	if err != nil {
		h.logger.Error("exam history", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// userProgress godoc
// @Summary  Lifetime counters, badges, and current ability
// @Tags     users
// @Router   /users/me/progress [get]
func (h *Handler) userProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.UserProgress(r.Context(), UserID(r.Context()))
	if err != nil {
		h.logger.Error("user progress", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// respondExpired reports the lazy time_expired transition: 410 with the
// final report so the client can show what was answered.
func (h *Handler) respondExpired(w http.ResponseWriter, r *http.Request, sessionID string) {
	rep, err := h.engine.GetReport(r.Context(), UserID(r.Context()), sessionID)
	if err != nil {
		h.logger.Error("report after expiry", "session_id", sessionID, "error", err)
		rep = nil
	}
	respondJSON(w, http.StatusGone, expiredResponse{
		Error:  "session duration has expired",
		Status: string(examsession.StatusTimeExpired),
		Report: rep,
	})
}
