// Package service contains the session engine: the state machine that
// drives an adaptive exam from start to a terminal status.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preplane/backend/internal/adaptive"
	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/report"
	"github.com/preplane/backend/internal/store"
)

// Leaderboard is the optional XP ranking sink. A nil board disables it.
type Leaderboard interface {
	AddXP(ctx context.Context, userID string, xp int) error
}

// EndFlags qualifies an explicit end call.
type EndFlags struct {
	TimeExpired       bool
	AbandonedViaClose bool
	// SaveResults=false still terminates and retains the session but
	// skips lifetime counters, XP and badges, and returns no report.
	SaveResults bool
}

type StartResult struct {
	Session  *examsession.ExamSession
	Question *question.Question
}

type SubmitResult struct {
	IsCorrect     bool
	CorrectAnswer string
	NewAbility    float64
	Progress      examsession.Progress
	// NextQuestion is nil when the session terminated with this call;
	// Report is set instead.
	NextQuestion *question.Question
	Report       *report.Report
}

type ResumeResult struct {
	Session  *examsession.ExamSession
	Question *question.Question
	Progress examsession.Progress
}

// ProgressSummary is the lifetime view for the progress dashboard.
type ProgressSummary struct {
	Lifetime report.LifetimeStats `json:"lifetime"`
	Badges   []string             `json:"badges"`
	// Ability is the most recent session's estimate, nil for users who
	// have never started an exam.
	Ability *float64 `json:"ability,omitempty"`
}

// SessionEngine owns the exam-session state machine. All timing is
// lazy: nothing here runs on a timer, expiry is detected on the next
// submit or resume call.
type SessionEngine struct {
	store            store.Store
	picker           *Picker
	stats            *StatsRecorder
	board            Leaderboard
	logger           *slog.Logger
	questionsPerExam int
	now              func() time.Time
}

func NewSessionEngine(s store.Store, picker *Picker, stats *StatsRecorder, board Leaderboard, logger *slog.Logger, questionsPerExam int) *SessionEngine {
	return &SessionEngine{
		store:            s,
		picker:           picker,
		stats:            stats,
		board:            board,
		logger:           logger,
		questionsPerExam: questionsPerExam,
		now:              time.Now,
	}
}

// Start creates a new active session for the user and serves the first
// question. New sessions always start at the default ability; the
// unique active-session index in the store makes the duplicate check
// and the insert atomic.
func (e *SessionEngine) Start(ctx context.Context, userID string, durationMin int) (*StartResult, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	count, err := e.store.CountSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := examsession.New(userID, count+1, durationMin, adaptive.DefaultAbility, e.now().UTC())

	first, err := e.picker.Pick(ctx, adaptive.BandFor(sess.Ability), nil)
	if errors.Is(err, errBankExhausted) {
		return nil, ErrNoQuestions
	}
	if err != nil {
		return nil, err
	}
	sess.Serve(first.ID)

	if err := e.store.CreateSession(ctx, sess, first); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrDuplicateActiveSession
		}
		return nil, err
	}

	return &StartResult{Session: sess, Question: first}, nil
}

// SubmitAnswer scores the answer, updates the ability estimate, and
// either serves the next question or terminates the session. A call
// arriving after the configured duration transitions the session to
// time_expired and returns ErrSessionExpired; the final report is then
// available via GetReport.
func (e *SessionEngine) SubmitAnswer(ctx context.Context, userID, sessionID, questionID, answer string, timeSpentSec int) (*SubmitResult, error) {
	sess, err := e.loadActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	if sess.Expired(now) {
		e.expire(ctx, sess, now)
		return nil, ErrSessionExpired
	}

	currentID, ok := sess.CurrentQuestionID()
	if !ok || currentID != questionID {
		return nil, ErrQuestionMismatch
	}

	q, err := e.store.GetServedQuestion(ctx, sess.ID, questionID)
	if err != nil {
		return nil, fmt.Errorf("load served question: %w", err)
	}

	correct := q.IsCorrect(answer)
	before := sess.Ability
	after := adaptive.UpdateAbility(before, q.Difficulty, correct)

	resp := examsession.Response{
		QuestionID:    q.ID,
		Text:          q.Text,
		Options:       q.Options,
		CorrectOption: q.Correct,
		Chosen:        question.NormalizeLabel(answer),
		Correct:       correct,
		TimeSpentSec:  timeSpentSec,
		AbilityBefore: before,
		AbilityAfter:  after,
		Difficulty:    q.Difficulty,
		AnsweredAt:    now,
	}
	sess.Record(resp)

	result := &SubmitResult{
		IsCorrect:     correct,
		CorrectAnswer: q.Correct,
		NewAbility:    after,
	}

	var next *question.Question
	if sess.Answered() < e.questionsPerExam {
		next, err = e.picker.Pick(ctx, adaptive.BandFor(after), sess.ServedIDs)
		if err != nil && !errors.Is(err, errBankExhausted) {
			return nil, err
		}
		// Bank exhaustion is not an error mid-exam: the session ends
		// early as completed with whatever was answered.
	}

	if next == nil {
		sess.Finish(examsession.StatusCompleted, now)
	} else {
		sess.Serve(next.ID)
	}

	if err := e.store.ApplyAnswer(ctx, sess, resp, next); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// A concurrent retry of the same submission already landed.
			return nil, ErrQuestionMismatch
		}
		return nil, err
	}

	e.stats.Record(q.ID, correct)

	result.Progress = sess.Progress()
	if next != nil {
		result.NextQuestion = next
	} else {
		rep := e.finalize(ctx, sess)
		result.Report = &rep
	}
	return result, nil
}

// End terminates an active session on the caller's initiative: the
// client timer fired (TimeExpired), the user closed the exam
// (AbandonedViaClose), or the user chose to finish early. Partial data
// is never discarded.
func (e *SessionEngine) End(ctx context.Context, userID, sessionID string, flags EndFlags) (*report.Report, error) {
	sess, err := e.loadActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	status := examsession.StatusCompleted
	switch {
	case flags.TimeExpired:
		status = examsession.StatusTimeExpired
	case flags.AbandonedViaClose:
		status = examsession.StatusAbandoned
	}

	sess.Finish(status, e.now().UTC())
	if err := e.store.FinishSession(ctx, sess); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrSessionNotActive
		}
		return nil, err
	}

	if !flags.SaveResults {
		return nil, nil
	}
	rep := e.finalize(ctx, sess)
	return &rep, nil
}

// Abandon explicitly abandons the session, clearing the one-active-
// session constraint so the user can start fresh.
func (e *SessionEngine) Abandon(ctx context.Context, userID, sessionID string) error {
	_, err := e.End(ctx, userID, sessionID, EndFlags{AbandonedViaClose: true, SaveResults: true})
	return err
}

// Resume returns the pending question and progress after a network
// interruption. It never re-derives the question: the user gets back
// exactly the snapshot that was served before the interruption. The
// only state change Resume can cause is the lazy expiry transition.
func (e *SessionEngine) Resume(ctx context.Context, userID, sessionID string) (*ResumeResult, error) {
	sess, err := e.loadActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	if sess.Expired(now) {
		e.expire(ctx, sess, now)
		return nil, ErrSessionExpired
	}

	currentID, ok := sess.CurrentQuestionID()
	if !ok {
		return nil, fmt.Errorf("session %s has no pending question", sess.ID)
	}
	q, err := e.store.GetServedQuestion(ctx, sess.ID, currentID)
	if err != nil {
		return nil, fmt.Errorf("load served question: %w", err)
	}

	return &ResumeResult{
		Session:  sess,
		Question: q,
		Progress: sess.Progress(),
	}, nil
}

// GetReport builds the analytics report for any session, terminated or
// still active (for mid-exam progress views).
func (e *SessionEngine) GetReport(ctx context.Context, userID, sessionID string) (*report.Report, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if userID != "" && sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	rep := report.Build(sess)
	return &rep, nil
}

// GetActiveSession returns the user's active session, or nil when there
// is none.
func (e *SessionEngine) GetActiveSession(ctx context.Context, userID string) (*examsession.ExamSession, error) {
	sess, err := e.store.GetActiveSession(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// History returns reports for the user's terminated sessions, newest
// first. Sessions are never deleted, so this is the complete record.
func (e *SessionEngine) History(ctx context.Context, userID string) ([]report.Report, error) {
	sessions, err := e.store.ListTerminatedSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	reports := make([]report.Report, len(sessions))
	for i, sess := range sessions {
		reports[i] = report.Build(sess)
	}
	return reports, nil
}

// UserProgress returns the lifetime counters, badges, and the most
// recent ability estimate for the progress dashboard.
func (e *SessionEngine) UserProgress(ctx context.Context, userID string) (*ProgressSummary, error) {
	lifetime, err := e.store.GetLifetimeStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	badges, err := e.store.ListBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []string{}
	}

	summary := &ProgressSummary{Lifetime: lifetime, Badges: badges}

	if active, err := e.GetActiveSession(ctx, userID); err == nil && active != nil {
		summary.Ability = &active.Ability
	} else if sessions, err := e.store.ListTerminatedSessions(ctx, userID); err == nil && len(sessions) > 0 {
		summary.Ability = &sessions[0].Ability
	}
	return summary, nil
}

// loadActive loads a session and checks ownership and that it is still
// active. Sessions belonging to other users read as not found so their
// existence is not leaked.
func (e *SessionEngine) loadActive(ctx context.Context, sessionID, userID string) (*examsession.ExamSession, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if userID != "" && sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if sess.Status != examsession.StatusActive {
		return nil, ErrSessionNotActive
	}
	return sess, nil
}

// expire performs the lazy time_expired transition triggered by a late
// submit or resume call.
func (e *SessionEngine) expire(ctx context.Context, sess *examsession.ExamSession, now time.Time) {
	sess.Finish(examsession.StatusTimeExpired, now)
	if err := e.store.FinishSession(ctx, sess); err != nil {
		// ErrConflict means another call already expired it.
		if !errors.Is(err, store.ErrConflict) {
			e.logger.Error("failed to expire session", "session_id", sess.ID, "error", err)
		}
		return
	}
	e.finalize(ctx, sess)
}

// finalize runs the post-termination bookkeeping: lifetime counters,
// badge awards, leaderboard. Failures here are logged, not returned;
// the user still gets their report.
func (e *SessionEngine) finalize(ctx context.Context, sess *examsession.ExamSession) report.Report {
	rep := report.Build(sess)

	if err := e.store.AddLifetimeStats(ctx, sess.UserID, 1, rep.Correct, rep.XP); err != nil {
		e.logger.Error("failed to update lifetime stats", "user_id", sess.UserID, "error", err)
		return rep
	}

	lifetime, err := e.store.GetLifetimeStats(ctx, sess.UserID)
	if err != nil {
		e.logger.Error("failed to load lifetime stats", "user_id", sess.UserID, "error", err)
		return rep
	}

	newBadges, err := e.store.AwardBadges(ctx, sess.UserID, report.Earned(lifetime))
	if err != nil {
		e.logger.Error("failed to award badges", "user_id", sess.UserID, "error", err)
	}
	if newBadges != nil {
		rep.NewBadges = newBadges
	}

	if e.board != nil && rep.XP > 0 {
		if err := e.board.AddXP(ctx, sess.UserID, rep.XP); err != nil {
			e.logger.Error("failed to update leaderboard", "user_id", sess.UserID, "error", err)
		}
	}

	return rep
}
