package store

import (
	"context"
	"errors"

	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/report"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write,
	// e.g. a second active session for the same user.
	ErrConflict = errors.New("conflict")
)

// Store is the persistence boundary of the exam engine. The engine
// assumes a reliable store and propagates its failures opaquely.
type Store interface {
	// Questions
	SaveQuestion(ctx context.Context, q *question.Question) error
	GetQuestion(ctx context.Context, id string) (*question.Question, error)
	ListQuestions(ctx context.Context) ([]*question.Question, error)
	UpdateQuestion(ctx context.Context, q *question.Question) error
	DeactivateQuestion(ctx context.Context, id string) error
	DeleteQuestion(ctx context.Context, id string) error
	// ListEligibleQuestions returns active questions in the band,
	// excluding the given ids.
	ListEligibleQuestions(ctx context.Context, d question.Difficulty, exclude []string) ([]*question.Question, error)
	BumpQuestionStats(ctx context.Context, id string, correct bool) error

	// Sessions
	// CreateSession persists a new session together with the snapshot
	// of its first served question. Returns ErrConflict when the user
	// already has an active session.
	CreateSession(ctx context.Context, s *examsession.ExamSession, first *question.Question) error
	GetSession(ctx context.Context, id string) (*examsession.ExamSession, error)
	GetActiveSession(ctx context.Context, userID string) (*examsession.ExamSession, error)
	CountSessions(ctx context.Context, userID string) (int, error)
	ListTerminatedSessions(ctx context.Context, userID string) ([]*examsession.ExamSession, error)
	// GetServedQuestion returns the snapshot taken when the question
	// was served into the session, not the live bank entry.
	GetServedQuestion(ctx context.Context, sessionID, questionID string) (*question.Question, error)
	// ApplyAnswer atomically appends the response, stores the session's
	// new ability/status, and snapshots the next served question when
	// next is non-nil.
	ApplyAnswer(ctx context.Context, s *examsession.ExamSession, r examsession.Response, next *question.Question) error
	FinishSession(ctx context.Context, s *examsession.ExamSession) error

	// Lifetime counters and badges
	GetLifetimeStats(ctx context.Context, userID string) (report.LifetimeStats, error)
	AddLifetimeStats(ctx context.Context, userID string, exams, correct, xp int) error
	ListBadges(ctx context.Context, userID string) ([]string, error)
	// AwardBadges inserts badges idempotently and returns the ones that
	// were actually new for this user.
	AwardBadges(ctx context.Context, userID string, badges []string) ([]string, error)
}
