package examsession

import (
	"time"

	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/id"
)

// Status is the session state. Every status except StatusActive is
// terminal: once a session leaves active it never changes again.
type Status string

const (
	StatusActive      Status = "active"
	StatusCompleted   Status = "completed"
	StatusTimeExpired Status = "time_expired"
	StatusAbandoned   Status = "abandoned"
)

func (s Status) Terminal() bool {
	return s != StatusActive
}

// Response is one recorded answer event. The question text and options
// are snapshotted because the bank entry may be edited or deleted
// later. Responses are append-only.
type Response struct {
	QuestionID    string              `json:"question_id"`
	Text          string              `json:"text"`
	Options       question.Options    `json:"options"`
	CorrectOption string              `json:"correct_option"`
	Chosen        string              `json:"chosen"`
	Correct       bool                `json:"correct"`
	TimeSpentSec  int                 `json:"time_spent_seconds"`
	AbilityBefore float64             `json:"ability_before"`
	AbilityAfter  float64             `json:"ability_after"`
	Difficulty    question.Difficulty `json:"difficulty"`
	AnsweredAt    time.Time           `json:"answered_at"`
}

// Progress is the running counters returned after each submission.
type Progress struct {
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// ExamSession is one adaptive exam attempt. Invariant: at any moment
// len(ServedIDs) equals len(Responses) or len(Responses)+1; the extra
// entry is the question currently in front of the user.
type ExamSession struct {
	ID             string
	UserID         string
	ExamNumber     int
	Status         Status
	StartedAt      time.Time
	EndedAt        *time.Time
	DurationMin    int
	Ability        float64
	InitialAbility float64
	ServedIDs      []string
	Responses      []Response
}

// New creates an active session. The served list and response log start
// empty; the engine serves the first question immediately after.
func New(userID string, examNumber, durationMin int, ability float64, now time.Time) *ExamSession {
	return &ExamSession{
		ID:             id.New(),
		UserID:         userID,
		ExamNumber:     examNumber,
		Status:         StatusActive,
		StartedAt:      now,
		DurationMin:    durationMin,
		Ability:        ability,
		InitialAbility: ability,
	}
}

// Serve appends a question id to the served list.
func (s *ExamSession) Serve(questionID string) {
	s.ServedIDs = append(s.ServedIDs, questionID)
}

// CurrentQuestionID returns the most recently served, not yet answered
// question id. ok is false when every served question has been
// answered.
func (s *ExamSession) CurrentQuestionID() (string, bool) {
	if len(s.ServedIDs) != len(s.Responses)+1 {
		return "", false
	}
	return s.ServedIDs[len(s.ServedIDs)-1], true
}

// Record appends a response and moves the ability estimate to the
// response's after-value.
func (s *ExamSession) Record(r Response) {
	s.Responses = append(s.Responses, r)
	s.Ability = r.AbilityAfter
}

// Expired reports whether the configured duration has elapsed. The
// engine checks this lazily on submit and resume; there is no server
// side timer.
func (s *ExamSession) Expired(now time.Time) bool {
	deadline := s.StartedAt.Add(time.Duration(s.DurationMin) * time.Minute)
	return now.After(deadline)
}

// Finish moves the session to a terminal status. Calling Finish on an
// already terminated session is a no-op so a terminal status is never
// overwritten.
func (s *ExamSession) Finish(status Status, now time.Time) {
	if s.Status.Terminal() {
		return
	}
	s.Status = status
	s.EndedAt = &now
}

func (s *ExamSession) Answered() int {
	return len(s.Responses)
}

func (s *ExamSession) CorrectCount() int {
	n := 0
	for _, r := range s.Responses {
		if r.Correct {
			n++
		}
	}
	return n
}

// Accuracy is correct/answered as a percentage, 0 for an empty log.
func (s *ExamSession) Accuracy() float64 {
	if len(s.Responses) == 0 {
		return 0
	}
	return float64(s.CorrectCount()) / float64(len(s.Responses)) * 100
}

func (s *ExamSession) Progress() Progress {
	return Progress{
		Answered: s.Answered(),
		Correct:  s.CorrectCount(),
		Accuracy: s.Accuracy(),
	}
}
