package question

import (
	"errors"
	"strings"

	"github.com/preplane/backend/internal/id"
)

// Options holds the four answer choices. Every question has exactly
// these four labels; validation rejects anything else at creation time.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the text for a label, false if the label is unknown.
func (o Options) Get(label string) (string, bool) {
	switch NormalizeLabel(label) {
	case "A":
		return o.A, true
	case "B":
		return o.B, true
	case "C":
		return o.C, true
	case "D":
		return o.D, true
	}
	return "", false
}

func (o Options) complete() bool {
	return o.A != "" && o.B != "" && o.C != "" && o.D != ""
}

// NormalizeLabel upper-cases and trims an option label so "b " and "B"
// compare equal.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// ValidLabel reports whether label names one of the four options.
func ValidLabel(label string) bool {
	switch NormalizeLabel(label) {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// Question is a single multiple-choice item in the bank. It is
// read-only to the exam engine; only admin CRUD mutates it. The
// lifetime counters are aggregates across all sessions and are updated
// asynchronously after each answer.
type Question struct {
	ID         string
	Text       string
	Options    Options
	Correct    string // option label, one of A-D
	Difficulty Difficulty
	Tags       []string
	Active     bool

	// Lifetime aggregates
	TimesAnswered int
	TimesCorrect  int
}

// New validates and builds a question.
func New(text string, opts Options, correct string, d Difficulty, tags ...string) (*Question, error) {
	q := &Question{
		ID:         id.New(),
		Text:       text,
		Options:    opts,
		Correct:    NormalizeLabel(correct),
		Difficulty: d,
		Tags:       tags,
		Active:     true,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the invariants enforced at creation and edit time.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text cannot be empty")
	}
	if !q.Options.complete() {
		return errors.New("all four options (A-D) are required")
	}
	if !ValidLabel(q.Correct) {
		return errors.New("correct option must be one of A, B, C, D")
	}
	if !q.Difficulty.Valid() {
		return errors.New("unknown difficulty band")
	}
	return nil
}

// IsCorrect reports whether the chosen label matches the answer key.
func (q *Question) IsCorrect(label string) bool {
	return NormalizeLabel(label) == q.Correct
}

// SuccessRate is the lifetime fraction of correct answers, 0 when the
// question has never been served.
func (q *Question) SuccessRate() float64 {
	if q.TimesAnswered == 0 {
		return 0
	}
	return float64(q.TimesCorrect) / float64(q.TimesAnswered)
}
