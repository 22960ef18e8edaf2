package question_test

import (
	"testing"

	"github.com/preplane/backend/internal/domain/question"
)

func validOptions() question.Options {
	return question.Options{A: "alpha", B: "beta", C: "gamma", D: "delta"}
}

func TestNew_Valid(t *testing.T) {
	q, err := question.New("What comes after alpha?", validOptions(), "b", question.Easy, "greek")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID == "" {
		t.Error("expected a generated id")
	}
	if q.Correct != "B" {
		t.Errorf("expected correct label to be normalized to B, got %q", q.Correct)
	}
	if !q.Active {
		t.Error("new questions should be active")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		opts       question.Options
		correct    string
		difficulty question.Difficulty
	}{
		{"empty text", "  ", validOptions(), "A", question.Easy},
		{"missing option", "q?", question.Options{A: "a", B: "b", C: "c"}, "A", question.Easy},
		{"bad correct label", "q?", validOptions(), "E", question.Easy},
		{"empty correct label", "q?", validOptions(), "", question.Easy},
		{"unknown difficulty", "q?", validOptions(), "A", question.Difficulty("extreme")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := question.New(tt.text, tt.opts, tt.correct, tt.difficulty); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIsCorrect_NormalizesLabel(t *testing.T) {
	q, err := question.New("q?", validOptions(), "C", question.Moderate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, label := range []string{"C", "c", " c ", "c\t"} {
		if !q.IsCorrect(label) {
			t.Errorf("expected %q to be accepted as correct", label)
		}
	}
	if q.IsCorrect("A") {
		t.Error("expected A to be incorrect")
	}
	if q.IsCorrect("") {
		t.Error("expected empty label to be incorrect")
	}
}

func TestOptionsGet(t *testing.T) {
	opts := validOptions()
	if text, ok := opts.Get(" d "); !ok || text != "delta" {
		t.Errorf("expected (delta, true), got (%q, %v)", text, ok)
	}
	if _, ok := opts.Get("E"); ok {
		t.Error("expected unknown label to report false")
	}
}

func TestSuccessRate(t *testing.T) {
	q, _ := question.New("q?", validOptions(), "A", question.Easy)
	if got := q.SuccessRate(); got != 0 {
		t.Errorf("expected 0 for an unserved question, got %v", got)
	}

	q.TimesAnswered = 8
	q.TimesCorrect = 6
	if got := q.SuccessRate(); got != 0.75 {
		t.Errorf("expected 0.75, got %v", got)
	}
}
