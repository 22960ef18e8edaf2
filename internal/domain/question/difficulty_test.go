package question_test

import (
	"testing"

	"github.com/preplane/backend/internal/domain/question"
)

func TestLevels_OrderedEasiestFirst(t *testing.T) {
	want := []question.Difficulty{
		question.VeryEasy, question.Easy, question.Moderate, question.Difficult,
	}
	got := question.Levels()
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAnchor_StrictlyIncreasing(t *testing.T) {
	levels := question.Levels()
	for i := 1; i < len(levels); i++ {
		if levels[i].Anchor() <= levels[i-1].Anchor() {
			t.Errorf("anchor of %s (%v) should exceed %s (%v)",
				levels[i], levels[i].Anchor(), levels[i-1], levels[i-1].Anchor())
		}
	}
}

func TestValid(t *testing.T) {
	for _, d := range question.Levels() {
		if !d.Valid() {
			t.Errorf("expected %s to be valid", d)
		}
	}
	if question.Difficulty("hardcore").Valid() {
		t.Error("expected unknown band to be invalid")
	}
}

func TestNearest_DistanceOrderTiesTowardEasier(t *testing.T) {
	tests := []struct {
		band question.Difficulty
		want []question.Difficulty
	}{
		{question.VeryEasy, []question.Difficulty{question.VeryEasy, question.Easy, question.Moderate, question.Difficult}},
		{question.Easy, []question.Difficulty{question.Easy, question.VeryEasy, question.Moderate, question.Difficult}},
		{question.Moderate, []question.Difficulty{question.Moderate, question.Easy, question.Difficult, question.VeryEasy}},
		{question.Difficult, []question.Difficulty{question.Difficult, question.Moderate, question.Easy, question.VeryEasy}},
	}
	for _, tt := range tests {
		got := tt.band.Nearest()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %d bands, got %d", tt.band, len(tt.want), len(got))
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: position %d: expected %s, got %s", tt.band, i, tt.want[i], got[i])
			}
		}
	}
}
