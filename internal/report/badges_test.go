package report_test

import (
	"testing"

	"github.com/preplane/backend/internal/report"
)

func contains(badges []string, badge string) bool {
	for _, b := range badges {
		if b == badge {
			return true
		}
	}
	return false
}

func TestEarned_Empty(t *testing.T) {
	if got := report.Earned(report.LifetimeStats{}); len(got) != 0 {
		t.Errorf("expected no badges for zero stats, got %v", got)
	}
}

func TestEarned_FirstExam(t *testing.T) {
	got := report.Earned(report.LifetimeStats{ExamsTaken: 1})
	if !contains(got, "first_exam") {
		t.Errorf("expected first_exam after one exam, got %v", got)
	}
	if contains(got, "regular") {
		t.Errorf("regular needs 5 exams, got %v", got)
	}
}

func TestEarned_ThresholdsAreInclusive(t *testing.T) {
	got := report.Earned(report.LifetimeStats{ExamsTaken: 5, TotalCorrect: 10, TotalXP: 1000})
	for _, want := range []string{"first_exam", "regular", "sharp", "xp_1k"} {
		if !contains(got, want) {
			t.Errorf("expected %s at exactly its threshold, got %v", want, got)
		}
	}
	for _, not := range []string{"veteran", "scholar", "master", "xp_10k"} {
		if contains(got, not) {
			t.Errorf("did not expect %s yet, got %v", not, got)
		}
	}
}

func TestEarned_EverythingAtTheTop(t *testing.T) {
	got := report.Earned(report.LifetimeStats{ExamsTaken: 100, TotalCorrect: 1000, TotalXP: 50000})
	if len(got) != len(report.Rules) {
		t.Errorf("expected all %d badges, got %d: %v", len(report.Rules), len(got), got)
	}
}
