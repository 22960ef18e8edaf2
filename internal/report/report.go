// Package report turns a session's response log into the analytics the
// client renders after an exam: accuracy breakdowns, timing, ability
// trajectory, XP and badges.
package report

import (
	"time"

	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/domain/question"
)

type DifficultyStat struct {
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// TimingStats is omitted from the report when there are no responses.
type TimingStats struct {
	FastestSec int     `json:"fastest_seconds"`
	AverageSec float64 `json:"average_seconds"`
	SlowestSec int     `json:"slowest_seconds"`
}

type Report struct {
	SessionID      string                                     `json:"session_id"`
	ExamNumber     int                                        `json:"exam_number"`
	Status         examsession.Status                         `json:"status"`
	TotalQuestions int                                        `json:"total_questions"`
	Correct        int                                        `json:"correct"`
	Accuracy       float64                                    `json:"accuracy"`
	InitialAbility float64                                    `json:"initial_ability"`
	FinalAbility   float64                                    `json:"final_ability"`
	AbilityDelta   float64                                    `json:"ability_delta"`
	XP             int                                        `json:"xp"`
	NewBadges      []string                                   `json:"new_badges"`
	ByDifficulty   map[question.Difficulty]DifficultyStat     `json:"by_difficulty"`
	Timing         *TimingStats                               `json:"timing,omitempty"`
	Timeline       []examsession.Response                     `json:"timeline"`
	StartedAt      time.Time                                  `json:"started_at"`
	EndedAt        *time.Time                                 `json:"ended_at,omitempty"`
}

// Build computes a report from the session's response log. Pure: it
// never touches storage, so it works for terminated sessions and for
// mid-exam progress queries alike. Badge awarding needs lifetime
// counters and happens separately; NewBadges starts empty.
func Build(s *examsession.ExamSession) Report {
	r := Report{
		SessionID:      s.ID,
		ExamNumber:     s.ExamNumber,
		Status:         s.Status,
		TotalQuestions: len(s.Responses),
		Correct:        s.CorrectCount(),
		Accuracy:       s.Accuracy(),
		InitialAbility: s.InitialAbility,
		FinalAbility:   s.Ability,
		AbilityDelta:   s.Ability - s.InitialAbility,
		NewBadges:      []string{},
		ByDifficulty:   make(map[question.Difficulty]DifficultyStat, 4),
		Timeline:       s.Responses,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
	}

	// Every band appears in the breakdown even with zero attempts.
	for _, d := range question.Levels() {
		r.ByDifficulty[d] = DifficultyStat{}
	}
	for _, resp := range s.Responses {
		st := r.ByDifficulty[resp.Difficulty]
		st.Attempted++
		if resp.Correct {
			st.Correct++
		}
		r.ByDifficulty[resp.Difficulty] = st
	}
	for d, st := range r.ByDifficulty {
		if st.Attempted > 0 {
			st.Accuracy = float64(st.Correct) / float64(st.Attempted) * 100
			r.ByDifficulty[d] = st
		}
	}

	if len(s.Responses) > 0 {
		t := TimingStats{
			FastestSec: s.Responses[0].TimeSpentSec,
			SlowestSec: s.Responses[0].TimeSpentSec,
		}
		total := 0
		for _, resp := range s.Responses {
			total += resp.TimeSpentSec
			if resp.TimeSpentSec < t.FastestSec {
				t.FastestSec = resp.TimeSpentSec
			}
			if resp.TimeSpentSec > t.SlowestSec {
				t.SlowestSec = resp.TimeSpentSec
			}
		}
		t.AverageSec = float64(total) / float64(len(s.Responses))
		r.Timing = &t
	}

	r.XP = XPFor(r.Correct, r.Accuracy)
	return r
}

// XPFor is the session XP policy: a flat reward per correct answer plus
// a stepped accuracy bonus. Monotonic in both inputs.
func XPFor(correct int, accuracy float64) int {
	xp := correct * 10
	switch {
	case accuracy >= 90:
		xp += 50
	case accuracy >= 75:
		xp += 25
	case accuracy >= 50:
		xp += 10
	}
	return xp
}
