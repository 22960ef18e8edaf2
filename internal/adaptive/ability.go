// Package adaptive implements the ability estimator: a one-parameter
// logistic update of a scalar proficiency estimate, applied after every
// answer.
package adaptive

import (
	"math"

	"github.com/preplane/backend/internal/domain/question"
)

const (
	AbilityMin     = 0.0
	AbilityMax     = 3.0
	DefaultAbility = 0.5

	// step is the maximum ability movement per answer, scale flattens
	// the logistic curve. Tunable; direction and clamping are not.
	step  = 0.4
	scale = 1.0
)

// Expected returns the probability that a user with the given ability
// answers a question of the given difficulty correctly.
func Expected(ability float64, d question.Difficulty) float64 {
	x := (ability - d.Anchor()) / scale
	return 1.0 / (1.0 + math.Exp(-x))
}

// UpdateAbility returns the new ability after one answer. Correct
// answers always raise the estimate, incorrect ones always lower it.
// The surprise factor does the adaptive work: answering above-ability
// questions correctly moves the estimate more than routine successes,
// and missing an easy question costs more than missing a hard one.
// The result is clamped to [AbilityMin, AbilityMax].
func UpdateAbility(current float64, d question.Difficulty, correct bool) float64 {
	p := Expected(current, d)
	var delta float64
	if correct {
		delta = step * (1 - p)
	} else {
		delta = -step * p
	}
	return clamp(current + delta)
}

// BandFor maps an ability value to the difficulty band the next
// question should come from. Monotonic: higher ability never maps to an
// easier band.
func BandFor(ability float64) question.Difficulty {
	switch {
	case ability < 0.75:
		return question.VeryEasy
	case ability < 1.5:
		return question.Easy
	case ability < 2.25:
		return question.Moderate
	default:
		return question.Difficult
	}
}

func clamp(a float64) float64 {
	if a < AbilityMin {
		return AbilityMin
	}
	if a > AbilityMax {
		return AbilityMax
	}
	return a
}
