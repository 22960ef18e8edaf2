package service

import (
	"context"
	"math/rand"

	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/store"
)

// Picker selects the next question for a session: uniform random among
// active questions in the target band, excluding everything already
// served. When the exact band is empty it falls back to the nearest
// band with questions left, so sessions keep going as the bank thins
// out instead of dead-ending.
type Picker struct {
	store store.Store
}

func NewPicker(s store.Store) *Picker {
	return &Picker{store: s}
}

func (p *Picker) Pick(ctx context.Context, band question.Difficulty, exclude []string) (*question.Question, error) {
	for _, b := range band.Nearest() {
		candidates, err := p.store.ListEligibleQuestions(ctx, b, exclude)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			return candidates[rand.Intn(len(candidates))], nil
		}
	}
	return nil, errBankExhausted
}
