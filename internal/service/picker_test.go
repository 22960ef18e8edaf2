package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preplane/backend/internal/domain/question"
)

func addQuestion(t *testing.T, fs *fakeStore, text string, d question.Difficulty) *question.Question {
	t.Helper()
	q, err := question.New(text, question.Options{A: "a", B: "b", C: "c", D: "d"}, "A", d)
	require.NoError(t, err)
	require.NoError(t, fs.SaveQuestion(context.Background(), q))
	return q
}

func TestPick_PrefersExactBand(t *testing.T) {
	fs := newFakeStore()
	addQuestion(t, fs, "easy one", question.Easy)
	addQuestion(t, fs, "moderate one", question.Moderate)
	p := NewPicker(fs)

	q, err := p.Pick(context.Background(), question.Easy, nil)
	require.NoError(t, err)
	assert.Equal(t, question.Easy, q.Difficulty)
}

func TestPick_FallsBackToNearestBand(t *testing.T) {
	fs := newFakeStore()
	addQuestion(t, fs, "only moderate", question.Moderate)
	p := NewPicker(fs)

	// No easy questions exist; moderate is closer to easy than difficult.
	q, err := p.Pick(context.Background(), question.Easy, nil)
	require.NoError(t, err)
	assert.Equal(t, question.Moderate, q.Difficulty)
}

func TestPick_ExcludesServedQuestions(t *testing.T) {
	fs := newFakeStore()
	q1 := addQuestion(t, fs, "first", question.Easy)
	q2 := addQuestion(t, fs, "second", question.Easy)
	p := NewPicker(fs)

	q, err := p.Pick(context.Background(), question.Easy, []string{q1.ID})
	require.NoError(t, err)
	assert.Equal(t, q2.ID, q.ID)
}

func TestPick_SkipsInactiveQuestions(t *testing.T) {
	fs := newFakeStore()
	q1 := addQuestion(t, fs, "retired", question.Easy)
	q2 := addQuestion(t, fs, "live", question.Easy)
	require.NoError(t, fs.DeactivateQuestion(context.Background(), q1.ID))
	p := NewPicker(fs)

	q, err := p.Pick(context.Background(), question.Easy, nil)
	require.NoError(t, err)
	assert.Equal(t, q2.ID, q.ID)
}

func TestPick_Exhausted(t *testing.T) {
	fs := newFakeStore()
	q1 := addQuestion(t, fs, "the only one", question.Difficult)
	p := NewPicker(fs)

	_, err := p.Pick(context.Background(), question.VeryEasy, []string{q1.ID})
	assert.ErrorIs(t, err, errBankExhausted)
}
