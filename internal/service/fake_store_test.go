package service

import (
	"context"
	"sort"
	"sync"

	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/report"
	"github.com/preplane/backend/internal/store"
)

// fakeStore is an in-memory store.Store that mirrors the SQLite
// implementation's contract: copies on read, ErrConflict on unique
// violations, served-question snapshots decoupled from the live bank.
type fakeStore struct {
	mu        sync.Mutex
	questions map[string]*question.Question
	sessions  map[string]*examsession.ExamSession
	served    map[string]map[string]*question.Question
	stats     map[string]report.LifetimeStats
	badges    map[string]map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: make(map[string]*question.Question),
		sessions:  make(map[string]*examsession.ExamSession),
		served:    make(map[string]map[string]*question.Question),
		stats:     make(map[string]report.LifetimeStats),
		badges:    make(map[string]map[string]bool),
	}
}

func copyQuestion(q *question.Question) *question.Question {
	c := *q
	c.Tags = append([]string(nil), q.Tags...)
	return &c
}

func copySession(s *examsession.ExamSession) *examsession.ExamSession {
	c := *s
	c.ServedIDs = append([]string(nil), s.ServedIDs...)
	c.Responses = append([]examsession.Response(nil), s.Responses...)
	if s.EndedAt != nil {
		ended := *s.EndedAt
		c.EndedAt = &ended
	}
	return &c
}

func (f *fakeStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions[q.ID] = copyQuestion(q)
	return nil
}

func (f *fakeStore) GetQuestion(ctx context.Context, id string) (*question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyQuestion(q), nil
}

func (f *fakeStore) ListQuestions(ctx context.Context) ([]*question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*question.Question, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, copyQuestion(q))
	}
	return out, nil
}

func (f *fakeStore) UpdateQuestion(ctx context.Context, q *question.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[q.ID]; !ok {
		return store.ErrNotFound
	}
	f.questions[q.ID] = copyQuestion(q)
	return nil
}

func (f *fakeStore) DeactivateQuestion(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return store.ErrNotFound
	}
	q.Active = false
	return nil
}

func (f *fakeStore) DeleteQuestion(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeStore) ListEligibleQuestions(ctx context.Context, d question.Difficulty, exclude []string) ([]*question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []*question.Question
	for _, q := range f.questions {
		if q.Active && q.Difficulty == d && !excluded[q.ID] {
			out = append(out, copyQuestion(q))
		}
	}
	return out, nil
}

func (f *fakeStore) BumpQuestionStats(ctx context.Context, id string, correct bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return store.ErrNotFound
	}
	q.TimesAnswered++
	if correct {
		q.TimesCorrect++
	}
	return nil
}

func (f *fakeStore) CreateSession(ctx context.Context, s *examsession.ExamSession, first *question.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.sessions {
		if existing.UserID == s.UserID && existing.Status == examsession.StatusActive {
			return store.ErrConflict
		}
	}
	f.sessions[s.ID] = copySession(s)
	f.served[s.ID] = map[string]*question.Question{first.ID: copyQuestion(first)}
	return nil
}

func (f *fakeStore) GetSession(ctx context.Context, id string) (*examsession.ExamSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copySession(s), nil
}

func (f *fakeStore) GetActiveSession(ctx context.Context, userID string) (*examsession.ExamSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID && s.Status == examsession.StatusActive {
			return copySession(s), nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CountSessions(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListTerminatedSessions(ctx context.Context, userID string) ([]*examsession.ExamSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*examsession.ExamSession
	for _, s := range f.sessions {
		if s.UserID == userID && s.Status != examsession.StatusActive {
			out = append(out, copySession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

func (f *fakeStore) GetServedQuestion(ctx context.Context, sessionID, questionID string) (*question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.served[sessionID][questionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyQuestion(q), nil
}

func (f *fakeStore) ApplyAnswer(ctx context.Context, s *examsession.ExamSession, r examsession.Response, next *question.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.sessions[s.ID]
	if !ok {
		return store.ErrNotFound
	}
	for _, prev := range stored.Responses {
		if prev.QuestionID == r.QuestionID {
			return store.ErrConflict
		}
	}
	f.sessions[s.ID] = copySession(s)
	if next != nil {
		f.served[s.ID][next.ID] = copyQuestion(next)
	}
	return nil
}

func (f *fakeStore) FinishSession(ctx context.Context, s *examsession.ExamSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.sessions[s.ID]
	if !ok {
		return store.ErrNotFound
	}
	if stored.Status != examsession.StatusActive {
		return store.ErrConflict
	}
	f.sessions[s.ID] = copySession(s)
	return nil
}

func (f *fakeStore) GetLifetimeStats(ctx context.Context, userID string) (report.LifetimeStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[userID], nil
}

func (f *fakeStore) AddLifetimeStats(ctx context.Context, userID string, exams, correct, xp int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.stats[userID]
	st.ExamsTaken += exams
	st.TotalCorrect += correct
	st.TotalXP += xp
	f.stats[userID] = st
	return nil
}

func (f *fakeStore) ListBadges(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for b := range f.badges[userID] {
		out = append(out, b)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) AwardBadges(ctx context.Context, userID string, badges []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.badges[userID] == nil {
		f.badges[userID] = make(map[string]bool)
	}
	var awarded []string
	for _, b := range badges {
		if !f.badges[userID][b] {
			f.badges[userID][b] = true
			awarded = append(awarded, b)
		}
	}
	return awarded, nil
}

var _ store.Store = (*fakeStore)(nil)
