package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/preplane/backend/internal/domain/question"
)

const questionColumns = `id, text, option_a, option_b, option_c, option_d,
	correct_option, difficulty, tags, active, times_answered, times_correct`

func scanQuestion(row interface{ Scan(...any) error }) (*question.Question, error) {
	var q question.Question
	var difficulty, tags string
	err := row.Scan(
		&q.ID, &q.Text,
		&q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
		&q.Correct, &difficulty, &tags, &q.Active,
		&q.TimesAnswered, &q.TimesCorrect,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q.Difficulty = question.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	tags, err := json.Marshal(q.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO questions
			(id, text, option_a, option_b, option_c, option_d,
			 correct_option, difficulty, tags, active, times_answered, times_correct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Text,
		q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		q.Correct, string(q.Difficulty), string(tags), q.Active,
		q.TimesAnswered, q.TimesCorrect,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id string) (*question.Question, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
	return scanQuestion(row)
}

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]*question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions ORDER BY difficulty, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) UpdateQuestion(ctx context.Context, q *question.Question) error {
	tags, err := json.Marshal(q.Tags)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE questions
		SET text = ?, option_a = ?, option_b = ?, option_c = ?, option_d = ?,
		    correct_option = ?, difficulty = ?, tags = ?, active = ?
		WHERE id = ?`,
		q.Text,
		q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		q.Correct, string(q.Difficulty), string(tags), q.Active,
		q.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func (s *SQLiteStore) DeactivateQuestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE questions SET active = FALSE WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func (s *SQLiteStore) ListEligibleQuestions(ctx context.Context, d question.Difficulty, exclude []string) ([]*question.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions WHERE active = TRUE AND difficulty = ?"
	args := []any{string(d)}
	if len(exclude) > 0 {
		query += " AND id NOT IN (" + placeholders(len(exclude)) + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) BumpQuestionStats(ctx context.Context, id string, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE questions
		SET times_answered = times_answered + 1,
		    times_correct = times_correct + ?
		WHERE id = ?`,
		inc, id,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func requireRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
