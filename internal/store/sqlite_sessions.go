package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/preplane/backend/internal/domain/examsession"
	"github.com/preplane/backend/internal/domain/question"
)

const sessionColumns = `id, user_id, exam_number, status, started_at, ended_at,
	duration_min, ability, initial_ability`

func scanSession(row interface{ Scan(...any) error }) (*examsession.ExamSession, error) {
	var sess examsession.ExamSession
	var status string
	var startedAt int64
	var endedAt sql.NullInt64
	err := row.Scan(
		&sess.ID, &sess.UserID, &sess.ExamNumber, &status,
		&startedAt, &endedAt, &sess.DurationMin,
		&sess.Ability, &sess.InitialAbility,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.Status = examsession.Status(status)
	sess.StartedAt = time.Unix(startedAt, 0).UTC()
	if endedAt.Valid {
		t := time.Unix(endedAt.Int64, 0).UTC()
		sess.EndedAt = &t
	}
	return &sess, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *examsession.ExamSession, first *question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
			(id, user_id, exam_number, status, started_at, ended_at,
			 duration_min, ability, initial_ability)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.ExamNumber, string(sess.Status),
		sess.StartedAt.UTC().Unix(), sess.DurationMin,
		sess.Ability, sess.InitialAbility,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	if err := insertServedQuestion(ctx, tx, sess.ID, 0, first); err != nil {
		return err
	}

	return tx.Commit()
}

func insertServedQuestion(ctx context.Context, tx *sql.Tx, sessionID string, position int, q *question.Question) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session_questions
			(session_id, question_id, position, text,
			 option_a, option_b, option_c, option_d, correct_option, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, q.ID, position, q.Text,
		q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		q.Correct, string(q.Difficulty),
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*examsession.ExamSession, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	sess, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadSessionLog(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteStore) GetActiveSession(ctx context.Context, userID string) (*examsession.ExamSession, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE user_id = ? AND status = ?",
		userID, string(examsession.StatusActive))
	sess, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadSessionLog(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// loadSessionLog fills ServedIDs (ordered) and the response log.
func (s *SQLiteStore) loadSessionLog(ctx context.Context, sess *examsession.ExamSession) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id FROM session_questions
		WHERE session_id = ? ORDER BY position`, sess.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var qid string
		if err := rows.Scan(&qid); err != nil {
			return err
		}
		sess.ServedIDs = append(sess.ServedIDs, qid)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	respRows, err := s.db.QueryContext(ctx, `
		SELECT r.question_id, r.chosen, r.correct, r.time_spent_sec,
		       r.ability_before, r.ability_after, r.answered_at,
		       sq.text, sq.option_a, sq.option_b, sq.option_c, sq.option_d,
		       sq.correct_option, sq.difficulty
		FROM responses r
		JOIN session_questions sq
		    ON sq.session_id = r.session_id AND sq.question_id = r.question_id
		WHERE r.session_id = ?
		ORDER BY r.id`, sess.ID)
	if err != nil {
		return err
	}
	defer respRows.Close()

	for respRows.Next() {
		var r examsession.Response
		var answeredAt int64
		var difficulty string
		if err := respRows.Scan(
			&r.QuestionID, &r.Chosen, &r.Correct, &r.TimeSpentSec,
			&r.AbilityBefore, &r.AbilityAfter, &answeredAt,
			&r.Text, &r.Options.A, &r.Options.B, &r.Options.C, &r.Options.D,
			&r.CorrectOption, &difficulty,
		); err != nil {
			return err
		}
		r.AnsweredAt = time.Unix(answeredAt, 0).UTC()
		r.Difficulty = question.Difficulty(difficulty)
		sess.Responses = append(sess.Responses, r)
	}
	return respRows.Err()
}

func (s *SQLiteStore) CountSessions(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sessions WHERE user_id = ?", userID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) ListTerminatedSessions(ctx context.Context, userID string) ([]*examsession.ExamSession, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+` FROM sessions
		WHERE user_id = ? AND status != ?
		ORDER BY started_at DESC`,
		userID, string(examsession.StatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*examsession.ExamSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if err := s.loadSessionLog(ctx, sess); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *SQLiteStore) GetServedQuestion(ctx context.Context, sessionID, questionID string) (*question.Question, error) {
	var q question.Question
	var difficulty string
	err := s.db.QueryRowContext(ctx, `
		SELECT question_id, text, option_a, option_b, option_c, option_d,
		       correct_option, difficulty
		FROM session_questions
		WHERE session_id = ? AND question_id = ?`,
		sessionID, questionID,
	).Scan(
		&q.ID, &q.Text,
		&q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
		&q.Correct, &difficulty,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q.Difficulty = question.Difficulty(difficulty)
	q.Active = true
	return &q, nil
}

func (s *SQLiteStore) ApplyAnswer(ctx context.Context, sess *examsession.ExamSession, r examsession.Response, next *question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO responses
			(session_id, question_id, chosen, correct, time_spent_sec,
			 ability_before, ability_after, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, r.QuestionID, r.Chosen, r.Correct, r.TimeSpentSec,
		r.AbilityBefore, r.AbilityAfter, r.AnsweredAt.UTC().Unix(),
	)
	// A duplicate (session, question) pair means a retried submission;
	// it must not double-count.
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	var endedAt any
	if sess.EndedAt != nil {
		endedAt = sess.EndedAt.UTC().Unix()
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE sessions SET ability = ?, status = ?, ended_at = ?
		WHERE id = ?`,
		sess.Ability, string(sess.Status), endedAt, sess.ID,
	); err != nil {
		return err
	}

	if next != nil {
		if err := insertServedQuestion(ctx, tx, sess.ID, len(sess.ServedIDs)-1, next); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) FinishSession(ctx context.Context, sess *examsession.ExamSession) error {
	var endedAt any
	if sess.EndedAt != nil {
		endedAt = sess.EndedAt.UTC().Unix()
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET status = ?, ended_at = ?
		WHERE id = ? AND status = ?`,
		string(sess.Status), endedAt, sess.ID, string(examsession.StatusActive),
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	// Zero rows means the session already reached a terminal status.
	if n == 0 {
		return ErrConflict
	}
	return nil
}
