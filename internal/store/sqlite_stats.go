package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/preplane/backend/internal/report"
)

func (s *SQLiteStore) GetLifetimeStats(ctx context.Context, userID string) (report.LifetimeStats, error) {
	var stats report.LifetimeStats
	err := s.db.QueryRowContext(ctx, `
		SELECT exams_taken, total_correct, total_xp
		FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&stats.ExamsTaken, &stats.TotalCorrect, &stats.TotalXP)
	if errors.Is(err, sql.ErrNoRows) {
		// No row yet means the user has never finished an exam.
		return report.LifetimeStats{}, nil
	}
	if err != nil {
		return report.LifetimeStats{}, err
	}
	return stats, nil
}

func (s *SQLiteStore) AddLifetimeStats(ctx context.Context, userID string, exams, correct, xp int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, exams_taken, total_correct, total_xp)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			exams_taken = exams_taken + excluded.exams_taken,
			total_correct = total_correct + excluded.total_correct,
			total_xp = total_xp + excluded.total_xp`,
		userID, exams, correct, xp,
	)
	return err
}

func (s *SQLiteStore) ListBadges(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT badge FROM user_badges WHERE user_id = ? ORDER BY earned_at, badge", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (s *SQLiteStore) AwardBadges(ctx context.Context, userID string, badges []string) ([]string, error) {
	var awarded []string
	now := time.Now().UTC().Unix()
	for _, badge := range badges {
		result, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO user_badges (user_id, badge, earned_at)
			VALUES (?, ?, ?)`,
			userID, badge, now,
		)
		if err != nil {
			return awarded, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return awarded, err
		}
		if n > 0 {
			awarded = append(awarded, badge)
		}
	}
	return awarded, nil
}
