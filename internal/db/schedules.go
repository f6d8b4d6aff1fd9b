package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dev-logger/dev-logger/internal/models"
)

func (s *PostgresStore) GetSchedule(ctx context.Context, projectID uuid.UUID) ([]models.WorkDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day_of_week, is_work_day, start_time, end_time
		FROM work_days WHERE project_id = $1
		ORDER BY day_of_week
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	var days []models.WorkDay
	for rows.Next() {
		var day models.WorkDay
		var dow int
		if err := rows.Scan(&dow, &day.IsWorkDay, &day.StartTime, &day.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan work day row: %w", err)
		}
		day.DayOfWeek = time.Weekday(dow)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work day rows: %w", err)
	}

	return days, nil
}

// ReplaceSchedule swaps the whole 7-entry week in one transaction. The
// schedule is never patched per field; callers validate before writing.
func (s *PostgresStore) ReplaceSchedule(ctx context.Context, projectID uuid.UUID, days []models.WorkDay) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_days WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	for _, day := range days {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO work_days (project_id, day_of_week, is_work_day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`, projectID, int(day.DayOfWeek), day.IsWorkDay, day.StartTime, day.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert work day: %w", err)
		}
	}

	return tx.Commit()
}
