package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dev-logger/dev-logger/internal/models"
)

func (s *PostgresStore) CreateActivity(ctx context.Context, activity *models.DailyActivity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO daily_activities (id, project_id, activity_date, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`, activity.ID, activity.ProjectID, activity.Date, activity.Content, string(activity.Status)).
		Scan(&activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetActivity(ctx context.Context, id, projectID uuid.UUID) (*models.DailyActivity, error) {
	var activity models.DailyActivity
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, activity_date, content, status, created_at, updated_at
		FROM daily_activities WHERE id = $1 AND project_id = $2
	`, id, projectID).Scan(
		&activity.ID, &activity.ProjectID, &activity.Date, &activity.Content,
		&status, &activity.CreatedAt, &activity.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	activity.Status = models.ActivityStatus(status)

	return &activity, nil
}

func (s *PostgresStore) ListActivities(ctx context.Context, projectID uuid.UUID, date *time.Time) ([]*models.DailyActivity, error) {
	query := `
		SELECT id, project_id, activity_date, content, status, created_at, updated_at
		FROM daily_activities WHERE project_id = $1`
	args := []interface{}{projectID}
	if date != nil {
		query += ` AND activity_date = $2`
		args = append(args, *date)
	}
	query += ` ORDER BY activity_date, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.DailyActivity
	for rows.Next() {
		var activity models.DailyActivity
		var status string
		if err := rows.Scan(
			&activity.ID, &activity.ProjectID, &activity.Date, &activity.Content,
			&status, &activity.CreatedAt, &activity.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activity.Status = models.ActivityStatus(status)
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

func (s *PostgresStore) UpdateActivity(ctx context.Context, activity *models.DailyActivity) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE daily_activities
		SET activity_date = $1, content = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND project_id = $5
	`, activity.Date, activity.Content, string(activity.Status), activity.ID, activity.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) DeleteActivity(ctx context.Context, id, projectID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM daily_activities WHERE id = $1 AND project_id = $2
	`, id, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
