package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dev-logger/dev-logger/internal/models"
)

// CreateProject inserts a project with its repositories and the initial
// weekly schedule in one transaction.
func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project, schedule []models.WorkDay) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO projects (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`, project.ID, project.UserID, project.Name, project.Description).
		Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	if err := insertRepositories(ctx, tx, project); err != nil {
		return err
	}

	for _, day := range schedule {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO work_days (project_id, day_of_week, is_work_day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`, project.ID, int(day.DayOfWeek), day.IsWorkDay, day.StartTime, day.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert work day: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetProject(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Description,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	repos, err := s.listRepositories(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Repositories = repos

	return &project, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM projects WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID, &project.UserID, &project.Name, &project.Description,
			&project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	for _, project := range projects {
		repos, err := s.listRepositories(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		project.Repositories = repos
	}

	return projects, nil
}

// UpdateProject replaces the project's name, description and repository set.
func (s *PostgresStore) UpdateProject(ctx context.Context, project *models.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE projects SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, project.Name, project.Description, project.ID, project.UserID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_repositories WHERE project_id = $1`, project.ID); err != nil {
		return fmt.Errorf("failed to clear repositories: %w", err)
	}
	if err := insertRepositories(ctx, tx, project); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func insertRepositories(ctx context.Context, tx *sql.Tx, project *models.Project) error {
	for i := range project.Repositories {
		repo := &project.Repositories[i]
		if repo.ID == uuid.Nil {
			repo.ID = uuid.New()
		}
		repo.ProjectID = project.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_repositories (id, project_id, owner, name)
			VALUES ($1, $2, $3, $4)
		`, repo.ID, repo.ProjectID, repo.Owner, repo.Name)
		if err != nil {
			return fmt.Errorf("failed to insert repository: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) listRepositories(ctx context.Context, projectID uuid.UUID) ([]models.Repository, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, owner, name
		FROM project_repositories WHERE project_id = $1
		ORDER BY owner, name
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repositories: %w", err)
	}
	defer rows.Close()

	var repos []models.Repository
	for rows.Next() {
		var repo models.Repository
		if err := rows.Scan(&repo.ID, &repo.ProjectID, &repo.Owner, &repo.Name); err != nil {
			return nil, fmt.Errorf("failed to scan repository row: %w", err)
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repository rows: %w", err)
	}

	return repos, nil
}
