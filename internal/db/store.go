package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/dev-logger/dev-logger/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store defines the interface for database operations
type Store interface {
	// User operations
	UpsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByGitHubID(ctx context.Context, githubID int64) (*models.User, error)

	// Project operations
	CreateProject(ctx context.Context, project *models.Project, schedule []models.WorkDay) error
	GetProject(ctx context.Context, id, userID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id, userID uuid.UUID) error

	// Schedule operations
	GetSchedule(ctx context.Context, projectID uuid.UUID) ([]models.WorkDay, error)
	ReplaceSchedule(ctx context.Context, projectID uuid.UUID, days []models.WorkDay) error

	// Activity operations
	CreateActivity(ctx context.Context, activity *models.DailyActivity) error
	GetActivity(ctx context.Context, id, projectID uuid.UUID) (*models.DailyActivity, error)
	ListActivities(ctx context.Context, projectID uuid.UUID, date *time.Time) ([]*models.DailyActivity, error)
	UpdateActivity(ctx context.Context, activity *models.DailyActivity) error
	DeleteActivity(ctx context.Context, id, projectID uuid.UUID) error
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
