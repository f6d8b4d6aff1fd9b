package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dev-logger/dev-logger/internal/models"
)

// MockStore is a testify mock of db.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) UpsertUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByGitHubID(ctx context.Context, githubID int64) (*models.User, error) {
	args := m.Called(ctx, githubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) CreateProject(ctx context.Context, project *models.Project, schedule []models.WorkDay) error {
	args := m.Called(ctx, project, schedule)
	return args.Error(0)
}

func (m *MockStore) GetProject(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockStore) ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Project), args.Error(1)
}

func (m *MockStore) UpdateProject(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockStore) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockStore) GetSchedule(ctx context.Context, projectID uuid.UUID) ([]models.WorkDay, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkDay), args.Error(1)
}

func (m *MockStore) ReplaceSchedule(ctx context.Context, projectID uuid.UUID, days []models.WorkDay) error {
	args := m.Called(ctx, projectID, days)
	return args.Error(0)
}

func (m *MockStore) CreateActivity(ctx context.Context, activity *models.DailyActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockStore) GetActivity(ctx context.Context, id, projectID uuid.UUID) (*models.DailyActivity, error) {
	args := m.Called(ctx, id, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyActivity), args.Error(1)
}

func (m *MockStore) ListActivities(ctx context.Context, projectID uuid.UUID, date *time.Time) ([]*models.DailyActivity, error) {
	args := m.Called(ctx, projectID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyActivity), args.Error(1)
}

func (m *MockStore) UpdateActivity(ctx context.Context, activity *models.DailyActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockStore) DeleteActivity(ctx context.Context, id, projectID uuid.UUID) error {
	args := m.Called(ctx, id, projectID)
	return args.Error(0)
}
