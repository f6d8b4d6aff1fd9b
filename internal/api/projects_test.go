package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-logger/dev-logger/internal/models"
)

func TestCreateProject(t *testing.T) {
	t.Run("creates and seeds the default schedule", func(t *testing.T) {
		env := newTestEnv(t)

		env.store.On("CreateProject", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.UserID == env.userID && p.Name == "Backend" && len(p.Repositories) == 1
		}), models.DefaultWorkWeek()).Return(nil)

		body := `{"name":"Backend","description":"API work","repositories":[{"owner":"acme","name":"api"}]}`
		w := env.do(t, "POST", "/api/v1/projects", strings.NewReader(body))

		require.Equal(t, http.StatusCreated, w.Code)
		env.store.AssertExpectations(t)
	})

	t.Run("rejects a project without repositories", func(t *testing.T) {
		env := newTestEnv(t)

		body := `{"name":"Backend","repositories":[]}`
		w := env.do(t, "POST", "/api/v1/projects", strings.NewReader(body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env.store.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		env := newTestEnv(t)

		body := `{"repositories":[{"owner":"acme","name":"api"}]}`
		w := env.do(t, "POST", "/api/v1/projects", strings.NewReader(body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListProjects(t *testing.T) {
	t.Run("returns an empty array, not null", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.On("ListProjects", mock.Anything, env.userID).Return([]*models.Project(nil), nil)

		w := env.do(t, "GET", "/api/v1/projects", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestGetProject(t *testing.T) {
	t.Run("404 for another user's project", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := uuid.New()
		env.store.On("GetProject", mock.Anything, projectID, env.userID).Return(nil, nil)

		w := env.do(t, "GET", "/api/v1/projects/"+projectID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Code)
	})

	t.Run("400 for a malformed ID", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, "GET", "/api/v1/projects/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Code)
	})

	t.Run("returns the project", func(t *testing.T) {
		env := newTestEnv(t)
		project := &models.Project{ID: uuid.New(), UserID: env.userID, Name: "Backend"}
		env.store.On("GetProject", mock.Anything, project.ID, env.userID).Return(project, nil)

		w := env.do(t, "GET", "/api/v1/projects/"+project.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Project
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, project.ID, got.ID)
		assert.Equal(t, "Backend", got.Name)
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("204 on success", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := uuid.New()
		env.store.On("DeleteProject", mock.Anything, projectID, env.userID).Return(nil)

		w := env.do(t, "DELETE", "/api/v1/projects/"+projectID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("404 when nothing was deleted", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := uuid.New()
		env.store.On("DeleteProject", mock.Anything, projectID, env.userID).Return(sql.ErrNoRows)

		w := env.do(t, "DELETE", "/api/v1/projects/"+projectID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
