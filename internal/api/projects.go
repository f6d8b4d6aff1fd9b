package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dev-logger/dev-logger/internal/auth"
	apperrors "github.com/dev-logger/dev-logger/internal/errors"
	"github.com/dev-logger/dev-logger/internal/models"
)

type repositoryRequest struct {
	Owner string `json:"owner" validate:"required,max=100"`
	Name  string `json:"name" validate:"required,max=100"`
}

type projectRequest struct {
	Name         string              `json:"name" validate:"required,max=100"`
	Description  string              `json:"description" validate:"max=500"`
	Repositories []repositoryRequest `json:"repositories" validate:"required,min=1,dive"`
}

func (r *projectRequest) toModel(userID uuid.UUID) *models.Project {
	project := &models.Project{
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
	}
	for _, repo := range r.Repositories {
		project.Repositories = append(project.Repositories, models.Repository{
			Owner: repo.Owner,
			Name:  repo.Name,
		})
	}
	return project
}

// CreateProject registers a project and seeds its default weekly schedule
// (Mon-Fri 09:00-18:00 working, weekend off).
func (h *Handler) CreateProject(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	project := req.toModel(userID)
	if err := h.store.CreateProject(c.Request.Context(), project, models.DefaultWorkWeek()); err != nil {
		h.logger.WithError(err).Error("Failed to create project")
		respondWithError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(c *gin.Context) {
	userID, _ := auth.UserID(c)

	projects, err := h.store.ListProjects(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list projects")
		respondWithError(c, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}

	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	userID, _ := auth.UserID(c)
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWithAppError(c, apperrors.NewValidationError("Invalid project ID", err))
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	project := req.toModel(userID)
	project.ID = projectID
	if err := h.store.UpdateProject(c.Request.Context(), project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithAppError(c, apperrors.NewNotFoundError("Project not found", nil))
			return
		}
		h.logger.WithError(err).Error("Failed to update project")
		respondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	userID, _ := auth.UserID(c)
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWithAppError(c, apperrors.NewValidationError("Invalid project ID", err))
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithAppError(c, apperrors.NewNotFoundError("Project not found", nil))
			return
		}
		h.logger.WithError(err).Error("Failed to delete project")
		respondWithError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// loadProject resolves the :id path parameter to one of the authenticated
// user's projects, writing the error response itself when it cannot.
func (h *Handler) loadProject(c *gin.Context) (*models.Project, bool) {
	userID, _ := auth.UserID(c)
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWithAppError(c, apperrors.NewValidationError("Invalid project ID", err))
		return nil, false
	}

	project, err := h.store.GetProject(c.Request.Context(), projectID, userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load project")
		respondWithAppError(c, apperrors.NewInternalError("Failed to load project", err))
		return nil, false
	}
	if project == nil {
		respondWithAppError(c, apperrors.NewNotFoundError("Project not found", nil))
		return nil, false
	}

	return project, true
}
