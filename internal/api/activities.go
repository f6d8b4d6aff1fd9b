package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/dev-logger/dev-logger/internal/errors"
	"github.com/dev-logger/dev-logger/internal/models"
)

const dateLayout = "2006-01-02"

type activityRequest struct {
	Date    string `json:"date" validate:"required"`
	Content string `json:"content" validate:"required,max=1000"`
	Status  string `json:"status" validate:"required,oneof=todo doing done"`
}

func (h *Handler) ListActivities(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "Invalid date parameter (use YYYY-MM-DD)")
			return
		}
		date = &parsed
	}

	activities, err := h.store.ListActivities(c.Request.Context(), project.ID, date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list activities")
		respondWithError(c, http.StatusInternalServerError, "Failed to list activities")
		return
	}
	if activities == nil {
		activities = []*models.DailyActivity{}
	}

	c.JSON(http.StatusOK, activities)
}

func (h *Handler) CreateActivity(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	activity, ok := h.bindActivity(c, project.ID)
	if !ok {
		return
	}

	if err := h.store.CreateActivity(c.Request.Context(), activity); err != nil {
		h.logger.WithError(err).Error("Failed to create activity")
		respondWithError(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, activity)
}

func (h *Handler) UpdateActivity(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(c.Param("activityID"))
	if err != nil {
		respondWithAppError(c, apperrors.NewValidationError("Invalid activity ID", err))
		return
	}

	activity, ok := h.bindActivity(c, project.ID)
	if !ok {
		return
	}
	activity.ID = activityID

	if err := h.store.UpdateActivity(c.Request.Context(), activity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithAppError(c, apperrors.NewNotFoundError("Activity not found", nil))
			return
		}
		h.logger.WithError(err).Error("Failed to update activity")
		respondWithError(c, http.StatusInternalServerError, "Failed to update activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *Handler) DeleteActivity(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(c.Param("activityID"))
	if err != nil {
		respondWithAppError(c, apperrors.NewValidationError("Invalid activity ID", err))
		return
	}

	if err := h.store.DeleteActivity(c.Request.Context(), activityID, project.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithAppError(c, apperrors.NewNotFoundError("Activity not found", nil))
			return
		}
		h.logger.WithError(err).Error("Failed to delete activity")
		respondWithError(c, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) bindActivity(c *gin.Context, projectID uuid.UUID) (*models.DailyActivity, bool) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)")
		return nil, false
	}

	return &models.DailyActivity{
		ProjectID: projectID,
		Date:      date,
		Content:   req.Content,
		Status:    models.ActivityStatus(req.Status),
	}, true
}
