package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-logger/dev-logger/internal/models"
	"github.com/dev-logger/dev-logger/internal/report"
)

type workDayRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	IsWorkDay bool   `json:"is_work_day"`
	StartTime string `json:"start_time" validate:"required_if=IsWorkDay true"`
	EndTime   string `json:"end_time" validate:"required_if=IsWorkDay true"`
}

func (h *Handler) GetSchedule(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	days, err := h.store.GetSchedule(c.Request.Context(), project.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load schedule")
		respondWithError(c, http.StatusInternalServerError, "Failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, days)
}

// UpdateSchedule replaces the whole weekly schedule. The invariants are
// enforced here, at write time: all 7 weekdays exactly once, and on working
// days a parseable start strictly before end.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	var req []workDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	days := make([]models.WorkDay, 0, len(req))
	for _, day := range req {
		if err := h.validate.Struct(&day); err != nil {
			respondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		days = append(days, models.WorkDay{
			DayOfWeek: time.Weekday(day.DayOfWeek),
			IsWorkDay: day.IsWorkDay,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}

	schedule, err := report.NewSchedule(days)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := schedule.Validate(); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.ReplaceSchedule(c.Request.Context(), project.ID, days); err != nil {
		h.logger.WithError(err).Error("Failed to replace schedule")
		respondWithError(c, http.StatusInternalServerError, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, schedule.Days())
}
