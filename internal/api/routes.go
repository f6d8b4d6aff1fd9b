package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dev-logger/dev-logger/internal/auth"
)

// SetupRouter configures all API routes. Everything under /api/v1 requires
// a valid session; the OAuth endpoints are public by nature.
func SetupRouter(h *Handler, tokens *auth.TokenService) *gin.Engine {
	r := gin.Default()

	// OAuth flow
	r.GET("/auth/github/login", h.Login)
	r.GET("/auth/github/callback", h.Callback)
	r.POST("/auth/logout", h.Logout)

	v1 := r.Group("/api/v1", auth.RequireAuth(tokens))
	{
		v1.GET("/me", h.Me)

		projects := v1.Group("/projects")
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:id", h.GetProject)
			projects.PUT("/:id", h.UpdateProject)
			projects.DELETE("/:id", h.DeleteProject)

			// Weekly schedule: read and replace-all write
			projects.GET("/:id/schedule", h.GetSchedule)
			projects.PUT("/:id/schedule", h.UpdateSchedule)

			// Daily activity board
			projects.GET("/:id/activities", h.ListActivities)
			projects.POST("/:id/activities", h.CreateActivity)
			projects.PUT("/:id/activities/:activityID", h.UpdateActivity)
			projects.DELETE("/:id/activities/:activityID", h.DeleteActivity)

			// Monthly report and CSV export
			projects.GET("/:id/report", h.GetReport)
			projects.GET("/:id/report/export", h.ExportReport)
		}
	}

	return r
}
