package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/handlers"
)

// Handlers is every handler the API serves. GoogleAuth is nil when Google
// sign-in is not configured.
type Handlers struct {
	Auth       *handlers.AuthHandler
	GoogleAuth *handlers.GoogleAuthHandler
	User       *handlers.UserHandler
	Project    *handlers.ProjectHandler
	Analysis   *handlers.AnalysisHandler
	Copilot    *handlers.CopilotHandler
	Schedule   *handlers.ScheduleHandler
	Expense    *handlers.ExpenseHandler
	Asset      *handlers.AssetHandler
	Scene      *handlers.SceneHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, authenticate gin.HandlerFunc) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth, h.GoogleAuth, authenticate).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(authenticate)

	NewUserRoutes(h.User).RegisterRoutes(protected)
	NewProjectRoutes(h.Project, h.Analysis, h.Copilot).RegisterRoutes(protected)
	NewProductionRoutes(h.Schedule, h.Expense, h.Asset, h.Scene).RegisterRoutes(protected)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
