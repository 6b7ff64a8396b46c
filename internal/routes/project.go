package routes

import (
	"github.com/gin-gonic/gin"

	"filmdesk/internal/handlers"
)

type ProjectRoutes struct {
	handler  *handlers.ProjectHandler
	analysis *handlers.AnalysisHandler
	copilot  *handlers.CopilotHandler
}

func NewProjectRoutes(handler *handlers.ProjectHandler, analysis *handlers.AnalysisHandler, copilot *handlers.CopilotHandler) *ProjectRoutes {
	return &ProjectRoutes{handler: handler, analysis: analysis, copilot: copilot}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.POST("", r.handler.CreateProject)
		projects.GET("", r.handler.ListProjects)
		projects.GET("/:id", r.handler.GetProject)
		projects.PATCH("/:id", r.handler.UpdateProject)
		projects.DELETE("/:id", r.handler.DeleteProject)
		projects.GET("/:id/script", r.handler.GetScript)
		projects.PUT("/:id/budget", r.handler.UpdateBudget)

		projects.POST("/:id/analysis", r.analysis.Analyze)
		projects.POST("/:id/budget/predict", r.analysis.PredictBudget)

		projects.GET("/:id/copilot", r.copilot.Transcript)
		projects.POST("/:id/copilot", r.copilot.Chat)
	}

	router.POST("/script/analyze", r.analysis.AnalyzeByProject)
}
