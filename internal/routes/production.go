package routes

import (
	"github.com/gin-gonic/gin"

	"filmdesk/internal/handlers"
)

// ProductionRoutes serves the per-project schedule, expenses, assets and
// scenes, plus the item-level routes addressed by child id.
type ProductionRoutes struct {
	schedule *handlers.ScheduleHandler
	expense  *handlers.ExpenseHandler
	asset    *handlers.AssetHandler
	scene    *handlers.SceneHandler
}

func NewProductionRoutes(schedule *handlers.ScheduleHandler, expense *handlers.ExpenseHandler, asset *handlers.AssetHandler, scene *handlers.SceneHandler) *ProductionRoutes {
	return &ProductionRoutes{schedule: schedule, expense: expense, asset: asset, scene: scene}
}

func (r *ProductionRoutes) RegisterRoutes(router *gin.RouterGroup) {
	project := router.Group("/projects/:id")
	{
		project.GET("/schedule", r.schedule.List)
		project.GET("/schedule/by-location", r.schedule.Board)
		project.POST("/schedule", r.schedule.Create)
		project.POST("/schedule/generate", r.schedule.Generate)

		project.GET("/expenses", r.expense.List)
		project.GET("/expenses/summary", r.expense.Summary)
		project.POST("/expenses", r.expense.Create)

		project.GET("/assets", r.asset.List)
		project.POST("/assets", r.asset.Create)

		project.GET("/scenes", r.scene.List)
	}

	router.PUT("/schedule/:item_id", r.schedule.Update)
	router.DELETE("/schedule/:item_id", r.schedule.Delete)

	router.PUT("/expenses/:expense_id", r.expense.Update)
	router.DELETE("/expenses/:expense_id", r.expense.Delete)

	router.PUT("/assets/:asset_id", r.asset.Update)
	router.DELETE("/assets/:asset_id", r.asset.Delete)

	router.PUT("/scenes/:scene_id", r.scene.Update)
	router.DELETE("/scenes/:scene_id", r.scene.Delete)
}
