package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List handles GET /api/v1/projects/:id/schedule
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	items, err := h.scheduleService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve schedule")
		return
	}

	responses.Success(c, http.StatusOK, items, "Schedule retrieved successfully")
}

// Board handles GET /api/v1/projects/:id/schedule/by-location
func (h *ScheduleHandler) Board(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	board, err := h.scheduleService.Board(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve schedule")
		return
	}

	responses.Success(c, http.StatusOK, board, "Schedule retrieved successfully")
}

// Create handles POST /api/v1/projects/:id/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.CreateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing schedule data")
		return
	}

	item, err := h.scheduleService.Create(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Failed to create schedule item")
		return
	}

	responses.Success(c, http.StatusCreated, item, "Schedule item created successfully")
}

// Update handles PUT /api/v1/schedule/:item_id
func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, itemID, ok := scope(c, "item_id", "Schedule item")
	if !ok {
		return
	}

	var req services.UpdateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	item, err := h.scheduleService.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		fail(c, err, "Failed to update schedule item")
		return
	}

	responses.Success(c, http.StatusOK, item, "Schedule item updated successfully")
}

// Delete handles DELETE /api/v1/schedule/:item_id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, itemID, ok := scope(c, "item_id", "Schedule item")
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), userID, itemID); err != nil {
		fail(c, err, "Failed to delete schedule item")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Schedule item deleted successfully")
}

// Generate handles POST /api/v1/projects/:id/schedule/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	generated, err := h.scheduleService.Generate(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to generate tasks")
		return
	}

	responses.Success(c, http.StatusCreated, generated, generated.Message)
}
