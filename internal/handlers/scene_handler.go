package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type SceneHandler struct {
	sceneService *services.SceneService
}

func NewSceneHandler(sceneService *services.SceneService) *SceneHandler {
	return &SceneHandler{sceneService: sceneService}
}

// List handles GET /api/v1/projects/:id/scenes
func (h *SceneHandler) List(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	board, err := h.sceneService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve scenes")
		return
	}

	responses.Success(c, http.StatusOK, board, "Scenes retrieved successfully")
}

// Update handles PUT /api/v1/scenes/:scene_id
func (h *SceneHandler) Update(c *gin.Context) {
	userID, sceneID, ok := scope(c, "scene_id", "Scene")
	if !ok {
		return
	}

	var req services.UpdateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	scene, err := h.sceneService.Update(c.Request.Context(), userID, sceneID, req)
	if err != nil {
		fail(c, err, "Failed to update scene")
		return
	}

	responses.Success(c, http.StatusOK, scene, "Scene status updated")
}

// Delete handles DELETE /api/v1/scenes/:scene_id
func (h *SceneHandler) Delete(c *gin.Context) {
	userID, sceneID, ok := scope(c, "scene_id", "Scene")
	if !ok {
		return
	}

	if err := h.sceneService.Delete(c.Request.Context(), userID, sceneID); err != nil {
		fail(c, err, "Failed to delete scene")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Scene deleted successfully")
}
