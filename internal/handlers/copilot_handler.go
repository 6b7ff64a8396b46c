package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type CopilotHandler struct {
	copilotService *services.CopilotService
}

func NewCopilotHandler(copilotService *services.CopilotService) *CopilotHandler {
	return &CopilotHandler{copilotService: copilotService}
}

// Transcript handles GET /api/v1/projects/:id/copilot
func (h *CopilotHandler) Transcript(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	transcript, err := h.copilotService.Transcript(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to load conversation")
		return
	}

	responses.Success(c, http.StatusOK, transcript, "Conversation retrieved successfully")
}

// Chat handles POST /api/v1/projects/:id/copilot
func (h *CopilotHandler) Chat(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.CopilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Message is required")
		return
	}

	reply, err := h.copilotService.Chat(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Copilot request failed")
		return
	}

	responses.Success(c, http.StatusOK, reply, "")
}
