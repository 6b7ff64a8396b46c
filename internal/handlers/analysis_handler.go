package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type AnalysisHandler struct {
	analysisService *services.AnalysisService
	budgetService   *services.BudgetService
}

func NewAnalysisHandler(analysisService *services.AnalysisService, budgetService *services.BudgetService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, budgetService: budgetService}
}

// Analyze handles POST /api/v1/projects/:id/analysis. The body is optional;
// without a script the stored one is analyzed.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	h.analyze(c, userID, projectID, req.Script)
}

// AnalyzeByProject handles POST /api/v1/script/analyze
func (h *AnalysisHandler) AnalyzeByProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AnalyzeByProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Project ID is required")
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, nil, "Project not found")
		return
	}

	h.analyze(c, userID, projectID, req.Script)
}

func (h *AnalysisHandler) analyze(c *gin.Context, userID, projectID uuid.UUID, script *string) {
	breakdown, err := h.analysisService.Analyze(c.Request.Context(), userID, projectID, script)
	if err != nil {
		fail(c, err, "Script analysis failed")
		return
	}
	responses.Success(c, http.StatusOK, breakdown, "Script analyzed successfully")
}

// PredictBudget handles POST /api/v1/projects/:id/budget/predict
func (h *AnalysisHandler) PredictBudget(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	prediction, err := h.budgetService.Predict(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Budget prediction failed")
		return
	}

	responses.Success(c, http.StatusOK, prediction, "Budget predicted successfully")
}
