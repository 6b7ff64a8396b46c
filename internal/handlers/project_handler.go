package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

// MaxScriptSize bounds uploaded script files.
const MaxScriptSize = 10 << 20

const scriptFileField = "script_file"

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject handles POST /api/v1/projects. It accepts either JSON or a
// multipart form carrying the script as a file.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateProjectRequest
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if err := h.bindUpload(c, &req); err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid upload")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err, "Failed to create project")
		return
	}

	responses.Success(c, http.StatusCreated, project, "Project created successfully")
}

func (h *ProjectHandler) bindUpload(c *gin.Context, req *services.CreateProjectRequest) error {
	if err := c.ShouldBindWith(req, binding.FormMultipart); err != nil {
		return err
	}

	header, err := c.FormFile(scriptFileField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return err
	}
	if header.Size > MaxScriptSize {
		return fmt.Errorf("script file is larger than %d bytes", MaxScriptSize)
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxScriptSize))
	if err != nil {
		return err
	}
	req.ScriptText = string(content)
	req.ScriptFileName = filepath.Base(header.Filename)
	return nil
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "Failed to retrieve projects")
		return
	}

	responses.Success(c, http.StatusOK, projects, "Projects retrieved successfully")
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve project")
		return
	}

	responses.Success(c, http.StatusOK, project, "Project retrieved successfully")
}

// UpdateProject handles PATCH /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Failed to update project")
		return
	}

	responses.Success(c, http.StatusOK, project, "Project updated successfully")
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		fail(c, err, "Failed to delete project")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Project deleted successfully")
}

// GetScript handles GET /api/v1/projects/:id/script
func (h *ProjectHandler) GetScript(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	script, err := h.projectService.Script(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve script")
		return
	}

	responses.Success(c, http.StatusOK, script, "Script retrieved successfully")
}

// UpdateBudget handles PUT /api/v1/projects/:id/budget
func (h *ProjectHandler) UpdateBudget(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid budget value provided")
		return
	}

	project, err := h.projectService.UpdateBudget(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Failed to update budget")
		return
	}

	responses.Success(c, http.StatusOK, project, "Budget updated successfully")
}
