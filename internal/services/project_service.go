package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

type CreateProjectRequest struct {
	Name       string `json:"name" form:"name" binding:"required"`
	ScriptText string `json:"script_text" form:"script_text"`
	// ScriptFileName is set by the handler for multipart uploads.
	ScriptFileName string `json:"-" form:"-"`
}

type UpdateProjectRequest struct {
	Name    *string `json:"name"`
	Logline *string `json:"logline"`
}

// UpdateBudgetRequest keeps the raw JSON value so that strings and other
// non-numbers can be rejected instead of coerced.
type UpdateBudgetRequest struct {
	ForecastedBudget any `json:"forecasted_budget"`
}

// ProjectDetail is a project together with its decoded breakdown.
type ProjectDetail struct {
	*models.Project
	ScriptAnalysis *models.Breakdown `json:"script_analysis,omitempty"`
}

type ScriptContent struct {
	FileName string `json:"script_file_name"`
	Content  string `json:"script_content"`
}

type ProjectService struct {
	projects ProjectStore
	guard    ownershipGuard
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects, guard: ownershipGuard{projects: projects}}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.InvalidInput("Project name is required")
	}
	if strings.TrimSpace(req.ScriptText) == "" {
		return nil, apperrors.InvalidInput("A script file or script text is required")
	}

	project := &models.Project{
		UserID:         userID,
		Name:           name,
		ScriptFileName: req.ScriptFileName,
		ScriptText:     req.ScriptText,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*ProjectDetail, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	breakdown, err := project.Breakdown()
	if err != nil {
		return nil, fmt.Errorf("stored analysis is unreadable: %w", err)
	}
	return &ProjectDetail{Project: project, ScriptAnalysis: breakdown}, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, req UpdateProjectRequest) (*models.Project, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.InvalidInput("Project name cannot be empty")
		}
		project.Name = name
	}
	if req.Logline != nil {
		logline := strings.TrimSpace(*req.Logline)
		project.Logline = &logline
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) Script(ctx context.Context, userID, projectID uuid.UUID) (*ScriptContent, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.ScriptText == "" {
		return nil, apperrors.NotFound("No script associated with this project")
	}
	return &ScriptContent{FileName: project.ScriptFileName, Content: project.ScriptText}, nil
}

// UpdateBudget sets the forecasted budget. Only non-negative JSON numbers are
// accepted.
func (s *ProjectService) UpdateBudget(ctx context.Context, userID, projectID uuid.UUID, req UpdateBudgetRequest) (*models.Project, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	budget, ok := req.ForecastedBudget.(float64)
	if !ok {
		return nil, apperrors.InvalidInput("Invalid budget value provided")
	}
	if budget < 0 {
		return nil, apperrors.InvalidInput("Budget cannot be negative")
	}

	project.ForecastedBudget = budget
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return project, nil
}
