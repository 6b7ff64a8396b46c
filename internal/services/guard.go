package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

// ownershipGuard loads a project on behalf of a caller. A missing project is
// NotFound; a project owned by someone else is Forbidden.
type ownershipGuard struct {
	projects ProjectStore
}

func (g ownershipGuard) project(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, apperrors.NotFound("Project not found")
	}
	if project.UserID != userID {
		return nil, apperrors.Forbidden("You do not have access to this project")
	}
	return project, nil
}
