package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"filmdesk/internal/models"
)

// Store interfaces are satisfied by the pgx repositories and by the in-memory
// stores in internal/testutil. Lookups return (nil, nil) when nothing matches.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkConfirmed(ctx context.Context, id uuid.UUID) error
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	SaveAnalysis(ctx context.Context, projectID uuid.UUID, breakdown *models.Breakdown) error
}

type ScheduleStore interface {
	Create(ctx context.Context, item *models.ScheduleItem) error
	CreateMany(ctx context.Context, items []models.ScheduleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ScheduleItem, error)
	Update(ctx context.Context, item *models.ScheduleItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssetStore interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SceneStore interface {
	Create(ctx context.Context, scene *models.Scene) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scene, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error)
	Update(ctx context.Context, scene *models.Scene) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationStore interface {
	GetByProject(ctx context.Context, projectID uuid.UUID) (*models.Conversation, error)
	Save(ctx context.Context, conv *models.Conversation) error
}
