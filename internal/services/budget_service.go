package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

// Predictor estimates a budget from a breakdown.
type Predictor interface {
	Predict(b *models.Breakdown) (float64, error)
}

// PredictionObserver counts prediction outcomes.
type PredictionObserver interface {
	ObservePrediction(outcome string)
}

type Prediction struct {
	PredictedBudget float64 `json:"predicted_budget"`
}

type BudgetService struct {
	projects  ProjectStore
	predictor Predictor
	observer  PredictionObserver
	guard     ownershipGuard
	logger    *zap.Logger
}

// NewBudgetService builds the service. predictor and observer may be nil.
func NewBudgetService(projects ProjectStore, predictor Predictor, observer PredictionObserver, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		projects:  projects,
		predictor: predictor,
		observer:  observer,
		guard:     ownershipGuard{projects: projects},
		logger:    logger.Named("budget"),
	}
}

// Predict estimates the budget of a project from its stored analysis.
func (s *BudgetService) Predict(ctx context.Context, userID, projectID uuid.UUID) (*Prediction, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasAnalysis() {
		s.observe("no_analysis")
		return nil, apperrors.NotFound("analysis not found")
	}
	if s.predictor == nil {
		s.observe("not_configured")
		return nil, apperrors.NotConfigured("Budget model is not configured on the server")
	}

	breakdown, err := project.Breakdown()
	if err != nil {
		s.observe("error")
		return nil, fmt.Errorf("stored analysis is unreadable: %w", err)
	}

	predicted, err := s.predictor.Predict(breakdown)
	if err != nil {
		s.observe("error")
		return nil, fmt.Errorf("budget prediction failed: %w", err)
	}

	s.observe("ok")
	s.logger.Debug("Budget predicted", zap.String("project_id", projectID.String()), zap.Float64("budget", predicted))
	return &Prediction{PredictedBudget: predicted}, nil
}

func (s *BudgetService) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObservePrediction(outcome)
	}
}
