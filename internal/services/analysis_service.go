package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/llm"
	"filmdesk/internal/logging"
	"filmdesk/internal/models"
)

// MinScriptLength is the shortest trimmed script the analysis accepts.
const MinScriptLength = 50

const analysisTemperature = 0.1

type AnalyzeRequest struct {
	Script *string `json:"script"`
}

// AnalyzeByProjectRequest is the body of the flat /script/analyze route.
type AnalyzeByProjectRequest struct {
	ProjectID string  `json:"project_id" binding:"required"`
	Script    *string `json:"script"`
}

type AnalysisService struct {
	projects ProjectStore
	client   llm.Client
	guard    ownershipGuard
	logger   *zap.Logger
}

// NewAnalysisService builds the service. client may be nil, in which case
// every analysis fails with NotConfigured.
func NewAnalysisService(projects ProjectStore, client llm.Client, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		projects: projects,
		client:   client,
		guard:    ownershipGuard{projects: projects},
		logger:   logger.Named("analysis"),
	}
}

// Analyze runs the script breakdown for a project and stores the result.
// script overrides the project's stored script when non-nil.
func (s *AnalysisService) Analyze(ctx context.Context, userID, projectID uuid.UUID, script *string) (*models.Breakdown, error) {
	if s.client == nil {
		return nil, apperrors.NotConfigured("LLM API key not configured on the server")
	}

	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	text := project.ScriptText
	if script != nil {
		text = *script
	}
	text = strings.TrimSpace(text)
	if len(text) < MinScriptLength {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput,
			"Invalid or insufficient script text provided (at least %d characters required)", MinScriptLength)
	}

	resp, err := s.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.System(analysisSystemPrompt),
			llm.User("Script: " + text),
		},
		Temperature: analysisTemperature,
		JSONMode:    true,
	})
	if err != nil {
		if reason, blocked := llm.IsBlocked(err); blocked {
			return nil, apperrors.New(apperrors.ErrUpstreamBlocked, "The AI request was blocked by the content filter").
				WithDetail("reason", reason)
		}
		return nil, fmt.Errorf("unexpected error during the AI API call: %w", err)
	}

	breakdown, err := decodeBreakdown(resp.Text)
	if err != nil {
		s.logger.Warn("Model returned an unusable breakdown",
			zap.String("project_id", projectID.String()),
			zap.Int("response_len", len(resp.Text)),
			zap.String("response", logging.Truncate(resp.Text, 2000)),
			zap.Error(err))
		return nil, apperrors.New(apperrors.ErrUpstreamMalformed,
			"Failed to parse the analysis from the AI response. The AI did not return valid JSON").
			WithDetail("raw_response_for_debugging", resp.Text)
	}

	if err := s.projects.SaveAnalysis(ctx, project.ID, breakdown); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.logger.Info("Script analyzed",
		zap.String("project_id", projectID.String()),
		zap.String("genre", breakdown.Genre),
		zap.Int("scenes", len(breakdown.Scenes)))
	return breakdown, nil
}

func decodeBreakdown(raw string) (*models.Breakdown, error) {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return models.DecodeBreakdown([]byte(jsonStr))
}
