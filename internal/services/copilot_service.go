package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/memory"
	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/jsonutil"
	"filmdesk/internal/llm"
	"filmdesk/internal/logging"
	"filmdesk/internal/models"
)

const (
	copilotTemperature = 0.3
	ActionAddItem      = "add_item"
)

type CopilotRequest struct {
	Message string `json:"message" binding:"required"`
}

// CopilotAction is the optional side effect the model asks for.
type CopilotAction struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Amount      jsonutil.FlexibleFloat `json:"amount"`
	Category    *string                `json:"category,omitempty"`
}

type CopilotReply struct {
	Reply   string          `json:"reply"`
	Action  *CopilotAction  `json:"action"`
	Applied *models.Expense `json:"applied"`
}

type Transcript struct {
	ProjectID uuid.UUID     `json:"project_id"`
	History   []models.Turn `json:"history"`
}

type modelReply struct {
	Reply  *string         `json:"reply"`
	Action json.RawMessage `json:"action"`
}

type CopilotService struct {
	conversations ConversationStore
	expenses      ExpenseStore
	client        llm.Client
	guard         ownershipGuard
	logger        *zap.Logger
}

// NewCopilotService builds the service. client may be nil, in which case
// chat turns fail with NotConfigured.
func NewCopilotService(projects ProjectStore, conversations ConversationStore, expenses ExpenseStore, client llm.Client, logger *zap.Logger) *CopilotService {
	return &CopilotService{
		conversations: conversations,
		expenses:      expenses,
		client:        client,
		guard:         ownershipGuard{projects: projects},
		logger:        logger.Named("copilot"),
	}
}

// Transcript returns the conversation, starting it with the greeting on first
// use.
func (s *CopilotService) Transcript(ctx context.Context, userID, projectID uuid.UUID) (*Transcript, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	conv, err := s.loadOrStart(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Transcript{ProjectID: projectID, History: conv.History}, nil
}

// Chat runs one copilot turn.
func (s *CopilotService) Chat(ctx context.Context, userID, projectID uuid.UUID, req CopilotRequest) (*CopilotReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.InvalidInput("Message is required")
	}
	if s.client == nil {
		return nil, apperrors.NotConfigured("LLM API key not configured on the server")
	}

	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	conv, err := s.loadOrStart(ctx, projectID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	messages, err := s.prompt(ctx, conv, message, budgetContext(project, expenses))
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Complete(ctx, llm.Request{
		Messages:    messages,
		Temperature: copilotTemperature,
		JSONMode:    true,
	})
	if err != nil {
		if reason, blocked := llm.IsBlocked(err); blocked {
			return nil, apperrors.New(apperrors.ErrUpstreamBlocked, "The AI request was blocked by the content filter").
				WithDetail("reason", reason)
		}
		return nil, fmt.Errorf("unexpected error during the AI API call: %w", err)
	}

	reply := s.interpret(projectID, resp.Text)
	if reply.Action != nil {
		reply.Applied, err = s.apply(ctx, projectID, reply.Action)
		if err != nil {
			return nil, err
		}
	}

	conv.Append(models.RoleUser, message)
	conv.Append(models.RoleAI, reply.Reply)
	if err := s.conversations.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	return reply, nil
}

func (s *CopilotService) loadOrStart(ctx context.Context, projectID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.conversations.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv != nil {
		return conv, nil
	}

	conv = &models.Conversation{ProjectID: projectID}
	conv.Append(models.RoleAI, copilotGreeting)
	if err := s.conversations.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}
	return conv, nil
}

// prompt replays the stored transcript through a fresh chat history and adds
// the new user turn with the budget context attached.
func (s *CopilotService) prompt(ctx context.Context, conv *models.Conversation, message, budget string) ([]llm.Message, error) {
	history := memory.NewChatMessageHistory()
	for _, turn := range conv.History {
		var err error
		if turn.Role == models.RoleUser {
			err = history.AddUserMessage(ctx, turn.Text)
		} else {
			err = history.AddAIMessage(ctx, turn.Text)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to replay conversation: %w", err)
		}
	}
	if err := history.AddUserMessage(ctx, message+"\n\nBudget context:\n"+budget); err != nil {
		return nil, fmt.Errorf("failed to replay conversation: %w", err)
	}

	stored, err := history.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to replay conversation: %w", err)
	}
	return append([]llm.Message{llm.System(copilotSystemPrompt)}, llm.FromChatMessages(stored)...), nil
}

// interpret decodes the model output. Output that is not the expected JSON
// becomes a plain-text reply; an action that is not a complete add_item is
// dropped.
func (s *CopilotService) interpret(projectID uuid.UUID, raw string) *CopilotReply {
	parsed, err := llm.ParseJSONResponse[modelReply](raw)
	if err != nil || parsed.Reply == nil {
		s.logger.Warn("Copilot returned unstructured output",
			zap.String("project_id", projectID.String()),
			zap.Int("response_len", len(raw)),
			zap.String("response", logging.Truncate(raw, 1000)))
		return &CopilotReply{Reply: strings.TrimSpace(raw)}
	}

	reply := &CopilotReply{Reply: *parsed.Reply}
	if len(parsed.Action) == 0 || string(parsed.Action) == "null" {
		return reply
	}

	var action CopilotAction
	if err := json.Unmarshal(parsed.Action, &action); err != nil {
		s.logger.Debug("Ignoring malformed copilot action", zap.Error(err))
		return reply
	}
	action.Description = strings.TrimSpace(action.Description)
	if action.Type != ActionAddItem || action.Description == "" || !action.Amount.Set {
		s.logger.Debug("Ignoring incomplete copilot action", zap.String("type", action.Type))
		return reply
	}
	reply.Action = &action
	return reply
}

func (s *CopilotService) apply(ctx context.Context, projectID uuid.UUID, action *CopilotAction) (*models.Expense, error) {
	expense := &models.Expense{
		ProjectID:   projectID,
		Description: action.Description,
		Amount:      action.Amount.Value,
		Date:        models.Today(),
	}
	if action.Category != nil && strings.TrimSpace(*action.Category) != "" {
		category := strings.TrimSpace(*action.Category)
		expense.Category = &category
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}
	s.logger.Info("Copilot added expense",
		zap.String("project_id", projectID.String()),
		zap.String("description", expense.Description),
		zap.Float64("amount", expense.Amount))
	return expense, nil
}
