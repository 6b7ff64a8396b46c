package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/llm"
	"filmdesk/internal/models"
	"filmdesk/internal/services"
)

func newCopilot(f *fixture, client llm.Client) *services.CopilotService {
	return services.NewCopilotService(f.store.Projects(), f.store.Conversations(), f.store.Expenses(), client, zap.NewNop())
}

func TestCopilotService_TranscriptStartsWithGreeting(t *testing.T) {
	f := newFixture(t)
	svc := newCopilot(f, nil)

	transcript, err := svc.Transcript(context.Background(), f.owner, f.project.ID)
	require.NoError(t, err)
	require.Len(t, transcript.History, 1)
	assert.Equal(t, models.RoleAI, transcript.History[0].Role)
}

func TestCopilotService_AddItem(t *testing.T) {
	f := newFixture(t)
	f.project.ForecastedBudget = 50000
	require.NoError(t, f.store.Projects().Update(context.Background(), f.project))

	client := llm.NewMockClient(`{"reply": "Added catering to your budget.",
		"action": {"type": "add_item", "description": "Catering", "amount": "1200", "category": "Food"}}`)
	svc := newCopilot(f, client)
	ctx := context.Background()

	reply, err := svc.Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "Add catering for 1200"})
	require.NoError(t, err)
	assert.Equal(t, "Added catering to your budget.", reply.Reply)
	require.NotNil(t, reply.Action)
	require.NotNil(t, reply.Applied)
	assert.Equal(t, 1200.0, reply.Applied.Amount)
	assert.Equal(t, "Food", *reply.Applied.Category)
	assert.Equal(t, models.Today().String(), reply.Applied.Date.String())

	expenses, err := f.store.Expenses().ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Catering", expenses[0].Description)

	req := client.LastRequest()
	require.Len(t, req.Messages, 3)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.RoleAssistant, req.Messages[1].Role)
	last := req.Messages[2]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.True(t, strings.HasPrefix(last.Content, "Add catering for 1200"))
	assert.Contains(t, last.Content, "Budget context:")

	transcript, err := svc.Transcript(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	require.Len(t, transcript.History, 3)
	assert.Equal(t, models.Turn{Role: models.RoleUser, Text: "Add catering for 1200"}, transcript.History[1])
	assert.Equal(t, models.Turn{Role: models.RoleAI, Text: "Added catering to your budget."}, transcript.History[2])
}

func TestCopilotService_ReplaysHistory(t *testing.T) {
	f := newFixture(t)
	client := llm.NewMockClient(`{"reply": "Noted.", "action": null}`)
	svc := newCopilot(f, client)
	ctx := context.Background()

	_, err := svc.Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "first"})
	require.NoError(t, err)
	_, err = svc.Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "second"})
	require.NoError(t, err)

	req := client.LastRequest()
	require.Len(t, req.Messages, 5)
	assert.Equal(t, "first", req.Messages[2].Content)
	assert.Equal(t, "Noted.", req.Messages[3].Content)
}

func TestCopilotService_UnstructuredReply(t *testing.T) {
	f := newFixture(t)
	svc := newCopilot(f, llm.NewMockClient("You have spent nothing so far."))
	ctx := context.Background()

	reply, err := svc.Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "How am I doing?"})
	require.NoError(t, err)
	assert.Equal(t, "You have spent nothing so far.", reply.Reply)
	assert.Nil(t, reply.Action)
	assert.Nil(t, reply.Applied)

	expenses, err := f.store.Expenses().ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	conv, err := f.store.Conversations().GetByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, conv.History, 3)
}

func TestCopilotService_IgnoresIncompleteAction(t *testing.T) {
	tests := map[string]string{
		"missing amount":  `{"reply": "ok", "action": {"type": "add_item", "description": "Lights"}}`,
		"bad amount":      `{"reply": "ok", "action": {"type": "add_item", "description": "Lights", "amount": "a lot"}}`,
		"no description":  `{"reply": "ok", "action": {"type": "add_item", "amount": 10}}`,
		"unknown type":    `{"reply": "ok", "action": {"type": "remove_item", "description": "Lights", "amount": 10}}`,
		"action not dict": `{"reply": "ok", "action": "add_item"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			svc := newCopilot(f, llm.NewMockClient(raw))

			reply, err := svc.Chat(context.Background(), f.owner, f.project.ID, services.CopilotRequest{Message: "add lights"})
			require.NoError(t, err)
			assert.Equal(t, "ok", reply.Reply)
			assert.Nil(t, reply.Action)
			assert.Nil(t, reply.Applied)
		})
	}
}

func TestCopilotService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := newCopilot(f, nil).Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "hi"})
	assert.True(t, errors.Is(err, apperrors.ErrNotConfigured))

	_, err = newCopilot(f, llm.NewMockClient("{}")).Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "  "})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = newCopilot(f, llm.NewMockClient("{}")).Chat(ctx, f.other, f.project.ID, services.CopilotRequest{Message: "hi"})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	failing := &llm.MockClient{CompleteFunc: func(context.Context, llm.Request) (*llm.Completion, error) {
		return nil, errors.New("timeout")
	}}
	_, err = newCopilot(f, failing).Chat(ctx, f.owner, f.project.ID, services.CopilotRequest{Message: "hi"})
	require.Error(t, err)

	conv, err := f.store.Conversations().GetByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, conv.History, 1)
}
