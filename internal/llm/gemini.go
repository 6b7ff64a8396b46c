package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const DefaultGeminiModel = "gemini-2.5-pro"

// GeminiClient reaches Google's Gemini models through langchaingo.
type GeminiClient struct {
	llm    llms.Model
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{llm: llm, model: model, logger: logger.Named("gemini")}, nil
}

func (c *GeminiClient) Provider() string { return "gemini" }
func (c *GeminiClient) Model() string    { return c.model }

func (c *GeminiClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.TextParts(chatMessageType(m.Role), m.Content))
	}

	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(maxTokens(req)),
	}
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, content, opts...)
	if err != nil {
		if reason, ok := safetyReason(err.Error()); ok {
			return nil, &BlockedError{Provider: c.Provider(), Reason: reason}
		}
		c.logger.Error("Completion failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("gemini completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gemini completion: no candidates in response")
	}

	choice := resp.Choices[0]
	if reason, ok := safetyReason(choice.StopReason); ok {
		return nil, &BlockedError{Provider: c.Provider(), Reason: reason}
	}

	completion := &Completion{Text: choice.Content, FinishReason: choice.StopReason}
	if n, ok := choice.GenerationInfo["input_tokens"].(int32); ok {
		completion.PromptTokens = int(n)
	}
	if n, ok := choice.GenerationInfo["output_tokens"].(int32); ok {
		completion.CompletionTokens = int(n)
	}

	c.logger.Debug("Completion finished",
		zap.String("stop_reason", choice.StopReason),
		zap.Duration("elapsed", time.Since(start)))

	return completion, nil
}

// chatMessageType maps a neutral role onto langchaingo's message types.
func chatMessageType(role Role) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// safetyReason recognizes Gemini's safety finish reasons ("SAFETY",
// "FinishReasonSafety", "blocked: SAFETY", ...).
func safetyReason(s string) (string, bool) {
	upper := strings.ToUpper(s)
	for _, marker := range []string{"SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST"} {
		if strings.Contains(upper, marker) {
			return marker, true
		}
	}
	return "", false
}
