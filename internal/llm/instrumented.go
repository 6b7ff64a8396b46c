package llm

import (
	"context"
	"time"
)

// Recorder receives one observation per completion.
type Recorder interface {
	ObserveLLMCall(provider, outcome string, elapsed time.Duration, promptTokens, completionTokens int)
}

type instrumentedClient struct {
	Client
	recorder Recorder
}

// WithRecorder wraps c so every completion is reported to r.
func WithRecorder(c Client, r Recorder) Client {
	if c == nil || r == nil {
		return c
	}
	return &instrumentedClient{Client: c, recorder: r}
}

func (c *instrumentedClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	start := time.Now()
	resp, err := c.Client.Complete(ctx, req)

	outcome := "ok"
	var prompt, completion int
	switch {
	case err != nil:
		outcome = "error"
		if _, blocked := IsBlocked(err); blocked {
			outcome = "blocked"
		}
	default:
		prompt, completion = resp.PromptTokens, resp.CompletionTokens
	}
	c.recorder.ObserveLLMCall(c.Provider(), outcome, time.Since(start), prompt, completion)
	return resp, err
}
