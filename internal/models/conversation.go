package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// Turn is one message of a copilot transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Conversation struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	History   []Turn    `json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.History == nil {
		c.History = []Turn{}
	}
	c.UpdatedAt = time.Now().UTC()
}

func (c *Conversation) Append(role, text string) {
	c.History = append(c.History, Turn{Role: role, Text: text})
}
