package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmdesk/internal/models"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) GetByProject(ctx context.Context, projectID uuid.UUID) (*models.Conversation, error) {
	query := `SELECT id, project_id, history, updated_at FROM conversations WHERE project_id = $1`

	var (
		conv    models.Conversation
		history []byte
	)
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&conv.ID,
		&conv.ProjectID,
		&history,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(history, &conv.History); err != nil {
		return nil, fmt.Errorf("corrupt conversation history for project %s: %w", projectID, err)
	}
	return &conv, nil
}

// Save upserts the conversation keyed by project.
func (r *ConversationRepository) Save(ctx context.Context, conv *models.Conversation) error {
	conv.Prepare()

	history, err := json.Marshal(conv.History)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO conversations (id, project_id, history, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id) DO UPDATE SET
			history = EXCLUDED.history,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query, conv.ID, conv.ProjectID, history, conv.UpdatedAt)
	return err
}
