package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmdesk/internal/models"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, user_id, name, script_file_name, script_text, analysis_json, genre, logline, forecasted_budget, created_at`

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.Prepare()

	query := `
		INSERT INTO projects (id, user_id, name, script_file_name, script_text, forecasted_budget, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.ScriptFileName,
		project.ScriptText,
		project.ForecastedBudget,
		project.CreatedAt,
	)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// Update writes the editable project fields (name, logline, budget).
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET
			name = $2, logline = $3, forecasted_budget = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Logline,
		project.ForecastedBudget,
	)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// SaveAnalysis stores the breakdown in a single transaction. Scenes are
// replaced only when the breakdown lists some.
func (r *ProjectRepository) SaveAnalysis(ctx context.Context, projectID uuid.UUID, breakdown *models.Breakdown) error {
	encoded, err := breakdown.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE projects SET
			analysis_json = $2,
			genre = $3,
			logline = COALESCE($4, logline)
		WHERE id = $1
	`
	var logline *string
	if breakdown.Logline != "" {
		logline = &breakdown.Logline
	}
	if _, err := tx.Exec(ctx, query, projectID, encoded, breakdown.Genre, logline); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	if len(breakdown.Scenes) > 0 {
		if err := replaceScenes(ctx, tx, projectID, breakdown.Scenes); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// replaceScenes swaps the project's scenes for outlines. A scene number that
// already existed keeps its status.
func replaceScenes(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, outlines []models.SceneOutline) error {
	rows, err := tx.Query(ctx, `SELECT scene_number, status FROM scenes WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to load scenes: %w", err)
	}
	statuses := make(map[int]string)
	for rows.Next() {
		var number int
		var status string
		if err := rows.Scan(&number, &status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan scene: %w", err)
		}
		statuses[number] = status
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load scenes: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM scenes WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear scenes: %w", err)
	}

	batch := &pgx.Batch{}
	for _, outline := range outlines {
		scene := models.Scene{
			ProjectID:   projectID,
			SceneNumber: outline.SceneNumber,
			Description: outline.Description,
			Status:      statuses[outline.SceneNumber],
		}
		scene.Prepare()
		batch.Queue(insertSceneQuery, scene.ID, scene.ProjectID, scene.SceneNumber, scene.Description, scene.Status)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert scenes: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.ScriptFileName,
		&project.ScriptText,
		&project.AnalysisJSON,
		&project.Genre,
		&project.Logline,
		&project.ForecastedBudget,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
