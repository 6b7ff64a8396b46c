package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmdesk/internal/models"
)

type SceneRepository struct {
	pool *pgxpool.Pool
}

func NewSceneRepository(pool *pgxpool.Pool) *SceneRepository {
	return &SceneRepository{pool: pool}
}

const insertSceneQuery = `
	INSERT INTO scenes (id, project_id, scene_number, description, status)
	VALUES ($1, $2, $3, $4, $5)
`

func (r *SceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	scene.Prepare()
	_, err := r.pool.Exec(ctx, insertSceneQuery,
		scene.ID, scene.ProjectID, scene.SceneNumber, scene.Description, scene.Status)
	return err
}

func (r *SceneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scene, error) {
	query := `SELECT id, project_id, scene_number, description, status FROM scenes WHERE id = $1`

	var scene models.Scene
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&scene.ID,
		&scene.ProjectID,
		&scene.SceneNumber,
		&scene.Description,
		&scene.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &scene, nil
}

func (r *SceneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error) {
	query := `
		SELECT id, project_id, scene_number, description, status
		FROM scenes WHERE project_id = $1
		ORDER BY scene_number ASC
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []models.Scene{}
	for rows.Next() {
		var scene models.Scene
		if err := rows.Scan(
			&scene.ID,
			&scene.ProjectID,
			&scene.SceneNumber,
			&scene.Description,
			&scene.Status,
		); err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

func (r *SceneRepository) Update(ctx context.Context, scene *models.Scene) error {
	query := `UPDATE scenes SET scene_number = $2, description = $3, status = $4 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, scene.ID, scene.SceneNumber, scene.Description, scene.Status)
	return err
}

func (r *SceneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
	return err
}
