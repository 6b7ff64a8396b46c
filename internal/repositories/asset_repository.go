package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmdesk/internal/models"
)

type AssetRepository struct {
	pool *pgxpool.Pool
}

func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	asset.Prepare()

	query := `
		INSERT INTO assets (id, project_id, name, status, cost)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, asset.ID, asset.ProjectID, asset.Name, asset.Status, asset.Cost)
	return err
}

func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	query := `SELECT id, project_id, name, status, cost FROM assets WHERE id = $1`

	var asset models.Asset
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.ProjectID,
		&asset.Name,
		&asset.Status,
		&asset.Cost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Asset, error) {
	query := `
		SELECT id, project_id, name, status, cost
		FROM assets WHERE project_id = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.ProjectID,
			&asset.Name,
			&asset.Status,
			&asset.Cost,
		); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	query := `UPDATE assets SET name = $2, status = $3, cost = $4 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, asset.ID, asset.Name, asset.Status, asset.Cost)
	return err
}

func (r *AssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}
