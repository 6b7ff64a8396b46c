package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmdesk/internal/models"
)

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const scheduleColumns = `id, project_id, task_description, start_date, end_date, assigned_to, status, location`

func (r *ScheduleRepository) Create(ctx context.Context, item *models.ScheduleItem) error {
	item.Prepare()

	query := `
		INSERT INTO schedule_items (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.ProjectID,
		item.TaskDescription,
		item.StartDate.Time,
		item.EndDate.Time,
		item.AssignedTo,
		item.Status,
		item.Location,
	)
	return err
}

// CreateMany inserts all items in one batch.
func (r *ScheduleRepository) CreateMany(ctx context.Context, items []models.ScheduleItem) error {
	query := `
		INSERT INTO schedule_items (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	batch := &pgx.Batch{}
	for i := range items {
		item := &items[i]
		item.Prepare()
		batch.Queue(query,
			item.ID,
			item.ProjectID,
			item.TaskDescription,
			item.StartDate.Time,
			item.EndDate.Time,
			item.AssignedTo,
			item.Status,
			item.Location,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleItem, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_items WHERE id = $1`

	item, err := scanScheduleItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *ScheduleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ScheduleItem, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_items WHERE project_id = $1
		ORDER BY start_date ASC, task_description ASC
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ScheduleItem{}
	for rows.Next() {
		item, err := scanScheduleItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, item *models.ScheduleItem) error {
	query := `
		UPDATE schedule_items SET
			task_description = $2, start_date = $3, end_date = $4,
			assigned_to = $5, status = $6, location = $7
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.TaskDescription,
		item.StartDate.Time,
		item.EndDate.Time,
		item.AssignedTo,
		item.Status,
		item.Location,
	)
	return err
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schedule_items WHERE id = $1`, id)
	return err
}

func scanScheduleItem(row pgx.Row) (*models.ScheduleItem, error) {
	var (
		item       models.ScheduleItem
		start, end time.Time
	)
	err := row.Scan(
		&item.ID,
		&item.ProjectID,
		&item.TaskDescription,
		&start,
		&end,
		&item.AssignedTo,
		&item.Status,
		&item.Location,
	)
	if err != nil {
		return nil, err
	}
	item.StartDate = models.NewDate(start)
	item.EndDate = models.NewDate(end)
	return &item, nil
}
