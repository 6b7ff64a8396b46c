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

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, project_id, description, amount, date, category`

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	expense.Prepare()

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.ProjectID,
		expense.Description,
		expense.Amount,
		expense.Date.Time,
		expense.Category,
	)
	return err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return expense, nil
}

// ListByProject returns the project's expenses, newest date first.
func (r *ExpenseRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE project_id = $1
		ORDER BY date DESC, description ASC
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE expenses SET
			description = $2, amount = $3, date = $4, category = $5
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.Description,
		expense.Amount,
		expense.Date.Time,
		expense.Category,
	)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var (
		expense models.Expense
		date    time.Time
	)
	err := row.Scan(
		&expense.ID,
		&expense.ProjectID,
		&expense.Description,
		&expense.Amount,
		&date,
		&expense.Category,
	)
	if err != nil {
		return nil, err
	}
	expense.Date = models.NewDate(date)
	return &expense, nil
}
