package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/jsonutil"
	"filmdesk/internal/models"
)

// Uncategorized is the summary bucket for expenses without a category.
const Uncategorized = "Uncategorized"

type CreateExpenseRequest struct {
	Description string                 `json:"description"`
	Amount      jsonutil.FlexibleFloat `json:"amount"`
	Date        string                 `json:"date"`
	Category    *string                `json:"category"`
}

type UpdateExpenseRequest struct {
	Description *string                `json:"description"`
	Amount      jsonutil.FlexibleFloat `json:"amount"`
	Date        *string                `json:"date"`
	Category    *string                `json:"category"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type ExpenseSummary struct {
	ForecastedBudget float64         `json:"forecasted_budget"`
	TotalSpent       float64         `json:"total_spent"`
	Remaining        float64         `json:"remaining"`
	ByCategory       []CategoryTotal `json:"by_category"`
}

type ExpenseService struct {
	expenses ExpenseStore
	guard    ownershipGuard
}

func NewExpenseService(projects ProjectStore, expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, guard: ownershipGuard{projects: projects}}
}

func (s *ExpenseService) List(ctx context.Context, userID, projectID uuid.UUID) ([]models.Expense, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) Create(ctx context.Context, userID, projectID uuid.UUID, req CreateExpenseRequest) (*models.Expense, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" || !req.Amount.Set || strings.TrimSpace(req.Date) == "" {
		return nil, apperrors.InvalidInput("Missing expense data: description, amount and date are required")
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ProjectID:   projectID,
		Description: req.Description,
		Amount:      req.Amount.Value,
		Date:        date,
		Category:    blankToNil(req.Category),
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, req UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.load(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if amount := req.Amount.Ptr(); amount != nil {
		expense.Amount = *amount
	}
	if req.Date != nil && *req.Date != "" {
		if expense.Date, err = parseDate("date", *req.Date); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		expense.Category = blankToNil(req.Category)
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	if _, err := s.load(ctx, userID, expenseID); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseService) Summary(ctx context.Context, userID, projectID uuid.UUID) (*ExpenseSummary, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return summarize(project.ForecastedBudget, expenses), nil
}

func summarize(forecasted float64, expenses []models.Expense) *ExpenseSummary {
	totals := map[string]float64{}
	spent := 0.0
	for _, e := range expenses {
		spent += e.Amount
		category := Uncategorized
		if e.Category != nil {
			category = *e.Category
		}
		totals[category] += e.Amount
	}

	byCategory := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		byCategory = append(byCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Total != byCategory[j].Total {
			return byCategory[i].Total > byCategory[j].Total
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	return &ExpenseSummary{
		ForecastedBudget: forecasted,
		TotalSpent:       spent,
		Remaining:        forecasted - spent,
		ByCategory:       byCategory,
	}
}

func (s *ExpenseService) load(ctx context.Context, userID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if expense == nil {
		return nil, apperrors.NotFound("Expense not found")
	}
	if _, err := s.guard.project(ctx, userID, expense.ProjectID); err != nil {
		return nil, err
	}
	return expense, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
