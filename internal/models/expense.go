package models

import "github.com/google/uuid"

type Expense struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        Date      `json:"date"`
	Category    *string   `json:"category"`
}

func (e *Expense) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = Today()
	}
}
