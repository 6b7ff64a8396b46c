package models

import "github.com/google/uuid"

type Asset struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Cost      float64   `json:"cost"`
}

func (a *Asset) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}
