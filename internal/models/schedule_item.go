package models

import "github.com/google/uuid"

const DefaultScheduleStatus = "Pending"

type ScheduleItem struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	TaskDescription string    `json:"task_description"`
	StartDate       Date      `json:"start_date"`
	EndDate         Date      `json:"end_date"`
	AssignedTo      *string   `json:"assigned_to"`
	Status          string    `json:"status"`
	Location        *string   `json:"location"`
}

func (s *ScheduleItem) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = DefaultScheduleStatus
	}
}
