package models

import "github.com/google/uuid"

const (
	SceneStatusToDo = "To Do"
	SceneStatusDone = "Done"
)

type Scene struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	SceneNumber int       `json:"scene_number"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

func (s *Scene) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = SceneStatusToDo
	}
}
