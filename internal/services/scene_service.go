package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

type UpdateSceneRequest struct {
	Status *string `json:"status"`
}

// SceneBoard is the post-production view: every scene plus the share marked done.
type SceneBoard struct {
	Scenes   []models.Scene `json:"scenes"`
	Progress float64        `json:"progress"`
}

type SceneService struct {
	scenes SceneStore
	guard  ownershipGuard
}

func NewSceneService(projects ProjectStore, scenes SceneStore) *SceneService {
	return &SceneService{scenes: scenes, guard: ownershipGuard{projects: projects}}
}

func (s *SceneService) List(ctx context.Context, userID, projectID uuid.UUID) (*SceneBoard, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	scenes, err := s.scenes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	if scenes == nil {
		scenes = []models.Scene{}
	}
	return &SceneBoard{Scenes: scenes, Progress: progress(scenes)}, nil
}

func progress(scenes []models.Scene) float64 {
	if len(scenes) == 0 {
		return 0
	}
	done := 0
	for _, sc := range scenes {
		if sc.Status == models.SceneStatusDone {
			done++
		}
	}
	return float64(done) / float64(len(scenes)) * 100
}

func (s *SceneService) Update(ctx context.Context, userID, sceneID uuid.UUID, req UpdateSceneRequest) (*models.Scene, error) {
	scene, err := s.load(ctx, userID, sceneID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status == "" {
			return nil, apperrors.InvalidInput("Scene status cannot be empty")
		}
		scene.Status = status
	}
	if err := s.scenes.Update(ctx, scene); err != nil {
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}
	return scene, nil
}

func (s *SceneService) Delete(ctx context.Context, userID, sceneID uuid.UUID) error {
	if _, err := s.load(ctx, userID, sceneID); err != nil {
		return err
	}
	if err := s.scenes.Delete(ctx, sceneID); err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	return nil
}

func (s *SceneService) load(ctx context.Context, userID, sceneID uuid.UUID) (*models.Scene, error) {
	scene, err := s.scenes.GetByID(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	if scene == nil {
		return nil, apperrors.NotFound("Scene not found")
	}
	if _, err := s.guard.project(ctx, userID, scene.ProjectID); err != nil {
		return nil, err
	}
	return scene, nil
}
