package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
	"filmdesk/internal/services"
)

func TestSceneService(t *testing.T) {
	f := newFixture(t)
	svc := services.NewSceneService(f.store.Projects(), f.store.Scenes())
	ctx := context.Background()

	board, err := svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, board.Scenes)
	assert.Equal(t, 0.0, board.Progress)

	f.analyzed(t)
	board, err = svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	require.Len(t, board.Scenes, 2)
	assert.Equal(t, 1, board.Scenes[0].SceneNumber)
	assert.Equal(t, models.SceneStatusToDo, board.Scenes[0].Status)

	_, err = svc.Update(ctx, f.owner, board.Scenes[0].ID, services.UpdateSceneRequest{Status: strPtr(models.SceneStatusDone)})
	require.NoError(t, err)

	board, err = svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, board.Progress)

	_, err = svc.Update(ctx, f.other, board.Scenes[1].ID, services.UpdateSceneRequest{Status: strPtr(models.SceneStatusDone)})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, f.owner, board.Scenes[1].ID))
	board, err = svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, board.Progress)
}
