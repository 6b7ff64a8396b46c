package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
	"filmdesk/internal/services"
)

func strPtr(s string) *string { return &s }

func TestScheduleService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	svc := services.NewScheduleService(f.store.Projects(), f.store.Schedule())
	ctx := context.Background()

	item, err := svc.Create(ctx, f.owner, f.project.ID, services.CreateScheduleItemRequest{
		TaskDescription: "Scout warehouse",
		StartDate:       "2024-05-01",
		EndDate:         "2024-05-02",
		Location:        strPtr("WAREHOUSE"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultScheduleStatus, item.Status)

	updated, err := svc.Update(ctx, f.owner, item.ID, services.UpdateScheduleItemRequest{Status: strPtr("Completed")})
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)
	assert.Equal(t, "Scout warehouse", updated.TaskDescription)
	assert.Equal(t, "2024-05-01", updated.StartDate.String())
	assert.Equal(t, "WAREHOUSE", *updated.Location)

	_, err = svc.Update(ctx, f.owner, item.ID, services.UpdateScheduleItemRequest{EndDate: strPtr("May 3")})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.Update(ctx, f.other, item.ID, services.UpdateScheduleItemRequest{Status: strPtr("Done")})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, f.owner, item.ID))
	err = svc.Delete(ctx, f.owner, item.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestScheduleService_CreateRejectsBadDates(t *testing.T) {
	f := newFixture(t)
	svc := services.NewScheduleService(f.store.Projects(), f.store.Schedule())

	_, err := svc.Create(context.Background(), f.owner, f.project.ID, services.CreateScheduleItemRequest{
		TaskDescription: "Scout", StartDate: "01/05/2024", EndDate: "2024-05-02",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.Create(context.Background(), f.owner, uuid.New(), services.CreateScheduleItemRequest{
		TaskDescription: "Scout", StartDate: "2024-05-01", EndDate: "2024-05-02",
	})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestScheduleService_Generate(t *testing.T) {
	f := newFixture(t)
	svc := services.NewScheduleService(f.store.Projects(), f.store.Schedule())
	ctx := context.Background()

	_, err := svc.Generate(ctx, f.owner, f.project.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	f.analyzed(t)
	generated, err := svc.Generate(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, generated.Count)
	assert.Equal(t, "4 tasks generated successfully from script analysis.", generated.Message)
	assert.Equal(t, []string{
		"Character: ANNA - Costume fitting, makeup test, and rehearsal.",
		"Character: MARK - Costume fitting, makeup test, and rehearsal.",
		"Location: WAREHOUSE - Scouting, permits, and set dressing.",
		"Prop: flashlight - Sourcing, acquisition, or fabrication.",
	}, generated.Tasks)

	items, err := svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assignees := map[string]bool{}
	for _, item := range items {
		assert.Equal(t, models.DefaultScheduleStatus, item.Status)
		assert.Equal(t, models.Today().String(), item.StartDate.String())
		assignees[*item.AssignedTo] = true
	}
	assert.True(t, assignees["ANNA"])
	assert.True(t, assignees["Location Manager"])
	assert.True(t, assignees["Prop Master"])
}

func TestScheduleService_Board(t *testing.T) {
	f := newFixture(t).analyzed(t)
	svc := services.NewScheduleService(f.store.Projects(), f.store.Schedule())
	ctx := context.Background()

	for _, req := range []services.CreateScheduleItemRequest{
		{TaskDescription: "Dress set", StartDate: "2024-05-01", EndDate: "2024-05-01", Location: strPtr("WAREHOUSE")},
		{TaskDescription: "Table read", StartDate: "2024-05-02", EndDate: "2024-05-02"},
		{TaskDescription: "Shoot", StartDate: "2024-05-03", EndDate: "2024-05-03", Location: strPtr("WAREHOUSE")},
	} {
		_, err := svc.Create(ctx, f.owner, f.project.ID, req)
		require.NoError(t, err)
	}

	board, err := svc.Board(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	require.Len(t, board.Groups, 2)
	assert.Equal(t, "WAREHOUSE", board.Groups[0].Location)
	assert.Len(t, board.Groups[0].Items, 2)
	assert.Equal(t, services.NoLocation, board.Groups[1].Location)
	assert.Len(t, board.Characters, 2)
	assert.Equal(t, []string{"flashlight"}, board.Props)
}
