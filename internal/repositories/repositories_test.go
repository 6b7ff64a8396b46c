package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/models"
	"filmdesk/internal/repositories"
	"filmdesk/internal/testutil"
)

func seedProject(t *testing.T, db *testutil.TestDB) (*models.User, *models.Project) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: "Director@Example.com", PasswordHash: "hash", Confirmed: true}
	require.NoError(t, repositories.NewUserRepository(db.Pool).Create(ctx, user))

	project := &models.Project{UserID: user.ID, Name: "Night Shift", ScriptText: "INT. DINER - NIGHT"}
	require.NoError(t, repositories.NewProjectRepository(db.Pool).Create(ctx, project))
	return user, project
}

func TestUserRepository(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(db.Pool)

	user := &models.User{Email: "  Someone@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "someone@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.Confirmed)
	assert.Nil(t, found.LastLoginAt)

	require.NoError(t, repo.MarkConfirmed(ctx, user.ID))
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, time.Now()))

	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.Confirmed)
	assert.NotNil(t, found.LastLoginAt)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := &models.User{Email: "someone@example.com", PasswordHash: "x"}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestProjectSaveAnalysisReplacesScenes(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)

	projects := repositories.NewProjectRepository(db.Pool)
	scenes := repositories.NewSceneRepository(db.Pool)

	require.NoError(t, scenes.Create(ctx, &models.Scene{ProjectID: project.ID, SceneNumber: 99, Description: "stale"}))

	breakdown := &models.Breakdown{
		Genre:           "Thriller",
		Logline:         "A cook sees too much.",
		Characters:      []models.Character{{Name: "MAE", DialogueLines: 12}},
		Locations:       []models.Location{{Name: "DINER", Scenes: 2}},
		Props:           []string{"knife"},
		Scenes:          []models.SceneOutline{{SceneNumber: 2, Description: "Back alley"}, {SceneNumber: 1, Description: "Diner"}},
		EstimatedScenes: 2,
	}
	require.NoError(t, projects.SaveAnalysis(ctx, project.ID, breakdown))

	stored, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, stored.HasAnalysis())
	assert.Equal(t, "Thriller", *stored.Genre)
	assert.Equal(t, "A cook sees too much.", *stored.Logline)

	loaded, err := stored.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, breakdown, loaded)

	list, err := scenes.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].SceneNumber)
	assert.Equal(t, models.SceneStatusToDo, list[0].Status)
}

func TestProjectSaveAnalysisKeepsSceneStatus(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)

	projects := repositories.NewProjectRepository(db.Pool)
	scenes := repositories.NewSceneRepository(db.Pool)

	first := &models.Breakdown{
		Genre:           "Drama",
		Scenes:          []models.SceneOutline{{SceneNumber: 1, Description: "Kitchen"}, {SceneNumber: 2, Description: "Street"}},
		EstimatedScenes: 2,
	}
	require.NoError(t, projects.SaveAnalysis(ctx, project.ID, first))

	list, err := scenes.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	list[0].Status = models.SceneStatusDone
	require.NoError(t, scenes.Update(ctx, &list[0]))

	require.NoError(t, projects.SaveAnalysis(ctx, project.ID, &models.Breakdown{Genre: "Comedy", EstimatedScenes: 2}))
	list, err = scenes.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.SceneStatusDone, list[0].Status)

	second := &models.Breakdown{
		Genre:           "Comedy",
		Scenes:          []models.SceneOutline{{SceneNumber: 1, Description: "Kitchen at dawn"}},
		EstimatedScenes: 1,
	}
	require.NoError(t, projects.SaveAnalysis(ctx, project.ID, second))
	list, err = scenes.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kitchen at dawn", list[0].Description)
	assert.Equal(t, models.SceneStatusDone, list[0].Status)
}

func TestProjectDeleteCascades(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	user, project := seedProject(t, db)

	expenses := repositories.NewExpenseRepository(db.Pool)
	require.NoError(t, expenses.Create(ctx, &models.Expense{ProjectID: project.ID, Description: "Lights", Amount: 1200}))

	projects := repositories.NewProjectRepository(db.Pool)
	list, err := projects.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, projects.Delete(ctx, project.ID))

	gone, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	left, err := expenses.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestExpenseRepositoryOrdersNewestFirst(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)
	repo := repositories.NewExpenseRepository(db.Pool)

	older, _ := models.ParseDate("2024-01-05")
	newer, _ := models.ParseDate("2024-03-01")
	catering := "Catering"

	require.NoError(t, repo.Create(ctx, &models.Expense{ProjectID: project.ID, Description: "Lunch", Amount: 80.5, Date: older, Category: &catering}))
	require.NoError(t, repo.Create(ctx, &models.Expense{ProjectID: project.ID, Description: "Camera", Amount: 1200, Date: newer}))

	list, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Camera", list[0].Description)
	assert.Equal(t, "2024-03-01", list[0].Date.String())
	assert.Nil(t, list[0].Category)
	assert.Equal(t, "Catering", *list[1].Category)

	list[1].Amount = 99
	require.NoError(t, repo.Update(ctx, &list[1]))
	got, err := repo.GetByID(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 99.0, got.Amount)

	require.NoError(t, repo.Delete(ctx, got.ID))
	got, err = repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScheduleRepository(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)
	repo := repositories.NewScheduleRepository(db.Pool)

	day1, _ := models.ParseDate("2024-06-01")
	day2, _ := models.ParseDate("2024-06-02")
	stage := "Stage 4"

	require.NoError(t, repo.CreateMany(ctx, []models.ScheduleItem{
		{ProjectID: project.ID, TaskDescription: "Wrap", StartDate: day2, EndDate: day2},
		{ProjectID: project.ID, TaskDescription: "Load in", StartDate: day1, EndDate: day2, Location: &stage},
	}))

	items, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Load in", items[0].TaskDescription)
	assert.Equal(t, models.DefaultScheduleStatus, items[0].Status)
	assert.Equal(t, "Stage 4", *items[0].Location)

	items[0].Status = "Done"
	require.NoError(t, repo.Update(ctx, &items[0]))
	got, err := repo.GetByID(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Done", got.Status)
	assert.Equal(t, "2024-06-01", got.StartDate.String())
}

func TestAssetRepository(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)
	repo := repositories.NewAssetRepository(db.Pool)

	asset := &models.Asset{ProjectID: project.ID, Name: "Dolly", Status: "Rented", Cost: 350}
	require.NoError(t, repo.Create(ctx, asset))

	asset.Status = "Returned"
	require.NoError(t, repo.Update(ctx, asset))

	list, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Returned", list[0].Status)

	require.NoError(t, repo.Delete(ctx, asset.ID))
	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConversationRepositoryUpsert(t *testing.T) {
	db := testutil.GetTestDB(t)
	db.Truncate(t)
	ctx := context.Background()
	_, project := seedProject(t, db)
	repo := repositories.NewConversationRepository(db.Pool)

	none, err := repo.GetByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	conv := &models.Conversation{ProjectID: project.ID}
	conv.Append(models.RoleAI, "Hello")
	require.NoError(t, repo.Save(ctx, conv))

	conv.Append(models.RoleUser, "Add lunch")
	require.NoError(t, repo.Save(ctx, conv))

	got, err := repo.GetByProject(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)
	assert.Equal(t, []models.Turn{{Role: "ai", Text: "Hello"}, {Role: "user", Text: "Add lunch"}}, got.History)
}
