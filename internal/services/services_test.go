package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/models"
	"filmdesk/internal/testutil"
)

const thrillerBreakdown = `{
  "genre": "Thriller",
  "logline": "A night guard uncovers a smuggling ring.",
  "characters": [{"name": "ANNA", "dialogue_lines": 12}, {"name": "MARK", "dialogue_lines": 7}],
  "locations": [{"name": "WAREHOUSE", "scenes": 2}],
  "props": ["flashlight"],
  "scenes": [{"scene_number": 1, "description": "Anna enters"}, {"scene_number": 2, "description": "Mark waits"}],
  "estimated_scenes": 2
}`

const sampleScript = `INT. WAREHOUSE - NIGHT
Anna sweeps her flashlight across stacked crates. Mark waits by the door.`

type fixture struct {
	store   *testutil.MemoryStore
	owner   uuid.UUID
	other   uuid.UUID
	project *models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemoryStore()
	f := &fixture{store: store, owner: uuid.New(), other: uuid.New()}
	f.project = &models.Project{UserID: f.owner, Name: "Night Shift", ScriptText: sampleScript}
	require.NoError(t, store.Projects().Create(context.Background(), f.project))
	return f
}

// analyzed stores thrillerBreakdown on the fixture project.
func (f *fixture) analyzed(t *testing.T) *fixture {
	t.Helper()
	b, err := models.DecodeBreakdown([]byte(thrillerBreakdown))
	require.NoError(t, err)
	require.NoError(t, f.store.Projects().SaveAnalysis(context.Background(), f.project.ID, b))
	return f
}
