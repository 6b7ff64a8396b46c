package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/models"
)

var testColumns = []string{
	"num_characters", "num_locations", "num_props", "estimated_scenes", "total_dialogue_lines",
	"genre_Action", "genre_Drama",
}

// Tree 0 splits on genre_Action, tree 1 on num_characters.
const testForest = `{
	"n_features": 7,
	"trees": [
		{"nodes": [
			{"feature": 5, "threshold": 0.5, "left": 1, "right": 2},
			{"feature": -1, "value": 100000},
			{"feature": -1, "value": 500000}
		]},
		{"nodes": [
			{"feature": 0, "threshold": 3.5, "left": 1, "right": 2},
			{"feature": -1, "value": 200000},
			{"feature": -1, "value": 400000}
		]}
	]
}`

func writeArtifacts(t *testing.T, model, columns string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "budget_model.json")
	columnsPath := filepath.Join(dir, "model_columns.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o600))
	require.NoError(t, os.WriteFile(columnsPath, []byte(columns), 0o600))
	return modelPath, columnsPath
}

func loadTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	modelPath, columnsPath := writeArtifacts(t, testForest,
		`["num_characters","num_locations","num_props","estimated_scenes","total_dialogue_lines","genre_Action","genre_Drama"]`)
	p, err := Load(modelPath, columnsPath)
	require.NoError(t, err)
	return p
}

func breakdown(genre string, characters int) *models.Breakdown {
	b := &models.Breakdown{Genre: genre, EstimatedScenes: 12, Props: []string{"gun"}}
	for i := 0; i < characters; i++ {
		b.Characters = append(b.Characters, models.Character{Name: "C", DialogueLines: 10})
	}
	return b
}

func TestPredict(t *testing.T) {
	p := loadTestPredictor(t)

	got, err := p.Predict(breakdown("Action", 2))
	require.NoError(t, err)
	assert.InDelta(t, 350000, got, 1e-9)

	got, err = p.Predict(breakdown("Drama", 5))
	require.NoError(t, err)
	assert.InDelta(t, 250000, got, 1e-9)
}

func TestPredictUnseenGenreIsZeroBlock(t *testing.T) {
	p := loadTestPredictor(t)

	got, err := p.Predict(breakdown("Musical", 5))
	require.NoError(t, err)
	assert.InDelta(t, 250000, got, 1e-9)
}

func TestFeatureRowAndAlign(t *testing.T) {
	b := &models.Breakdown{
		Genre:           "Horror",
		Characters:      []models.Character{{Name: "A", DialogueLines: 3}, {Name: "B", DialogueLines: 4}},
		Locations:       []models.Location{{Name: "CABIN", Scenes: 2}},
		Props:           []string{"axe", "lantern"},
		EstimatedScenes: 9,
	}

	row := FeatureRow(b)
	assert.Equal(t, map[string]float64{
		ColNumCharacters:      2,
		ColNumLocations:       1,
		ColNumProps:           2,
		ColEstimatedScenes:    9,
		ColTotalDialogueLines: 7,
		"genre_Horror":        1,
	}, row)

	assert.Equal(t, []float64{2, 1, 2, 9, 7, 0, 0}, Align(row, testColumns))
}

func TestLoadRejectsBadArtifacts(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), "also-missing.json")
	assert.Error(t, err)

	modelPath, columnsPath := writeArtifacts(t, testForest, `["num_characters"]`)
	_, err = Load(modelPath, columnsPath)
	assert.ErrorContains(t, err, "expects 7 features")

	modelPath, columnsPath = writeArtifacts(t, `{"n_features": 1, "trees": []}`, `["a"]`)
	_, err = Load(modelPath, columnsPath)
	assert.Error(t, err)

	modelPath, columnsPath = writeArtifacts(t, "not json", `["a"]`)
	_, err = Load(modelPath, columnsPath)
	assert.Error(t, err)
}

func TestValidateRejectsCycles(t *testing.T) {
	f := &Forest{NFeatures: 1, Trees: []Tree{{Nodes: []Node{
		{Feature: 0, Threshold: 1, Left: 0, Right: 1},
		{Feature: leaf, Value: 1},
	}}}}
	assert.ErrorContains(t, f.Validate(), "invalid children")

	f.Trees[0].Nodes[0] = Node{Feature: 3, Left: 1, Right: 1}
	assert.ErrorContains(t, f.Validate(), "out of range")
}

func TestForestPredictLengthMismatch(t *testing.T) {
	f, err := DecodeForest([]byte(testForest))
	require.NoError(t, err)

	_, err = f.Predict([]float64{1, 2})
	assert.Error(t, err)
}
