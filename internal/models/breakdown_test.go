package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBreakdown = `{
  "genre": "Thriller",
  "characters": [{"name": "ANNA", "dialogue_lines": 12}, {"name": "MARK", "dialogue_lines": 7}],
  "locations": [{"name": "WAREHOUSE", "scenes": 2}],
  "props": ["flashlight", "revolver"],
  "scenes": [{"scene_number": 1, "description": "Anna enters the warehouse"}],
  "estimated_scenes": 3
}`

func TestDecodeBreakdown(t *testing.T) {
	b, err := DecodeBreakdown([]byte(sampleBreakdown))
	require.NoError(t, err)

	assert.Equal(t, "Thriller", b.Genre)
	assert.Len(t, b.Characters, 2)
	assert.Equal(t, 19, b.TotalDialogueLines())
	assert.Equal(t, 3, b.EstimatedScenes)
	assert.Equal(t, 1, b.Scenes[0].SceneNumber)
}

func TestBreakdownRoundTrip(t *testing.T) {
	original, err := DecodeBreakdown([]byte(sampleBreakdown))
	require.NoError(t, err)

	stored, err := original.Encode()
	require.NoError(t, err)

	loaded, err := DecodeBreakdown([]byte(stored))
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestDecodeBreakdownRejectsContractViolations(t *testing.T) {
	tests := map[string]string{
		"unknown genre":     `{"genre": "Western", "estimated_scenes": 1}`,
		"negative scenes":   `{"genre": "Drama", "estimated_scenes": -1}`,
		"unnamed character": `{"genre": "Drama", "characters": [{"name": " ", "dialogue_lines": 1}], "estimated_scenes": 1}`,
		"scene without num": `{"genre": "Drama", "scenes": [{"description": "x"}], "estimated_scenes": 1}`,
		"not json":          `genre: Drama`,
		"wrong field type":  `{"genre": "Drama", "estimated_scenes": "three"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBreakdown([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeBreakdownFillsEmptyCollections(t *testing.T) {
	b, err := DecodeBreakdown([]byte(`{"genre": "Indie", "estimated_scenes": 0}`))
	require.NoError(t, err)
	assert.NotNil(t, b.Characters)
	assert.NotNil(t, b.Locations)
	assert.NotNil(t, b.Props)
	assert.Nil(t, b.Scenes)
}
