package budget

import "filmdesk/internal/models"

// Base feature columns, in training order. Genre is one-hot encoded after
// them as genre_<Genre>.
const (
	ColNumCharacters      = "num_characters"
	ColNumLocations       = "num_locations"
	ColNumProps           = "num_props"
	ColEstimatedScenes    = "estimated_scenes"
	ColTotalDialogueLines = "total_dialogue_lines"

	genrePrefix = "genre_"
)

// FeatureRow derives the model inputs of a breakdown with genre one-hot encoded.
func FeatureRow(b *models.Breakdown) map[string]float64 {
	row := map[string]float64{
		ColNumCharacters:      float64(len(b.Characters)),
		ColNumLocations:       float64(len(b.Locations)),
		ColNumProps:           float64(len(b.Props)),
		ColEstimatedScenes:    float64(b.EstimatedScenes),
		ColTotalDialogueLines: float64(b.TotalDialogueLines()),
	}
	if b.Genre != "" {
		row[genrePrefix+b.Genre] = 1
	}
	return row
}

// Align reindexes row against the trained columns. Columns missing from the
// row are zero; row entries the model never saw are dropped.
func Align(row map[string]float64, columns []string) []float64 {
	x := make([]float64, len(columns))
	for i, col := range columns {
		x[i] = row[col]
	}
	return x
}
