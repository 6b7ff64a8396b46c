// Package budget serves budget estimates from an offline-trained random
// forest and the column list it was trained on.
package budget

import (
	"encoding/json"
	"fmt"
	"os"

	"filmdesk/internal/models"
)

type Predictor struct {
	forest  *Forest
	columns []string
}

func NewPredictor(forest *Forest, columns []string) (*Predictor, error) {
	if len(columns) != forest.NFeatures {
		return nil, fmt.Errorf("model expects %d features but column schema lists %d", forest.NFeatures, len(columns))
	}
	return &Predictor{forest: forest, columns: columns}, nil
}

// Load reads the model and column schema artifacts.
func Load(modelPath, columnsPath string) (*Predictor, error) {
	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read budget model: %w", err)
	}
	forest, err := DecodeForest(raw)
	if err != nil {
		return nil, fmt.Errorf("load budget model %s: %w", modelPath, err)
	}

	raw, err = os.ReadFile(columnsPath)
	if err != nil {
		return nil, fmt.Errorf("read model columns: %w", err)
	}
	var columns []string
	if err := json.Unmarshal(raw, &columns); err != nil {
		return nil, fmt.Errorf("decode model columns %s: %w", columnsPath, err)
	}

	return NewPredictor(forest, columns)
}

func (p *Predictor) Columns() []string {
	return p.columns
}

// Predict estimates the budget of a film from its breakdown.
func (p *Predictor) Predict(b *models.Breakdown) (float64, error) {
	return p.forest.Predict(Align(FeatureRow(b), p.columns))
}
