package models

import (
	"time"

	"github.com/google/uuid"
)

// InlineScriptName marks a project whose script was pasted rather than uploaded.
const InlineScriptName = "inline"

type Project struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	ScriptFileName   string    `json:"script_file_name"`
	ScriptText       string    `json:"-"`
	AnalysisJSON     *string   `json:"-"`
	Genre            *string   `json:"genre,omitempty"`
	Logline          *string   `json:"logline,omitempty"`
	ForecastedBudget float64   `json:"forecasted_budget"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p *Project) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ScriptFileName == "" {
		p.ScriptFileName = InlineScriptName
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}

// HasAnalysis reports whether a breakdown has been stored for the project.
func (p *Project) HasAnalysis() bool {
	return p.AnalysisJSON != nil && *p.AnalysisJSON != ""
}

// Breakdown decodes the stored analysis blob.
func (p *Project) Breakdown() (*Breakdown, error) {
	if !p.HasAnalysis() {
		return nil, nil
	}
	return DecodeBreakdown([]byte(*p.AnalysisJSON))
}
