package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Genres is the closed set of genres the script analysis may report.
var Genres = []string{
	"Action", "Comedy", "Drama", "Horror", "Sci-Fi",
	"Thriller", "Romance", "Adventure", "Musical", "Indie",
}

func IsKnownGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

type Character struct {
	Name          string `json:"name"`
	DialogueLines int    `json:"dialogue_lines"`
}

type Location struct {
	Name   string `json:"name"`
	Scenes int    `json:"scenes"`
}

type SceneOutline struct {
	SceneNumber int    `json:"scene_number"`
	Description string `json:"description"`
}

// Breakdown is the structured extraction produced by the script analysis.
type Breakdown struct {
	Genre           string         `json:"genre"`
	Logline         string         `json:"logline,omitempty"`
	Characters      []Character    `json:"characters"`
	Locations       []Location     `json:"locations"`
	Props           []string       `json:"props"`
	Scenes          []SceneOutline `json:"scenes,omitempty"`
	EstimatedScenes int            `json:"estimated_scenes"`
}

// DecodeBreakdown parses and validates a breakdown document.
func DecodeBreakdown(raw []byte) (*Breakdown, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var b Breakdown
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.normalize()
	return &b, nil
}

// Validate checks the document against the analysis contract.
func (b *Breakdown) Validate() error {
	if !IsKnownGenre(b.Genre) {
		return fmt.Errorf("genre %q is not one of %s", b.Genre, strings.Join(Genres, ", "))
	}
	if b.EstimatedScenes < 0 {
		return fmt.Errorf("estimated_scenes must be non-negative, got %d", b.EstimatedScenes)
	}
	for i, c := range b.Characters {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("characters[%d] has no name", i)
		}
		if c.DialogueLines < 0 {
			return fmt.Errorf("characters[%d] has negative dialogue_lines", i)
		}
	}
	for i, l := range b.Locations {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("locations[%d] has no name", i)
		}
		if l.Scenes < 0 {
			return fmt.Errorf("locations[%d] has negative scenes", i)
		}
	}
	for i, s := range b.Scenes {
		if s.SceneNumber <= 0 {
			return fmt.Errorf("scenes[%d] has no scene_number", i)
		}
	}
	return nil
}

func (b *Breakdown) normalize() {
	if b.Characters == nil {
		b.Characters = []Character{}
	}
	if b.Locations == nil {
		b.Locations = []Location{}
	}
	if b.Props == nil {
		b.Props = []string{}
	}
}

func (b *Breakdown) Encode() (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (b *Breakdown) TotalDialogueLines() int {
	total := 0
	for _, c := range b.Characters {
		total += c.DialogueLines
	}
	return total
}
