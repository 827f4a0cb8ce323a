package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is the stable JSON shape of a check run.
type Document struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     Summary   `json:"summary"`
	Groups      []Group   `json:"groups,omitempty"`
	Packages    []Entry   `json:"packages,omitempty"`
}

// ToJSON serializes the report as an indented JSON document with a fresh
// run ID and timestamp.
func (r Report) ToJSON() ([]byte, error) {
	doc := Document{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     r.Summary,
		Groups:      r.Groups,
		Packages:    r.Entries,
	}
	return json.MarshalIndent(doc, "", "  ")
}
