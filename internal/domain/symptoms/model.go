package symptoms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

var validSeverities = map[string]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

var validDurations = map[string]bool{
	"under_1h": true, "1_to_24h": true, "1_to_3d": true, "over_3d": true,
}

// Observation is one reported symptom inside a check. Loose input shapes
// (a bare symptom id string, or an object with a name field instead of
// symptom_id) are normalized here at the boundary so the engines never see
// more than one shape.
type Observation struct {
	SymptomID      string    `json:"symptom_id"`
	Severity       string    `json:"severity"`
	DurationBucket string    `json:"duration_bucket,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

func (o *Observation) UnmarshalJSON(data []byte) error {
	// Bare string form: "cough" → mild observation of that symptom.
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		o.SymptomID = id
		o.Severity = SeverityMild
		return nil
	}

	type observation Observation
	var full struct {
		observation
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*o = Observation(full.observation)
	if o.SymptomID == "" {
		o.SymptomID = full.Name
	}
	if o.Severity == "" {
		o.Severity = SeverityMild
	}
	return nil
}

// Validate checks the normalized observation against the catalog.
func (o *Observation) Validate() error {
	if o.SymptomID == "" {
		return fmt.Errorf("symptom_id is required")
	}
	if _, ok := DefinitionByID(o.SymptomID); !ok {
		return fmt.Errorf("unknown symptom: %s", o.SymptomID)
	}
	if !validSeverities[o.Severity] {
		return fmt.Errorf("invalid severity: %s", o.Severity)
	}
	if o.DurationBucket != "" && !validDurations[o.DurationBucket] {
		return fmt.Errorf("invalid duration_bucket: %s", o.DurationBucket)
	}
	return nil
}

// Entry aggregates the observations captured in a single check. Maps to the
// symptom_entries table with observations stored as jsonb.
type Entry struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	ChildID      uuid.UUID     `db:"child_id" json:"child_id"`
	Observations []Observation `db:"observations" json:"observations"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}
