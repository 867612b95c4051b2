package child

import (
	"time"

	"github.com/google/uuid"
)

// Child maps to the children table.
type Child struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	FamilyID    string     `db:"family_id" json:"family_id"`
	Name        string     `db:"name" json:"name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	WeightLbs   *float64   `db:"weight_lbs" json:"weight_lbs,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	Conditions  []string   `db:"conditions" json:"conditions,omitempty"`
	Allergies   []string   `db:"allergies" json:"allergies,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// VitalBaseline maps to the vital_baselines table. Learned distinguishes a
// baseline derived from the child's own history from the published default.
type VitalBaseline struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChildID   uuid.UUID `db:"child_id" json:"child_id"`
	VitalType string    `db:"vital_type" json:"vital_type"`
	Value     float64   `db:"value" json:"value"`
	Unit      string    `db:"unit" json:"unit"`
	Learned   bool      `db:"learned" json:"learned"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
