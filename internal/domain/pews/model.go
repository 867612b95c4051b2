package pews

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is a committed score. Previews are pure computation and never
// reach this table; committing freezes both the input and the derived
// sub-scores.
type Assessment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ChildID        uuid.UUID `db:"child_id" json:"child_id"`
	Input          Input     `db:"input" json:"input"`
	Cardiovascular int       `db:"cardiovascular" json:"cardiovascular"`
	Respiratory    int       `db:"respiratory" json:"respiratory"`
	Behavioral     int       `db:"behavioral" json:"behavioral"`
	Total          int       `db:"total" json:"total"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
