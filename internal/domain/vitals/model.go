package vitals

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeTemperature     = "temperature"
	TypeHeartRate       = "heart_rate"
	TypeOxygen          = "oxygen"
	TypeRespiratoryRate = "respiratory_rate"
	TypeSystolicBP      = "systolic_bp"
)

const (
	SourceManual     = "manual"
	SourceDevice     = "device"
	SourceAIInferred = "ai_inferred"
)

// Reading status after range classification. Readings recorded for a child
// whose age is unknown stay unclassified rather than being judged against a
// guessed age bucket.
const (
	StatusNormal       = "normal"
	StatusOutOfRange   = "out_of_range"
	StatusUnclassified = "unclassified"
)

// Reading maps to the vital_readings table. Rows are immutable once created.
type Reading struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ChildID    uuid.UUID `db:"child_id" json:"child_id"`
	VitalType  string    `db:"vital_type" json:"vital_type"`
	Value      float64   `db:"value" json:"value"`
	Unit       string    `db:"unit" json:"unit"`
	Source     string    `db:"source" json:"source"`
	Status     string    `db:"status" json:"status"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
