package escalation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEscalationExhausted means the cascade ran past the last contact with no
// acknowledgment. It is a distinct terminal failure, never folded into
// resolved.
var ErrEscalationExhausted = errors.New("escalation exhausted: no contact acknowledged")

// Escalation instance states.
const (
	StateIdle      = "idle"
	StateNotifying = "notifying"
	StateResolved  = "resolved"
	StateExhausted = "exhausted"
)

// Contact is one member of a child's notification cascade. Priority is
// always re-derived from list position (1 = first notified), never stored
// independently by callers.
type Contact struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ChildID       uuid.UUID `db:"child_id" json:"child_id"`
	MemberID      string    `db:"member_id" json:"member_id"`
	Name          string    `db:"name" json:"name"`
	Priority      int       `db:"priority" json:"priority"`
	ContactMethod string    `db:"contact_method" json:"contact_method"` // sms|push|voice
	Address       string    `db:"address" json:"address"`               // phone number or device token
}

// Escalation maps to the escalations table. CurrentPriority is the contact
// being waited on while notifying.
type Escalation struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ChildID         uuid.UUID  `db:"child_id" json:"child_id"`
	Score           int        `db:"score" json:"score"`
	State           string     `db:"state" json:"state"`
	CurrentPriority int        `db:"current_priority" json:"current_priority"`
	TimeoutSeconds  int        `db:"timeout_seconds" json:"timeout_seconds"`
	AcknowledgedBy  *string    `db:"acknowledged_by" json:"acknowledged_by,omitempty"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
