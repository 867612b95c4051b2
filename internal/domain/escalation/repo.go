package escalation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ReplaceContacts(ctx context.Context, childID uuid.UUID, contacts []Contact) error
	ListContacts(ctx context.Context, childID uuid.UUID) ([]Contact, error)
	CreateEscalation(ctx context.Context, e *Escalation) error
	GetEscalation(ctx context.Context, id uuid.UUID) (*Escalation, error)
	UpdateEscalation(ctx context.Context, e *Escalation) error
}
