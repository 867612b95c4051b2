package vitals

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Reading) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reading, error)
	ListByChild(ctx context.Context, childID uuid.UUID, vitalType string, limit, offset int) ([]*Reading, int, error)
	Latest(ctx context.Context, childID uuid.UUID, vitalType string) (*Reading, error)
}
