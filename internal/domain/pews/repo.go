package pews

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}
