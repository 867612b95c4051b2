package child

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Child) error
	GetByID(ctx context.Context, id uuid.UUID) (*Child, error)
	Update(ctx context.Context, c *Child) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFamily(ctx context.Context, familyID string, limit, offset int) ([]*Child, int, error)
	// Baselines
	UpsertBaseline(ctx context.Context, b *VitalBaseline) error
	GetBaselines(ctx context.Context, childID uuid.UUID) ([]*VitalBaseline, error)
}
