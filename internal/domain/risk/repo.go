package risk

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	AppendPoint(ctx context.Context, p *TrendPoint) error
	// ListPoints returns the child's points in ascending timestamp order.
	ListPoints(ctx context.Context, childID uuid.UUID, limit int) ([]TrendPoint, error)
	LatestPoint(ctx context.Context, childID uuid.UUID) (*TrendPoint, error)
}
