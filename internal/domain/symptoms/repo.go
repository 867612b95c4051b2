package symptoms

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntriesByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Entry, int, error)
}
