package symptoms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordEntry validates every observation against the catalog and persists
// the check. Observations arrive already normalized by Observation's
// unmarshalling.
func (s *Service) RecordEntry(ctx context.Context, e *Entry) error {
	if e.ChildID == uuid.Nil {
		return fmt.Errorf("child_id is required")
	}
	if len(e.Observations) == 0 {
		return fmt.Errorf("at least one observation is required")
	}
	now := time.Now()
	for i := range e.Observations {
		if err := e.Observations[i].Validate(); err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		if e.Observations[i].Timestamp.IsZero() {
			e.Observations[i].Timestamp = now
		}
	}
	return s.repo.CreateEntry(ctx, e)
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	return s.repo.ListEntriesByChild(ctx, childID, limit, offset)
}
