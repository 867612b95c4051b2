package vitals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peditrack/peditrack/internal/domain/child"
)

var validSources = map[string]bool{
	SourceManual: true, SourceDevice: true, SourceAIInferred: true,
}

var validTypes = map[string]bool{
	TypeTemperature: true, TypeHeartRate: true, TypeOxygen: true, TypeRespiratoryRate: true,
}

// AgeResolver supplies a child's current age in months. Implemented by the
// child service; returns child.ErrAgeUnknown when no usable date of birth
// exists.
type AgeResolver interface {
	AgeMonths(ctx context.Context, childID uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
	ages AgeResolver
}

func NewService(repo Repository, ages AgeResolver) *Service {
	return &Service{repo: repo, ages: ages}
}

// Record validates and persists a reading, classifying it against the
// age-bucketed normal range. Unknown age leaves the reading unclassified
// rather than judging it against a guessed bucket.
func (s *Service) Record(ctx context.Context, v *Reading) error {
	if v.ChildID == uuid.Nil {
		return fmt.Errorf("child_id is required")
	}
	if !validTypes[v.VitalType] {
		return fmt.Errorf("invalid vital_type: %s", v.VitalType)
	}
	if v.Value <= 0 {
		return fmt.Errorf("value must be positive")
	}
	if v.Source == "" {
		v.Source = SourceManual
	}
	if !validSources[v.Source] {
		return fmt.Errorf("invalid source: %s", v.Source)
	}
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now()
	}

	ageMonths, err := s.ages.AgeMonths(ctx, v.ChildID)
	switch {
	case errors.Is(err, child.ErrAgeUnknown):
		v.Status = StatusUnclassified
	case err != nil:
		return err
	case InRange(v.VitalType, ageMonths, v.Value):
		v.Status = StatusNormal
	default:
		v.Status = StatusOutOfRange
	}

	return s.repo.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reading, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByChild(ctx context.Context, childID uuid.UUID, vitalType string, limit, offset int) ([]*Reading, int, error) {
	if vitalType != "" && !validTypes[vitalType] {
		return nil, 0, fmt.Errorf("invalid vital_type: %s", vitalType)
	}
	return s.repo.ListByChild(ctx, childID, vitalType, limit, offset)
}

func (s *Service) Latest(ctx context.Context, childID uuid.UUID, vitalType string) (*Reading, error) {
	return s.repo.Latest(ctx, childID, vitalType)
}
