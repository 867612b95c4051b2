package child

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validGenders = map[string]bool{
	"male": true, "female": true,
}

var validBaselineVitals = map[string]bool{
	"temperature": true, "heart_rate": true, "oxygen": true, "respiratory_rate": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(c *Child) error {
	if c.FamilyID == "" {
		return fmt.Errorf("family_id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Gender != nil && !validGenders[*c.Gender] {
		return fmt.Errorf("invalid gender: %s", *c.Gender)
	}
	if c.WeightLbs != nil && *c.WeightLbs <= 0 {
		return fmt.Errorf("weight_lbs must be positive")
	}
	if c.DateOfBirth != nil && c.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date_of_birth must not be in the future")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, c *Child) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Child, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Child) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByFamily(ctx context.Context, familyID string, limit, offset int) ([]*Child, int, error) {
	return s.repo.ListByFamily(ctx, familyID, limit, offset)
}

// AgeMonths resolves the child's current age in months, failing closed with
// ErrAgeUnknown when the profile has no usable date of birth.
func (s *Service) AgeMonths(ctx context.Context, id uuid.UUID) (int, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return AgeMonthsOf(c, time.Now())
}

func (s *Service) SetBaseline(ctx context.Context, b *VitalBaseline) error {
	if b.ChildID == uuid.Nil {
		return fmt.Errorf("child_id is required")
	}
	if !validBaselineVitals[b.VitalType] {
		return fmt.Errorf("invalid vital_type: %s", b.VitalType)
	}
	if b.Value <= 0 {
		return fmt.Errorf("value must be positive")
	}
	if b.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	return s.repo.UpsertBaseline(ctx, b)
}

func (s *Service) Baselines(ctx context.Context, childID uuid.UUID) ([]*VitalBaseline, error) {
	return s.repo.GetBaselines(ctx, childID)
}
