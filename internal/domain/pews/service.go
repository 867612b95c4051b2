package pews

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validSkinColors = map[string]bool{
	"": true, "normal": true, "pale": true, "mottled": true, "grey": true, "blue": true,
}

var validWorkOfBreathing = map[string]bool{
	"": true, "normal": true, "mild": true, "moderate": true, "severe": true,
}

var validAVPU = map[string]bool{
	"": true, "alert": true, "voice": true, "pain": true, "unresponsive": true,
}

var validBehaviors = map[string]bool{
	"": true, "normal": true, "irritable": true, "lethargic": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateInput(in Input) error {
	if !validSkinColors[in.SkinColor] {
		return fmt.Errorf("invalid skin_color: %s", in.SkinColor)
	}
	if !validWorkOfBreathing[in.WorkOfBreathing] {
		return fmt.Errorf("invalid work_of_breathing: %s", in.WorkOfBreathing)
	}
	if !validAVPU[in.AVPU] {
		return fmt.Errorf("invalid avpu: %s", in.AVPU)
	}
	if !validBehaviors[in.Behavior] {
		return fmt.Errorf("invalid behavior: %s", in.Behavior)
	}
	if in.OxygenSat != nil && (*in.OxygenSat < 0 || *in.OxygenSat > 100) {
		return fmt.Errorf("oxygen_sat must be between 0 and 100")
	}
	if in.CapillaryRefillSec != nil && *in.CapillaryRefillSec < 0 {
		return fmt.Errorf("capillary_refill_sec must be non-negative")
	}
	return nil
}

// Preview scores an input without persisting anything. Safe to call on every
// field change.
func (s *Service) Preview(in Input) (Score, error) {
	if err := validateInput(in); err != nil {
		return Score{}, err
	}
	return Compute(in), nil
}

// Commit scores the input and persists it as a finalized assessment.
func (s *Service) Commit(ctx context.Context, childID uuid.UUID, in Input) (*Assessment, error) {
	if childID == uuid.Nil {
		return nil, fmt.Errorf("child_id is required")
	}
	score, err := s.Preview(in)
	if err != nil {
		return nil, err
	}
	a := &Assessment{
		ChildID:        childID,
		Input:          in,
		Cardiovascular: score.Cardiovascular,
		Respiratory:    score.Respiratory,
		Behavioral:     score.Behavioral,
		Total:          score.Total,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListByChild(ctx, childID, limit, offset)
}
