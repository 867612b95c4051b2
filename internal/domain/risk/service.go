package risk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peditrack/peditrack/internal/domain/symptoms"
)

// EscalationStarter kicks off a notification cascade when a child's score
// crosses the critical threshold. Implemented by the escalation service.
type EscalationStarter interface {
	StartForChild(ctx context.Context, childID uuid.UUID, score int) error
}

type Service struct {
	repo    Repository
	starter EscalationStarter
	log     zerolog.Logger

	// Per-child append serialization: concurrent assessments of the same
	// child must not interleave trend writes.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewService(repo Repository, starter EscalationStarter, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		starter: starter,
		log:     log,
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) childLock(childID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[childID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[childID] = l
	}
	return l
}

// AddPoint appends a trend point under the child's write lock. Crossing into
// the critical band (previous latest below it, or no history) starts an
// escalation; a score already critical does not restart one.
func (s *Service) AddPoint(ctx context.Context, p *TrendPoint) error {
	if p.ChildID == uuid.Nil {
		return fmt.Errorf("child_id is required")
	}
	if p.Score < 0 || p.Score > 100 {
		return fmt.Errorf("score must be between 0 and 100")
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	l := s.childLock(p.ChildID)
	l.Lock()
	defer l.Unlock()

	prev, err := s.repo.LatestPoint(ctx, p.ChildID)
	if err != nil {
		return err
	}
	if err := s.repo.AppendPoint(ctx, p); err != nil {
		return err
	}

	crossed := p.Score >= CriticalThreshold && (prev == nil || prev.Score < CriticalThreshold)
	if crossed && s.starter != nil {
		if err := s.starter.StartForChild(ctx, p.ChildID, p.Score); err != nil {
			s.log.Error().Err(err).Str("child_id", p.ChildID.String()).
				Int("score", p.Score).Msg("failed to start escalation")
			return fmt.Errorf("start escalation: %w", err)
		}
		s.log.Warn().Str("child_id", p.ChildID.String()).Int("score", p.Score).
			Msg("risk crossed critical threshold, escalation started")
	}
	return nil
}

// Trend returns the recent points with their direction over the default
// window.
func (s *Service) Trend(ctx context.Context, childID uuid.UUID) ([]TrendPoint, string, error) {
	points, err := s.repo.ListPoints(ctx, childID, DefaultWindow)
	if err != nil {
		return nil, "", err
	}
	return points, Direction(points, DefaultWindow), nil
}

// Evaluate computes the aggregate for a symptom/vital snapshot and records
// it as a trend point, in one step.
func (s *Service) Evaluate(ctx context.Context, childID uuid.UUID, obs []symptoms.Observation, v VitalSnapshot) (*TrendPoint, string, error) {
	for i := range obs {
		if err := obs[i].Validate(); err != nil {
			return nil, "", fmt.Errorf("observation %d: %w", i, err)
		}
	}
	score := Aggregate(obs, v)
	p := &TrendPoint{ChildID: childID, Score: score, Timestamp: time.Now()}
	if err := s.AddPoint(ctx, p); err != nil {
		return nil, "", err
	}
	return p, LevelFor(score), nil
}
