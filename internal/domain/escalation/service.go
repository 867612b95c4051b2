package escalation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peditrack/peditrack/internal/platform/notification"
)

// NameFunc resolves a child's display name for alert templates.
type NameFunc func(ctx context.Context, childID uuid.UUID) (string, error)

type Service struct {
	repo           Repository
	runner         *Runner
	dispatcher     *notification.Dispatcher
	childName      NameFunc
	timeoutSeconds int
	log            zerolog.Logger
}

func NewService(repo Repository, runner *Runner, dispatcher *notification.Dispatcher,
	childName NameFunc, timeoutSeconds int, log zerolog.Logger) *Service {
	return &Service{
		repo:           repo,
		runner:         runner,
		dispatcher:     dispatcher,
		childName:      childName,
		timeoutSeconds: timeoutSeconds,
		log:            log,
	}
}

// SetContacts replaces a child's cascade. Priorities are re-derived from the
// submitted order, so a reorder is just a resubmission in the new order.
func (s *Service) SetContacts(ctx context.Context, childID uuid.UUID, contacts []Contact) ([]Contact, error) {
	plan, err := NewPlan(contacts, s.timeoutSeconds)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceContacts(ctx, childID, plan.Contacts); err != nil {
		return nil, err
	}
	return plan.Contacts, nil
}

func (s *Service) Contacts(ctx context.Context, childID uuid.UUID) ([]Contact, error) {
	return s.repo.ListContacts(ctx, childID)
}

// StartForChild builds the plan from the child's stored cascade and launches
// a new escalation instance. Satisfies the risk service's starter interface.
func (s *Service) StartForChild(ctx context.Context, childID uuid.UUID, score int) error {
	_, err := s.Start(ctx, childID, score)
	return err
}

func (s *Service) Start(ctx context.Context, childID uuid.UUID, score int) (*Escalation, error) {
	contacts, err := s.repo.ListContacts(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, fmt.Errorf("child %s has no escalation contacts", childID)
	}
	plan, err := NewPlan(contacts, s.timeoutSeconds)
	if err != nil {
		return nil, err
	}

	esc := &Escalation{
		ChildID:         childID,
		Score:           score,
		State:           StateNotifying,
		CurrentPriority: 1,
		TimeoutSeconds:  plan.TimeoutSeconds,
		StartedAt:       time.Now(),
	}
	if err := s.repo.CreateEscalation(ctx, esc); err != nil {
		return nil, err
	}

	hooks := Hooks{
		Notify:   s.notifyContact,
		Finished: s.finished,
	}
	if err := s.runner.Start(ctx, esc, plan, hooks); err != nil {
		return nil, err
	}
	return esc, nil
}

// Ack resolves an active escalation. Acking a finished one reports its
// terminal state; an exhausted cascade is surfaced as ErrEscalationExhausted,
// never as success.
func (s *Service) Ack(ctx context.Context, escalationID uuid.UUID, memberID string) (*Escalation, error) {
	if memberID == "" {
		return nil, fmt.Errorf("member_id is required")
	}
	esc, err := s.runner.Ack(ctx, escalationID, memberID)
	if err == nil {
		return esc, nil
	}

	stored, getErr := s.repo.GetEscalation(ctx, escalationID)
	if getErr != nil {
		return nil, fmt.Errorf("escalation not found: %s", escalationID)
	}
	switch stored.State {
	case StateExhausted:
		return stored, ErrEscalationExhausted
	case StateResolved:
		return stored, fmt.Errorf("escalation already resolved")
	default:
		return nil, err
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Escalation, error) {
	return s.repo.GetEscalation(ctx, id)
}

func (s *Service) resolveName(ctx context.Context, childID uuid.UUID) string {
	if s.childName == nil {
		return "your child"
	}
	name, err := s.childName(ctx, childID)
	if err != nil || name == "" {
		return "your child"
	}
	return name
}

func (s *Service) notifyContact(ctx context.Context, esc *Escalation, c Contact, advanced bool) {
	tplID := "critical-risk"
	if advanced {
		tplID = "escalation-advanced"
	}
	data := map[string]string{
		"child_name":      s.resolveName(ctx, esc.ChildID),
		"score":           strconv.Itoa(esc.Score),
		"priority":        strconv.Itoa(c.Priority),
		"timeout_minutes": strconv.Itoa(esc.TimeoutSeconds / 60),
		"time":            time.Now().Format(time.Kitchen),
	}
	if _, err := s.dispatcher.SendFromTemplate(ctx, tplID, data,
		notification.Channel(c.ContactMethod), c.Address); err != nil {
		s.log.Error().Err(err).Str("escalation_id", esc.ID.String()).
			Str("member_id", c.MemberID).Msg("failed to notify contact")
	}
	if err := s.repo.UpdateEscalation(ctx, esc); err != nil {
		s.log.Error().Err(err).Str("escalation_id", esc.ID.String()).Msg("failed to persist escalation state")
	}
}

func (s *Service) finished(ctx context.Context, esc *Escalation, cause error) {
	if err := s.repo.UpdateEscalation(ctx, esc); err != nil {
		s.log.Error().Err(err).Str("escalation_id", esc.ID.String()).Msg("failed to persist terminal state")
	}
	if cause == nil {
		return
	}
	// Exhaustion alerts the first contact so the failure is visible somewhere.
	contacts, err := s.repo.ListContacts(ctx, esc.ChildID)
	if err != nil || len(contacts) == 0 {
		return
	}
	first := contacts[0]
	data := map[string]string{"child_name": s.resolveName(ctx, esc.ChildID)}
	if _, err := s.dispatcher.SendFromTemplate(ctx, "escalation-exhausted", data,
		notification.Channel(first.ContactMethod), first.Address); err != nil {
		s.log.Error().Err(err).Str("escalation_id", esc.ID.String()).Msg("failed to send exhaustion alert")
	}
}
