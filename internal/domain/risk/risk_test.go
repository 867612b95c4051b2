package risk

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peditrack/peditrack/internal/domain/symptoms"
)

func f(v float64) *float64 { return &v }
func m(v int) *int         { return &v }

func points(scores ...int) []TrendPoint {
	now := time.Now()
	out := make([]TrendPoint, len(scores))
	for i, s := range scores {
		out[i] = TrendPoint{Score: s, Timestamp: now.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{"empty", nil, DirectionStable},
		{"single", []int{50}, DirectionStable},
		{"all equal", []int{40, 40, 40, 40}, DirectionStable},
		{"strictly increasing", []int{10, 20, 30, 40}, DirectionRising},
		{"strictly decreasing", []int{40, 30, 20, 10}, DirectionFalling},
		{"spike then return", []int{20, 80, 20}, DirectionFalling},
	}
	for _, tt := range tests {
		if got := Direction(points(tt.scores...), DefaultWindow); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestDirection_WindowLimitsHistory(t *testing.T) {
	// Old high scores outside the window must not drag the mean up.
	scores := []int{90, 90, 90}
	for i := 0; i < 12; i++ {
		scores = append(scores, 50)
	}
	if got := Direction(points(scores...), 12); got != DirectionStable {
		t.Errorf("points outside the window should be ignored, got %s", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, LevelLow}, {39, LevelLow}, {40, LevelModerate}, {59, LevelModerate},
		{60, LevelHigh}, {79, LevelHigh}, {80, LevelCritical}, {100, LevelCritical},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAggregate_BaseOnly(t *testing.T) {
	if got := Aggregate(nil, VitalSnapshot{}); got != 15 {
		t.Errorf("empty input scores the base, got %d", got)
	}
}

func TestAggregate_SymptomWeights(t *testing.T) {
	// Mild ordinary symptom: 15 + 1×5 = 20.
	got := Aggregate([]symptoms.Observation{{SymptomID: "cough", Severity: "mild"}}, VitalSnapshot{})
	if got != 20 {
		t.Errorf("mild cough: got %d, want 20", got)
	}
	// Severe red flag: 15 + 3×10 = 45.
	got = Aggregate([]symptoms.Observation{{SymptomID: "stiff_neck", Severity: "severe"}}, VitalSnapshot{})
	if got != 45 {
		t.Errorf("severe red flag: got %d, want 45", got)
	}
}

func TestAggregate_VitalBreaches(t *testing.T) {
	if got := Aggregate(nil, VitalSnapshot{TemperatureF: f(104.5)}); got != 40 {
		t.Errorf("very high fever: got %d, want 40", got)
	}
	if got := Aggregate(nil, VitalSnapshot{TemperatureF: f(102.0)}); got != 30 {
		t.Errorf("high fever: got %d, want 30", got)
	}
	if got := Aggregate(nil, VitalSnapshot{TemperatureF: f(100.8)}); got != 25 {
		t.Errorf("low fever: got %d, want 25", got)
	}
	if got := Aggregate(nil, VitalSnapshot{OxygenSat: f(91)}); got != 40 {
		t.Errorf("SpO2 <92: got %d, want 40", got)
	}
	if got := Aggregate(nil, VitalSnapshot{HeartRate: f(170), AgeMonths: m(48)}); got != 25 {
		t.Errorf("tachycardia for age: got %d, want 25", got)
	}
	// Without age the rate checks are skipped.
	if got := Aggregate(nil, VitalSnapshot{HeartRate: f(170)}); got != 15 {
		t.Errorf("heart rate without age: got %d, want 15", got)
	}
}

func TestAggregate_Clamps(t *testing.T) {
	obs := []symptoms.Observation{
		{SymptomID: "stiff_neck", Severity: "severe"},
		{SymptomID: "dehydration", Severity: "severe"},
		{SymptomID: "breathing_difficulty", Severity: "severe"},
	}
	got := Aggregate(obs, VitalSnapshot{TemperatureF: f(105), OxygenSat: f(88)})
	if got != 100 {
		t.Errorf("aggregate must clamp to 100, got %d", got)
	}
}

// ── Service ──

type mockRepo struct {
	mu     sync.Mutex
	byKid  map[uuid.UUID][]TrendPoint
	failed bool
}

func newMockRepo() *mockRepo { return &mockRepo{byKid: make(map[uuid.UUID][]TrendPoint)} }

func (m *mockRepo) AppendPoint(_ context.Context, p *TrendPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	m.byKid[p.ChildID] = append(m.byKid[p.ChildID], *p)
	return nil
}
func (m *mockRepo) ListPoints(_ context.Context, childID uuid.UUID, limit int) ([]TrendPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pts := m.byKid[childID]
	if len(pts) > limit {
		pts = pts[len(pts)-limit:]
	}
	out := make([]TrendPoint, len(pts))
	copy(out, pts)
	return out, nil
}
func (m *mockRepo) LatestPoint(_ context.Context, childID uuid.UUID) (*TrendPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pts := m.byKid[childID]
	if len(pts) == 0 {
		return nil, nil
	}
	p := pts[len(pts)-1]
	return &p, nil
}

type mockStarter struct {
	mu    sync.Mutex
	calls []int
}

func (m *mockStarter) StartForChild(_ context.Context, _ uuid.UUID, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, score)
	return nil
}

func (m *mockStarter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestService_AddPoint_StartsEscalationOnCross(t *testing.T) {
	starter := &mockStarter{}
	svc := NewService(newMockRepo(), starter, zerolog.Nop())
	childID := uuid.New()

	if err := svc.AddPoint(context.Background(), &TrendPoint{ChildID: childID, Score: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if starter.count() != 0 {
		t.Fatal("sub-critical score must not start an escalation")
	}

	if err := svc.AddPoint(context.Background(), &TrendPoint{ChildID: childID, Score: 85}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if starter.count() != 1 {
		t.Fatalf("crossing into critical starts exactly one escalation, got %d", starter.count())
	}

	// Staying critical does not restart.
	if err := svc.AddPoint(context.Background(), &TrendPoint{ChildID: childID, Score: 90}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if starter.count() != 1 {
		t.Fatalf("staying critical must not restart, got %d", starter.count())
	}
}

func TestService_AddPoint_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), nil, zerolog.Nop())
	if err := svc.AddPoint(context.Background(), &TrendPoint{Score: 50}); err == nil {
		t.Error("expected error for missing child_id")
	}
	if err := svc.AddPoint(context.Background(), &TrendPoint{ChildID: uuid.New(), Score: 140}); err == nil {
		t.Error("expected error for out-of-bounds score")
	}
}

func TestService_ConcurrentAppendsSameChild(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, zerolog.Nop())
	childID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = svc.AddPoint(context.Background(), &TrendPoint{ChildID: childID, Score: n})
		}(i)
	}
	wg.Wait()

	repo.mu.Lock()
	got := len(repo.byKid[childID])
	repo.mu.Unlock()
	if got != 50 {
		t.Errorf("expected 50 appended points with no lost updates, got %d", got)
	}
}

func TestService_Evaluate(t *testing.T) {
	svc := NewService(newMockRepo(), nil, zerolog.Nop())
	childID := uuid.New()
	p, level, err := svc.Evaluate(context.Background(), childID,
		[]symptoms.Observation{{SymptomID: "fever", Severity: "moderate"}},
		VitalSnapshot{TemperatureF: f(102.4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 15 + 2×5 + 15 = 40.
	if p.Score != 40 || level != LevelModerate {
		t.Errorf("got score %d level %s, want 40 moderate", p.Score, level)
	}
}
