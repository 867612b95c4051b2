package pews

import "testing"

func f(v float64) *float64 { return &v }

func TestCompute_Empty(t *testing.T) {
	s := Compute(Input{})
	if s.Total != 0 {
		t.Errorf("empty input should score 0, got %+v", s)
	}
}

func TestCardiovascular_SkinColor(t *testing.T) {
	tests := []struct {
		skin string
		want int
	}{
		{"normal", 0}, {"pale", 1}, {"mottled", 2}, {"grey", 3}, {"blue", 3},
	}
	for _, tt := range tests {
		if got := Compute(Input{SkinColor: tt.skin}).Cardiovascular; got != tt.want {
			t.Errorf("skin %q: got %d, want %d", tt.skin, got, tt.want)
		}
	}
}

func TestCardiovascular_CapillaryRefill(t *testing.T) {
	tests := []struct {
		refill float64
		want   int
	}{
		{1.5, 0}, {2, 1}, {3, 1}, {3.5, 2},
	}
	for _, tt := range tests {
		if got := Compute(Input{CapillaryRefillSec: f(tt.refill)}).Cardiovascular; got != tt.want {
			t.Errorf("refill %.1fs: got %d, want %d", tt.refill, got, tt.want)
		}
	}
}

func TestCardiovascular_MaxNotSum(t *testing.T) {
	// Mottled skin (2) with delayed refill (2) stays at 2: signals combine by
	// maximum, a single severe sign dominates.
	s := Compute(Input{SkinColor: "mottled", CapillaryRefillSec: f(4)})
	if s.Cardiovascular != 2 {
		t.Errorf("expected max combination 2, got %d", s.Cardiovascular)
	}
}

func TestCardiovascular_MonotonicInSkinColor(t *testing.T) {
	order := []string{"normal", "pale", "mottled", "grey"}
	for _, refill := range []*float64{nil, f(2.5), f(4)} {
		prev := -1
		for _, skin := range order {
			got := Compute(Input{SkinColor: skin, CapillaryRefillSec: refill}).Cardiovascular
			if got < prev {
				t.Errorf("cardiovascular not monotonic at skin %q (refill %v): %d < %d", skin, refill, got, prev)
			}
			prev = got
		}
	}
}

func TestRespiratory_GruntingOverrides(t *testing.T) {
	s := Compute(Input{WorkOfBreathing: "mild", Grunting: true})
	if s.Respiratory != 3 {
		t.Errorf("grunting forces at least 3, got %d", s.Respiratory)
	}
}

func TestRespiratory_StridorRetractions(t *testing.T) {
	if got := Compute(Input{Stridor: true}).Respiratory; got != 2 {
		t.Errorf("stridor forces at least 2, got %d", got)
	}
	if got := Compute(Input{Retractions: true}).Respiratory; got != 2 {
		t.Errorf("retractions force at least 2, got %d", got)
	}
}

func TestRespiratory_OxygenSat(t *testing.T) {
	if got := Compute(Input{OxygenSat: f(91)}).Respiratory; got != 3 {
		t.Errorf("SpO2 <92 forces 3, got %d", got)
	}
	if got := Compute(Input{OxygenSat: f(94)}).Respiratory; got != 2 {
		t.Errorf("SpO2 <95 forces 2, got %d", got)
	}
	if got := Compute(Input{OxygenSat: f(97)}).Respiratory; got != 0 {
		t.Errorf("normal SpO2 contributes nothing, got %d", got)
	}
}

func TestRespiratory_OxygenRequirement(t *testing.T) {
	if got := Compute(Input{OxygenRequired: true}).Respiratory; got != 2 {
		t.Errorf("supplemental oxygen forces at least 2, got %d", got)
	}
}

func TestBehavioral(t *testing.T) {
	tests := []struct {
		in   Input
		want int
	}{
		{Input{AVPU: "alert"}, 0},
		{Input{AVPU: "voice"}, 1},
		{Input{AVPU: "pain"}, 2},
		{Input{AVPU: "unresponsive"}, 3},
		{Input{Behavior: "irritable"}, 1},
		{Input{Behavior: "lethargic"}, 2},
		{Input{ParentConcern: true}, 1},
		{Input{AVPU: "pain", Behavior: "irritable", ParentConcern: true}, 2},
	}
	for _, tt := range tests {
		if got := Compute(tt.in).Behavioral; got != tt.want {
			t.Errorf("%+v: got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompute_TotalBounds(t *testing.T) {
	worst := Compute(Input{
		SkinColor:          "blue",
		CapillaryRefillSec: f(5),
		WorkOfBreathing:    "severe",
		Grunting:           true,
		Stridor:            true,
		Retractions:        true,
		OxygenSat:          f(85),
		OxygenRequired:     true,
		AVPU:               "unresponsive",
		Behavior:           "lethargic",
		ParentConcern:      true,
	})
	if worst.Total != 9 {
		t.Errorf("worst case total should be 9, got %+v", worst)
	}
	if worst.Cardiovascular != 3 || worst.Respiratory != 3 || worst.Behavioral != 3 {
		t.Errorf("each sub-score caps at 3, got %+v", worst)
	}
}

func TestService_Preview_Validation(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Preview(Input{SkinColor: "plaid"}); err == nil {
		t.Error("expected error for invalid skin color")
	}
	if _, err := svc.Preview(Input{OxygenSat: f(140)}); err == nil {
		t.Error("expected error for impossible oxygen saturation")
	}
	score, err := svc.Preview(Input{AVPU: "voice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Behavioral != 1 {
		t.Errorf("expected behavioral 1, got %+v", score)
	}
}
