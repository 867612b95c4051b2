package dosing

import (
	"errors"
	"testing"

	"github.com/peditrack/peditrack/internal/domain/child"
)

func m(v int) *int { return &v }

func TestDoseRange_Acetaminophen(t *testing.T) {
	r, err := DoseRange(DrugAcetaminophen, 20, m(24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MinMg != 91 || r.MaxMg != 136 {
		t.Errorf("20 lbs: got %d-%d mg, want 91-136 mg", r.MinMg, r.MaxMg)
	}
	if r.MaxDailyMg != 136*5 {
		t.Errorf("daily cap: got %d, want %d", r.MaxDailyMg, 136*5)
	}
	if r.FrequencyLabel == "" {
		t.Error("frequency label must always be present")
	}
}

func TestDoseRange_Acetaminophen_UnknownAgeAllowed(t *testing.T) {
	// Acetaminophen carries no age gate, so unknown age does not refuse.
	if _, err := DoseRange(DrugAcetaminophen, 20, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDoseRange_Acetaminophen_DailyCapClamps(t *testing.T) {
	r, err := DoseRange(DrugAcetaminophen, 140, m(170))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MaxDailyMg != 4000 {
		t.Errorf("heavy adolescent: daily cap should clamp to 4000, got %d", r.MaxDailyMg)
	}
}

func TestDoseRange_Ibuprofen(t *testing.T) {
	r, err := DoseRange(DrugIbuprofen, 44.1, m(48))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 44.1 lbs = 20 kg.
	if r.MinMg != 100 || r.MaxMg != 200 {
		t.Errorf("20 kg: got %d-%d mg, want 100-200 mg", r.MinMg, r.MaxMg)
	}
	if r.MaxDailyMg != 800 {
		t.Errorf("daily cap: got %d, want 800", r.MaxDailyMg)
	}
}

func TestDoseRange_Ibuprofen_AgeGate(t *testing.T) {
	for _, age := range []int{0, 3, 5} {
		_, err := DoseRange(DrugIbuprofen, 15, m(age))
		if !errors.Is(err, ErrDrugAgeRestricted) {
			t.Errorf("age %d months: expected ErrDrugAgeRestricted, got %v", age, err)
		}
	}
	if _, err := DoseRange(DrugIbuprofen, 15, m(6)); err != nil {
		t.Errorf("6 months is at the gate and allowed, got %v", err)
	}
}

func TestDoseRange_Ibuprofen_UnknownAgeRefuses(t *testing.T) {
	_, err := DoseRange(DrugIbuprofen, 20, nil)
	if !errors.Is(err, child.ErrAgeUnknown) {
		t.Errorf("expected ErrAgeUnknown, got %v", err)
	}
}

func TestDoseRange_WeightMissing(t *testing.T) {
	_, err := DoseRange(DrugAcetaminophen, 0, m(24))
	if !errors.Is(err, ErrWeightMissing) {
		t.Errorf("expected ErrWeightMissing, got %v", err)
	}
}

func TestDoseRange_UnknownDrug(t *testing.T) {
	if _, err := DoseRange("aspirin", 30, m(60)); err == nil {
		t.Error("expected error for unknown drug")
	}
}
