package triage

import (
	"reflect"
	"testing"
)

func f(v float64) *float64 { return &v }
func m(v int) *int         { return &v }

func TestEvaluate_InfantFever(t *testing.T) {
	// Stands alone: no symptoms at all, still top urgency.
	got := Evaluate(nil, f(100.5), m(2))
	if got.Level != LevelCall911 {
		t.Errorf("infant fever: got %s, want %s", got.Level, LevelCall911)
	}
	// At exactly the threshold.
	if got := Evaluate(nil, f(100.4), m(0)); got.Level != LevelCall911 {
		t.Errorf("threshold fever at 0 months: got %s", got.Level)
	}
	// Three months is no longer an infant for this rule.
	if got := Evaluate(nil, f(100.5), m(3)); got.Level == LevelCall911 {
		t.Errorf("3-month-old with low fever should not trigger the infant rule")
	}
}

func TestEvaluate_UnknownAgeSkipsInfantRule(t *testing.T) {
	got := Evaluate(nil, f(100.5), nil)
	if got.Level != LevelHomeCare {
		t.Errorf("unknown age must skip age-gated rules, got %s", got.Level)
	}
}

func TestEvaluate_Unresponsive(t *testing.T) {
	got := Evaluate([]Selected{{SymptomID: "unresponsive", Severity: "mild"}}, nil, m(48))
	if got.Level != LevelCall911 {
		t.Errorf("unresponsive at any severity: got %s", got.Level)
	}
}

func TestEvaluate_BreathingClassOverride(t *testing.T) {
	got := Evaluate([]Selected{{SymptomID: "wheezing", Severity: "moderate"}}, f(101), m(24))
	if got.Level != LevelCall911 {
		t.Errorf("non-mild breathing symptom: got %s, want %s", got.Level, LevelCall911)
	}
	// Mild breathing symptoms do not trigger the top tier.
	got = Evaluate([]Selected{{SymptomID: "wheezing", Severity: "mild"}}, nil, m(24))
	if got.Level == LevelCall911 {
		t.Errorf("mild wheezing should not be call_911, got %s", got.Level)
	}
}

func TestEvaluate_RedFlagPlusSevere(t *testing.T) {
	got := Evaluate([]Selected{
		{SymptomID: "stiff_neck", Severity: "mild"},
		{SymptomID: "vomiting", Severity: "severe"},
	}, nil, m(60))
	if got.Level != LevelCall911 {
		t.Errorf("red flag + severe symptom: got %s", got.Level)
	}
}

func TestEvaluate_RedFlagAloneIsCallNow(t *testing.T) {
	got := Evaluate([]Selected{{SymptomID: "stiff_neck", Severity: "mild"}}, nil, m(60))
	if got.Level != LevelCallNow {
		t.Errorf("red flag at mild severity: got %s, want %s", got.Level, LevelCallNow)
	}
}

func TestEvaluate_RedFlagSevereNeverHomeCare(t *testing.T) {
	for _, id := range []string{"stiff_neck", "dehydration", "blood_in_stool", "petechiae", "seizure"} {
		got := Evaluate([]Selected{{SymptomID: id, Severity: "severe"}}, nil, m(60))
		if got.Level == LevelHomeCare {
			t.Errorf("severe red flag %s must never be home_care", id)
		}
	}
}

func TestEvaluate_FeverTiers(t *testing.T) {
	if got := Evaluate(nil, f(104.2), m(60)); got.Level != LevelCallNow {
		t.Errorf("104.2°F at 5 years: got %s, want %s", got.Level, LevelCallNow)
	}
	if got := Evaluate(nil, f(102.5), m(60)); got.Level != LevelCall24hr {
		t.Errorf("102.5°F: got %s, want %s", got.Level, LevelCall24hr)
	}
	if got := Evaluate(nil, f(99.5), m(60)); got.Level != LevelHomeCare {
		t.Errorf("99.5°F: got %s, want %s", got.Level, LevelHomeCare)
	}
}

func TestEvaluate_SevereSymptomIsCall24hr(t *testing.T) {
	got := Evaluate([]Selected{{SymptomID: "cough", Severity: "severe"}}, nil, m(48))
	if got.Level != LevelCall24hr {
		t.Errorf("severe non-red-flag symptom: got %s, want %s", got.Level, LevelCall24hr)
	}
}

func TestEvaluate_MildCoughHomeCare(t *testing.T) {
	got := Evaluate([]Selected{{SymptomID: "cough", Severity: "mild"}}, f(99.5), m(48))
	if got.Level != LevelHomeCare {
		t.Errorf("mild cough, low fever: got %s, want %s", got.Level, LevelHomeCare)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := []Selected{{SymptomID: "rash", Severity: "moderate"}, {SymptomID: "fever", Severity: "mild"}}
	a := Evaluate(in, f(101.2), m(30))
	b := Evaluate(in, f(101.2), m(30))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs must yield identical results:\n%+v\n%+v", a, b)
	}
}

func TestEvaluate_AttachesStepsAndReasons(t *testing.T) {
	got := Evaluate(nil, nil, nil)
	if len(got.Reasons) == 0 || len(got.NextSteps) == 0 {
		t.Errorf("every result carries reasons and next steps: %+v", got)
	}
}

func TestWarningFor(t *testing.T) {
	if _, ok := WarningFor("chest"); !ok {
		t.Error("expected chest warning")
	}
	if _, ok := WarningFor("tail"); ok {
		t.Error("unexpected warning for unknown region")
	}
}
