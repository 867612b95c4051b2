package triage

import (
	"fmt"

	"github.com/peditrack/peditrack/internal/domain/symptoms"
)

const (
	LevelHomeCare = "home_care"
	LevelCall24hr = "call_24hr"
	LevelCallNow  = "call_now"
	LevelCall911  = "call_911"
)

// Result is recomputed whenever inputs change and always replaced wholesale,
// never mutated in place.
type Result struct {
	Level     string   `json:"level"`
	Reasons   []string `json:"reasons"`
	NextSteps []string `json:"next_steps"`
}

// Selected is one chosen symptom with its stated severity.
type Selected struct {
	SymptomID string `json:"symptom_id"`
	Severity  string `json:"severity"`
}

const infantFeverTempF = 100.4

var breathingClass = map[string]bool{
	"breathing_difficulty": true, "rapid_breathing": true, "wheezing": true,
}

var nextSteps = map[string][]string{
	LevelCall911: {
		"Call 911 immediately",
		"Do not drive the child yourself unless instructed by the dispatcher",
		"Stay with the child and follow dispatcher instructions",
	},
	LevelCallNow: {
		"Call your pediatrician or nurse line now",
		"If you cannot reach them within 30 minutes, go to urgent care",
		"Keep monitoring temperature and breathing",
	},
	LevelCall24hr: {
		"Schedule an appointment within 24 hours",
		"Track symptoms and note any changes",
		"Call sooner if new symptoms appear or existing ones worsen",
	},
	LevelHomeCare: {
		"Continue care at home with rest and fluids",
		"Re-check symptoms every few hours",
		"Escalate if symptoms worsen or new ones appear",
	},
}

// facts is the precomputed view of one evaluation's inputs. Each cascade
// rule reads facts and returns its fired reasons.
type facts struct {
	selected     []Selected
	temperatureF *float64
	ageMonths    *int

	unresponsive     bool
	breathingNonMild []Selected
	redFlags         []Selected
	anySevere        bool
}

func gatherFacts(selected []Selected, temperatureF *float64, ageMonths *int) facts {
	f := facts{selected: selected, temperatureF: temperatureF, ageMonths: ageMonths}
	for _, s := range selected {
		if s.SymptomID == "unresponsive" {
			f.unresponsive = true
		}
		if breathingClass[s.SymptomID] && s.Severity != symptoms.SeverityMild {
			f.breathingNonMild = append(f.breathingNonMild, s)
		}
		if def, ok := symptoms.DefinitionByID(s.SymptomID); ok && def.RedFlag {
			f.redFlags = append(f.redFlags, s)
		}
		if s.Severity == symptoms.SeveritySevere {
			f.anySevere = true
		}
	}
	return f
}

// rule pairs a triage level with a predicate over facts. A non-empty reason
// list means the rule fired. Rules evaluate top to bottom, first match wins;
// the ordering is the tie-break policy.
type rule struct {
	level string
	eval  func(f facts) []string
}

var cascade = []rule{
	{LevelCall911, func(f facts) []string {
		var reasons []string
		if f.unresponsive {
			reasons = append(reasons, "Child is unresponsive or very difficult to wake")
		}
		for _, s := range f.breathingNonMild {
			reasons = append(reasons, fmt.Sprintf("Breathing problem (%s) at %s severity", s.SymptomID, s.Severity))
		}
		if f.anySevere && len(f.redFlags) > 0 {
			reasons = append(reasons, "Red-flag symptom present alongside a severe symptom")
		}
		return reasons
	}},
	// Infant-fever rule. Stands alone: an infant under 3 months with a fever
	// of 100.4°F or more never falls through to a lower tier. Skipped when
	// age is unknown.
	{LevelCall911, func(f facts) []string {
		if f.ageMonths == nil || f.temperatureF == nil {
			return nil
		}
		if *f.ageMonths < 3 && *f.temperatureF >= infantFeverTempF {
			return []string{fmt.Sprintf("Fever of %.1f°F in an infant under 3 months", *f.temperatureF)}
		}
		return nil
	}},
	{LevelCallNow, func(f facts) []string {
		var reasons []string
		if f.temperatureF != nil && *f.temperatureF >= 104 {
			reasons = append(reasons, fmt.Sprintf("Very high fever (%.1f°F)", *f.temperatureF))
		}
		for _, s := range f.redFlags {
			reasons = append(reasons, fmt.Sprintf("Red-flag symptom: %s", s.SymptomID))
		}
		return reasons
	}},
	{LevelCall24hr, func(f facts) []string {
		var reasons []string
		if f.anySevere {
			reasons = append(reasons, "A reported symptom is severe")
		}
		if f.temperatureF != nil && *f.temperatureF >= 102 {
			reasons = append(reasons, fmt.Sprintf("High fever (%.1f°F)", *f.temperatureF))
		}
		return reasons
	}},
}

// Evaluate runs the ordered cascade over the selected symptoms, reported
// temperature, and age. Pure and deterministic: identical inputs always
// yield an identical result, so it is safe to re-run on every field edit.
// Nil temperature or age simply skips the rules that need them.
func Evaluate(selected []Selected, temperatureF *float64, ageMonths *int) Result {
	f := gatherFacts(selected, temperatureF, ageMonths)
	for _, r := range cascade {
		if reasons := r.eval(f); len(reasons) > 0 {
			return Result{Level: r.level, Reasons: reasons, NextSteps: nextSteps[r.level]}
		}
	}
	return Result{
		Level:     LevelHomeCare,
		Reasons:   []string{"No urgent signs in the reported symptoms"},
		NextSteps: nextSteps[LevelHomeCare],
	}
}
