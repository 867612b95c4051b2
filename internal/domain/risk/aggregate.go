package risk

import (
	"github.com/peditrack/peditrack/internal/domain/symptoms"
	"github.com/peditrack/peditrack/internal/domain/vitals"
)

// VitalSnapshot carries the vitals entering the aggregate. Nil fields are
// absent readings and contribute nothing. AgeMonths enables the heart- and
// respiratory-rate range checks; without it they are skipped rather than
// judged against a guessed bucket.
type VitalSnapshot struct {
	TemperatureF    *float64 `json:"temperature_f,omitempty"`
	OxygenSat       *float64 `json:"oxygen_sat,omitempty"`
	HeartRate       *float64 `json:"heart_rate,omitempty"`
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty"`
	AgeMonths       *int     `json:"age_months,omitempty"`
}

const aggregateBase = 15

var severityFactor = map[string]int{
	symptoms.SeverityMild:     1,
	symptoms.SeverityModerate: 2,
	symptoms.SeveritySevere:   3,
}

// rangeChecker is swapped in tests; production uses the vitals range table.
type rangeChecker func(vitalType string, ageMonths int, value float64) bool

func inVitalRange(vitalType string, ageMonths int, value float64) bool {
	return vitals.InRange(vitalType, ageMonths, value)
}

// Aggregate computes the additive 0-100 risk score: base 15, per-symptom
// severity-weighted contributions, vital-threshold breaches, clamped to
// [0,100]. This is a UI-facing aggregate, deliberately distinct from the
// 0-9 clinical early-warning total.
func Aggregate(obs []symptoms.Observation, v VitalSnapshot) int {
	return aggregate(obs, v, inVitalRange)
}

func aggregate(obs []symptoms.Observation, v VitalSnapshot, inRange rangeChecker) int {
	score := aggregateBase

	for _, o := range obs {
		weight := 5
		if def, ok := symptoms.DefinitionByID(o.SymptomID); ok && def.RedFlag {
			weight = 10
		}
		score += severityFactor[o.Severity] * weight
	}

	if v.TemperatureF != nil {
		switch temp := *v.TemperatureF; {
		case temp >= 104:
			score += 25
		case temp >= 102:
			score += 15
		case temp > 100.4:
			score += 10
		}
	}
	if v.OxygenSat != nil {
		switch sat := *v.OxygenSat; {
		case sat < 92:
			score += 25
		case sat < 95:
			score += 15
		}
	}
	if v.AgeMonths != nil {
		if v.HeartRate != nil && !inRange("heart_rate", *v.AgeMonths, *v.HeartRate) {
			score += 10
		}
		if v.RespiratoryRate != nil && !inRange("respiratory_rate", *v.AgeMonths, *v.RespiratoryRate) {
			score += 10
		}
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
