package dosing

import (
	"errors"
	"fmt"
	"math"

	"github.com/peditrack/peditrack/internal/domain/child"
)

// ErrWeightMissing means no dose range can be computed; the caller must
// prompt for a weight rather than substitute a default.
var ErrWeightMissing = errors.New("weight missing: dose range requires the child's weight")

// ErrDrugAgeRestricted is a hard refusal, not a warning.
var ErrDrugAgeRestricted = errors.New("drug restricted at this age")

const (
	DrugAcetaminophen = "acetaminophen"
	DrugIbuprofen     = "ibuprofen"
)

const ibuprofenMinAgeMonths = 6

// Range is always presented as a min-max span with the hard daily cap
// alongside; a dose is never a single number and a response without the cap
// is a defect.
type Range struct {
	Drug           string  `json:"drug"`
	MinMg          int     `json:"min_mg"`
	MaxMg          int     `json:"max_mg"`
	Unit           string  `json:"unit"`
	FrequencyLabel string  `json:"frequency_label"`
	MaxDailyMg     int     `json:"max_daily_mg"`
	WeightKg       float64 `json:"weight_kg"`
}

type drugProfile struct {
	minMgPerKg    float64
	maxMgPerKg    float64
	dosesPerDay   int
	dailyCapMg    int
	frequency     string
	minAgeMonths  int
	ageGateActive bool
}

var profiles = map[string]drugProfile{
	DrugAcetaminophen: {
		minMgPerKg:  10,
		maxMgPerKg:  15,
		dosesPerDay: 5,
		dailyCapMg:  4000,
		frequency:   "every 4-6 hours",
	},
	DrugIbuprofen: {
		minMgPerKg:    5,
		maxMgPerKg:    10,
		dosesPerDay:   4,
		dailyCapMg:    2400,
		frequency:     "every 6-8 hours",
		minAgeMonths:  ibuprofenMinAgeMonths,
		ageGateActive: true,
	},
}

// DoseRange computes the weight-based dose span for a drug. Age-gated drugs
// refuse outright below their floor, and refuse when age is unknown: a gate
// that cannot be verified fails closed rather than assuming an older child.
func DoseRange(drug string, weightLbs float64, ageMonths *int) (Range, error) {
	p, ok := profiles[drug]
	if !ok {
		return Range{}, fmt.Errorf("unknown drug: %s", drug)
	}
	if p.ageGateActive {
		if ageMonths == nil {
			return Range{}, child.ErrAgeUnknown
		}
		if *ageMonths < p.minAgeMonths {
			return Range{}, fmt.Errorf("%s under %d months: %w", drug, p.minAgeMonths, ErrDrugAgeRestricted)
		}
	}
	if weightLbs <= 0 {
		return Range{}, ErrWeightMissing
	}

	kg := child.ToKg(weightLbs)
	maxMg := int(math.Round(p.maxMgPerKg * kg))
	daily := maxMg * p.dosesPerDay
	if daily > p.dailyCapMg {
		daily = p.dailyCapMg
	}
	return Range{
		Drug:           drug,
		MinMg:          int(math.Round(p.minMgPerKg * kg)),
		MaxMg:          maxMg,
		Unit:           "mg",
		FrequencyLabel: p.frequency,
		MaxDailyMg:     daily,
		WeightKg:       kg,
	}, nil
}
