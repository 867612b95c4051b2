package pews

// Input is the transient per-assessment observation set. Numeric fields are
// pointers so an absent observation is distinct from a zero reading; absent
// fields simply contribute nothing.
type Input struct {
	AgeMonths *int `json:"age_months,omitempty"`

	// Cardiovascular signals.
	HeartRate          *float64 `json:"heart_rate,omitempty"`
	SystolicBP         *float64 `json:"systolic_bp,omitempty"`
	CapillaryRefillSec *float64 `json:"capillary_refill_sec,omitempty"`
	SkinColor          string   `json:"skin_color,omitempty"` // normal|pale|mottled|grey|blue

	// Respiratory signals.
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty"`
	OxygenSat       *float64 `json:"oxygen_sat,omitempty"`
	OxygenRequired  bool     `json:"oxygen_required,omitempty"`
	WorkOfBreathing string   `json:"work_of_breathing,omitempty"` // normal|mild|moderate|severe
	Grunting        bool     `json:"grunting,omitempty"`
	Stridor         bool     `json:"stridor,omitempty"`
	Retractions     bool     `json:"retractions,omitempty"`

	// Behavioral signals.
	AVPU          string `json:"avpu,omitempty"`     // alert|voice|pain|unresponsive
	Behavior      string `json:"behavior,omitempty"` // normal|irritable|lethargic
	ParentConcern bool   `json:"parent_concern,omitempty"`
}

// Score holds the three sub-scores, each 0-3, and their sum.
type Score struct {
	Cardiovascular int `json:"cardiovascular"`
	Respiratory    int `json:"respiratory"`
	Behavioral     int `json:"behavioral"`
	Total          int `json:"total"`
}

func atLeast(score, floor int) int {
	if floor > score {
		return floor
	}
	return score
}

func cap3(score int) int {
	if score > 3 {
		return 3
	}
	return score
}

// Compute derives the three sub-scores. Within each sub-score, signals
// combine by running maximum: a single severe sign dominates rather than
// accumulating.
func Compute(in Input) Score {
	s := Score{
		Cardiovascular: cardiovascular(in),
		Respiratory:    respiratory(in),
		Behavioral:     behavioral(in),
	}
	s.Total = s.Cardiovascular + s.Respiratory + s.Behavioral
	return s
}

func cardiovascular(in Input) int {
	score := 0
	switch in.SkinColor {
	case "pale":
		score = 1
	case "mottled":
		score = 2
	case "grey", "blue":
		score = 3
	}
	if in.CapillaryRefillSec != nil {
		switch refill := *in.CapillaryRefillSec; {
		case refill > 3:
			score = atLeast(score, 2)
		case refill >= 2:
			score = atLeast(score, 1)
		}
	}
	return cap3(score)
}

func respiratory(in Input) int {
	score := 0
	switch in.WorkOfBreathing {
	case "mild":
		score = 1
	case "moderate":
		score = 2
	case "severe":
		score = 3
	}
	// Grunting alone is a severe sign; it overrides a lower work-of-breathing
	// reading.
	if in.Grunting {
		score = atLeast(score, 3)
	}
	if in.Stridor {
		score = atLeast(score, 2)
	}
	if in.Retractions {
		score = atLeast(score, 2)
	}
	if in.OxygenRequired {
		score = atLeast(score, 2)
	}
	if in.OxygenSat != nil {
		switch sat := *in.OxygenSat; {
		case sat < 92:
			score = atLeast(score, 3)
		case sat < 95:
			score = atLeast(score, 2)
		}
	}
	return cap3(score)
}

func behavioral(in Input) int {
	score := 0
	switch in.AVPU {
	case "voice":
		score = 1
	case "pain":
		score = 2
	case "unresponsive":
		score = 3
	}
	switch in.Behavior {
	case "irritable":
		score = atLeast(score, 1)
	case "lethargic":
		score = atLeast(score, 2)
	}
	// Parental intuition is an independent clinical input, not advisory text.
	if in.ParentConcern {
		score = atLeast(score, 1)
	}
	return cap3(score)
}
