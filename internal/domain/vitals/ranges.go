package vitals

// NormalRange is an inclusive reference interval for a vital at a given age.
type NormalRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// Age buckets in months, half-open [min, max). A value exactly at a bucket
// boundary belongs to the older bucket. No interpolation between buckets.
const (
	bucketInfant = iota
	bucketToddler
	bucketPreschool
	bucketSchool
	bucketAdolescent
)

var bucketNames = [...]string{"infant", "toddler", "preschool", "school", "adolescent"}

func bucketFor(ageMonths int) int {
	switch {
	case ageMonths < 12:
		return bucketInfant
	case ageMonths < 36:
		return bucketToddler
	case ageMonths < 72:
		return bucketPreschool
	case ageMonths < 144:
		return bucketSchool
	default:
		return bucketAdolescent
	}
}

// BucketName returns the clinical age-bucket label for an age in months.
func BucketName(ageMonths int) string {
	return bucketNames[bucketFor(ageMonths)]
}

// Per-bucket rows indexed infant..adolescent, from standard pediatric
// quick-reference tables.
var rangeTable = map[string][5]NormalRange{
	TypeHeartRate: {
		{100, 160, "bpm"}, {90, 150, "bpm"}, {80, 140, "bpm"}, {70, 120, "bpm"}, {60, 100, "bpm"},
	},
	TypeRespiratoryRate: {
		{30, 60, "breaths/min"}, {24, 40, "breaths/min"}, {22, 34, "breaths/min"}, {18, 30, "breaths/min"}, {12, 16, "breaths/min"},
	},
	TypeSystolicBP: {
		{70, 100, "mmHg"}, {80, 110, "mmHg"}, {80, 110, "mmHg"}, {85, 120, "mmHg"}, {95, 135, "mmHg"},
	},
	TypeOxygen: {
		{95, 100, "%"}, {95, 100, "%"}, {95, 100, "%"}, {95, 100, "%"}, {95, 100, "%"},
	},
	TypeTemperature: {
		{97.0, 100.3, "°F"}, {97.0, 100.3, "°F"}, {97.0, 100.3, "°F"}, {97.0, 100.3, "°F"}, {97.0, 100.3, "°F"},
	},
}

// RangeFor looks up the normal range for a vital type at the given age.
// The second return is false for unknown vital types.
func RangeFor(vitalType string, ageMonths int) (NormalRange, bool) {
	rows, ok := rangeTable[vitalType]
	if !ok {
		return NormalRange{}, false
	}
	return rows[bucketFor(ageMonths)], true
}

// InRange reports whether a value falls inside the normal range for the
// vital at the given age. Unknown vital types report true (no judgment).
func InRange(vitalType string, ageMonths int, value float64) bool {
	r, ok := RangeFor(vitalType, ageMonths)
	if !ok {
		return true
	}
	return value >= r.Min && value <= r.Max
}
