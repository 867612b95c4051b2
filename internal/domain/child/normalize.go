package child

import (
	"errors"
	"time"
)

// ErrAgeUnknown is returned when a child's age cannot be established. Callers
// must skip age-gated rules rather than substitute a guessed age.
var ErrAgeUnknown = errors.New("age unknown: date of birth missing or in the future")

const lbsPerKg = 2.205

// AgeInMonths converts a date of birth to whole months as of the given time,
// clamped to >= 0. A zero or future date of birth fails closed with
// ErrAgeUnknown.
func AgeInMonths(dateOfBirth time.Time, asOf time.Time) (int, error) {
	if dateOfBirth.IsZero() || dateOfBirth.After(asOf) {
		return 0, ErrAgeUnknown
	}

	months := (asOf.Year()-dateOfBirth.Year())*12 + int(asOf.Month()) - int(dateOfBirth.Month())
	if asOf.Day() < dateOfBirth.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, nil
}

// AgeInYears is the whole-year age derived from AgeInMonths.
func AgeInYears(dateOfBirth time.Time, asOf time.Time) (int, error) {
	months, err := AgeInMonths(dateOfBirth, asOf)
	if err != nil {
		return 0, err
	}
	return months / 12, nil
}

// ToKg converts a weight in pounds to kilograms.
func ToKg(weightLbs float64) float64 {
	return weightLbs / lbsPerKg
}

// AgeMonthsOf resolves a child's current age in months, failing closed when
// the profile has no usable date of birth.
func AgeMonthsOf(c *Child, asOf time.Time) (int, error) {
	if c == nil || c.DateOfBirth == nil {
		return 0, ErrAgeUnknown
	}
	return AgeInMonths(*c.DateOfBirth, asOf)
}
