package risk

import (
	"time"

	"github.com/google/uuid"
)

// TrendPoint maps to the risk_trend_points table. The list per child is
// append-only and used for direction, not storage guarantees.
type TrendPoint struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChildID   uuid.UUID `db:"child_id" json:"child_id"`
	Score     int       `db:"score" json:"score"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Risk level bands over the 0-100 aggregate.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// CriticalThreshold is where the escalation cascade engages.
const CriticalThreshold = 80

// LevelFor maps an aggregate score onto its band.
func LevelFor(score int) string {
	switch {
	case score >= CriticalThreshold:
		return LevelCritical
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Trend directions.
const (
	DirectionRising  = "rising"
	DirectionFalling = "falling"
	DirectionStable  = "stable"
)

// DefaultWindow is the trailing-window size for direction.
const DefaultWindow = 12

// Direction compares the most recent point to the arithmetic mean of the
// trailing window (window includes the last point). Ties favor stable.
// Fewer than two points is always stable.
func Direction(points []TrendPoint, window int) string {
	if len(points) < 2 {
		return DirectionStable
	}
	if window <= 0 {
		window = DefaultWindow
	}
	start := len(points) - window
	if start < 0 {
		start = 0
	}
	trailing := points[start:]
	sum := 0
	for _, p := range trailing {
		sum += p.Score
	}
	mean := float64(sum) / float64(len(trailing))
	last := float64(points[len(points)-1].Score)
	switch {
	case last > mean:
		return DirectionRising
	case last < mean:
		return DirectionFalling
	default:
		return DirectionStable
	}
}
