package volume

import (
	"math"

	"github.com/2beens/liftlog/internal/gymstats/exercises"
)

// DefaultBodyweightKg is used when the user has no weight measurement.
const DefaultBodyweightKg = 70.0

// Calculate returns the set volume: kg-equivalent for load based input
// types, seconds (or distance-minutes) for time based ones.
func Calculate(v Variant, bodyweightKg float64) float64 {
	switch s := v.(type) {
	case WeightRepsSet:
		return s.Weight * float64(s.Reps)
	case BodyweightRepsSet:
		return bodyweightKg * float64(s.Reps)
	case WeightedBodyweightSet:
		return (bodyweightKg + s.AdditionalWeight) * float64(s.Reps)
	case AssistedBodyweightSet:
		return math.Max(0, bodyweightKg-s.AssistanceWeight) * float64(s.Reps)
	case DurationSet:
		return float64(s.Time)
	case DurationWeightSet:
		return s.Weight * float64(s.Time) / 60
	case DistanceDurationSet:
		return s.Distance * float64(s.Time) / 60
	case WeightDistanceSet:
		return s.Weight * s.Distance
	}
	return 0
}

// WithinRange reports whether v satisfies every target range of ex that
// applies to its input type. A missing bound is open. Always false when
// the exercise has ranges disabled.
func WithinRange(ex *exercises.Exercise, v Variant) bool {
	if ex == nil || !ex.RangeEnabled {
		return false
	}

	f := FieldsOf(v)
	it := v.InputType()

	if it.UsesReps() && !inIntRange(intOr0(f.Reps), ex.MinReps, ex.MaxReps) {
		return false
	}
	if it.UsesTime() && !inIntRange(intOr0(f.Time), ex.MinDuration, ex.MaxDuration) {
		return false
	}
	if it.UsesDistance() && !inFloatRange(floatOr0(f.Distance), ex.MinDistance, ex.MaxDistance) {
		return false
	}

	return true
}

func inIntRange(v int, lo, hi *int) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func inFloatRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}
