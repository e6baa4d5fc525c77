package exercises

import (
	"strings"
	"time"
)

// InputType selects which set fields are meaningful for an exercise,
// the volume formula and the applicable target ranges.
type InputType string

const (
	WeightReps         InputType = "weight_reps"
	BodyweightReps     InputType = "bodyweight_reps"
	WeightedBodyweight InputType = "weighted_bodyweight"
	AssistedBodyweight InputType = "assisted_bodyweight"
	Duration           InputType = "duration"
	DurationWeight     InputType = "duration_weight"
	DistanceDuration   InputType = "distance_duration"
	WeightDistance     InputType = "weight_distance"
)

var AllInputTypes = []InputType{
	WeightReps,
	BodyweightReps,
	WeightedBodyweight,
	AssistedBodyweight,
	Duration,
	DurationWeight,
	DistanceDuration,
	WeightDistance,
}

// ParseInputType never fails: unknown values are treated as weight_reps.
func ParseInputType(s string) InputType {
	it := InputType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllInputTypes {
		if it == known {
			return it
		}
	}
	return WeightReps
}

func (t InputType) UsesReps() bool {
	switch t {
	case WeightReps, BodyweightReps, WeightedBodyweight, AssistedBodyweight:
		return true
	}
	return false
}

func (t InputType) UsesTime() bool {
	switch t {
	case Duration, DurationWeight, DistanceDuration:
		return true
	}
	return false
}

func (t InputType) UsesDistance() bool {
	return t == DistanceDuration || t == WeightDistance
}

func (t InputType) UsesWeight() bool {
	switch t {
	case WeightReps, DurationWeight, WeightDistance:
		return true
	}
	return false
}

// Fields lists the set fields this input type requires, in display order.
func (t InputType) Fields() []string {
	switch t {
	case BodyweightReps:
		return []string{"reps"}
	case WeightedBodyweight:
		return []string{"additional_weight", "reps"}
	case AssistedBodyweight:
		return []string{"assistance_weight", "reps"}
	case Duration:
		return []string{"time"}
	case DurationWeight:
		return []string{"weight", "time"}
	case DistanceDuration:
		return []string{"distance", "time"}
	case WeightDistance:
		return []string{"weight", "distance"}
	default:
		return []string{"weight", "reps"}
	}
}

type Exercise struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Equipment string    `json:"equipment,omitempty"`
	Muscles   []string  `json:"muscles"`
	InputType InputType `json:"input_type"`

	MinReps     *int     `json:"min_reps,omitempty"`
	MaxReps     *int     `json:"max_reps,omitempty"`
	MinDuration *int     `json:"min_duration,omitempty"`
	MaxDuration *int     `json:"max_duration,omitempty"`
	MinDistance *float64 `json:"min_distance,omitempty"`
	MaxDistance *float64 `json:"max_distance,omitempty"`
	MinWeight   *float64 `json:"min_weight,omitempty"`
	MaxWeight   *float64 `json:"max_weight,omitempty"`

	RangeEnabled bool      `json:"range_enabled"`
	RestSeconds  int       `json:"rest_seconds"`
	UserCreated  bool      `json:"user_created"`
	CreatedBy    *int      `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasMuscle reports whether the exercise is tagged with muscle (case-insensitive).
func (e *Exercise) HasMuscle(muscle string) bool {
	for _, m := range e.Muscles {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	return false
}

// VisibleTo reports whether userID may see the exercise in the catalog.
func (e *Exercise) VisibleTo(userID int) bool {
	if !e.UserCreated {
		return true
	}
	return e.CreatedBy != nil && *e.CreatedBy == userID
}
