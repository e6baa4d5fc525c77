// Package volume computes per-set volume and target range compliance.
package volume

import (
	"math"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
)

// Fields are the raw canonical values of a set. Nil means the field was not supplied.
type Fields struct {
	Weight           *float64 `json:"weight,omitempty"`
	Reps             *int     `json:"reps,omitempty"`
	Time             *int     `json:"time,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	AdditionalWeight *float64 `json:"additional_weight,omitempty"`
	AssistanceWeight *float64 `json:"assistance_weight,omitempty"`
}

// Variant is one set shaped by its exercise input type.
type Variant interface {
	InputType() exercises.InputType
}

type WeightRepsSet struct {
	Weight float64
	Reps   int
}

type BodyweightRepsSet struct {
	Reps int
}

type WeightedBodyweightSet struct {
	AdditionalWeight float64
	Reps             int
}

type AssistedBodyweightSet struct {
	AssistanceWeight float64
	Reps             int
}

type DurationSet struct {
	Time int
}

type DurationWeightSet struct {
	Weight float64
	Time   int
}

type DistanceDurationSet struct {
	Distance float64
	Time     int
}

type WeightDistanceSet struct {
	Weight   float64
	Distance float64
}

func (WeightRepsSet) InputType() exercises.InputType         { return exercises.WeightReps }
func (BodyweightRepsSet) InputType() exercises.InputType     { return exercises.BodyweightReps }
func (WeightedBodyweightSet) InputType() exercises.InputType { return exercises.WeightedBodyweight }
func (AssistedBodyweightSet) InputType() exercises.InputType { return exercises.AssistedBodyweight }
func (DurationSet) InputType() exercises.InputType           { return exercises.Duration }
func (DurationWeightSet) InputType() exercises.InputType     { return exercises.DurationWeight }
func (DistanceDurationSet) InputType() exercises.InputType   { return exercises.DistanceDuration }
func (WeightDistanceSet) InputType() exercises.InputType     { return exercises.WeightDistance }

// NewVariant builds the variant for inputType from canonical fields.
// Missing fields count as zero; negative or non-finite values are rejected.
func NewVariant(inputType exercises.InputType, f Fields) (Variant, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	switch inputType {
	case exercises.BodyweightReps:
		return BodyweightRepsSet{Reps: intOr0(f.Reps)}, nil
	case exercises.WeightedBodyweight:
		return WeightedBodyweightSet{AdditionalWeight: floatOr0(f.AdditionalWeight), Reps: intOr0(f.Reps)}, nil
	case exercises.AssistedBodyweight:
		return AssistedBodyweightSet{AssistanceWeight: floatOr0(f.AssistanceWeight), Reps: intOr0(f.Reps)}, nil
	case exercises.Duration:
		return DurationSet{Time: intOr0(f.Time)}, nil
	case exercises.DurationWeight:
		return DurationWeightSet{Weight: floatOr0(f.Weight), Time: intOr0(f.Time)}, nil
	case exercises.DistanceDuration:
		return DistanceDurationSet{Distance: floatOr0(f.Distance), Time: intOr0(f.Time)}, nil
	case exercises.WeightDistance:
		return WeightDistanceSet{Weight: floatOr0(f.Weight), Distance: floatOr0(f.Distance)}, nil
	default:
		return WeightRepsSet{Weight: floatOr0(f.Weight), Reps: intOr0(f.Reps)}, nil
	}
}

// FieldsOf returns the persisted representation of v: only the fields its
// input type uses are set.
func FieldsOf(v Variant) Fields {
	switch s := v.(type) {
	case WeightRepsSet:
		return Fields{Weight: &s.Weight, Reps: &s.Reps}
	case BodyweightRepsSet:
		return Fields{Reps: &s.Reps}
	case WeightedBodyweightSet:
		return Fields{AdditionalWeight: &s.AdditionalWeight, Reps: &s.Reps}
	case AssistedBodyweightSet:
		return Fields{AssistanceWeight: &s.AssistanceWeight, Reps: &s.Reps}
	case DurationSet:
		return Fields{Time: &s.Time}
	case DurationWeightSet:
		return Fields{Weight: &s.Weight, Time: &s.Time}
	case DistanceDurationSet:
		return Fields{Distance: &s.Distance, Time: &s.Time}
	case WeightDistanceSet:
		return Fields{Weight: &s.Weight, Distance: &s.Distance}
	}
	return Fields{}
}

// Reps returns the repetitions of rep based variants, 0 otherwise.
func Reps(v Variant) int {
	switch s := v.(type) {
	case WeightRepsSet:
		return s.Reps
	case BodyweightRepsSet:
		return s.Reps
	case WeightedBodyweightSet:
		return s.Reps
	case AssistedBodyweightSet:
		return s.Reps
	}
	return 0
}

func (f Fields) validate() error {
	floats := map[string]*float64{
		"weight":            f.Weight,
		"distance":          f.Distance,
		"additional_weight": f.AdditionalWeight,
		"assistance_weight": f.AssistanceWeight,
	}
	for name, v := range floats {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return apperr.Validation("%s must be a finite number", name)
		}
		if *v < 0 {
			return apperr.Validation("%s must not be negative", name)
		}
	}
	if f.Reps != nil && *f.Reps < 0 {
		return apperr.Validation("reps must not be negative")
	}
	if f.Time != nil && *f.Time < 0 {
		return apperr.Validation("time must not be negative")
	}
	return nil
}

func floatOr0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOr0(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
