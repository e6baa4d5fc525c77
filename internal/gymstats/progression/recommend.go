// Package progression reads a user's set history for an exercise and
// proposes what to do next.
package progression

import (
	"math"

	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/volume"
	"github.com/2beens/liftlog/internal/units"
)

const (
	weightStepKg  = 2.5
	weightStepLbs = 5.0

	timeStepSeconds = 5
	distanceStep    = 0.1
)

type Reason string

const (
	ReasonIncreaseLoad Reason = "increase_load"
	ReasonDecreaseLoad Reason = "decrease_load"
	ReasonProgress     Reason = "progress"
	ReasonHold         Reason = "hold"
)

// Recommendation holds proposed set values in the user's display units.
// Recommended names the fields that changed from the previous set.
type Recommendation struct {
	ExerciseID  int                 `json:"exercise_id"`
	InputType   exercises.InputType `json:"input_type"`
	Reason      Reason              `json:"reason"`
	Recommended []string            `json:"recommended"`
	volume.Fields
	WeightUnit   units.WeightUnit   `json:"weight_unit"`
	DistanceUnit units.DistanceUnit `json:"distance_unit"`
}

// WeightStep is the load increment shown to a user of unit u.
func WeightStep(u units.WeightUnit) float64 {
	if u == units.Lbs {
		return weightStepLbs
	}
	return weightStepKg
}

// Recommend proposes the next set given the previous one, both in display
// units. ok is false when the exercise has no usable target range.
func Recommend(ex *exercises.Exercise, prev volume.Fields, prefs units.Prefs) (_ *Recommendation, ok bool) {
	if ex == nil || !ex.RangeEnabled {
		return nil, false
	}

	rec := &Recommendation{
		ExerciseID:   ex.ID,
		InputType:    ex.InputType,
		Fields:       copyFields(prev),
		WeightUnit:   prefs.Weight,
		DistanceUnit: prefs.Distance,
	}
	step := WeightStep(prefs.Weight)
	minW, maxW := displayBound(ex.MinWeight, prefs.Weight), displayBound(ex.MaxWeight, prefs.Weight)

	switch ex.InputType {
	case exercises.WeightReps, exercises.WeightedBodyweight, exercises.AssistedBodyweight, exercises.BodyweightReps:
		if ex.MinReps == nil || ex.MaxReps == nil || prev.Reps == nil {
			return nil, false
		}
		load := loadField(ex.InputType, rec)
		repsStep(rec, *prev.Reps, *ex.MinReps, *ex.MaxReps, load, ex.InputType, step, minW, maxW)

	case exercises.Duration, exercises.DurationWeight:
		if ex.MinDuration == nil || ex.MaxDuration == nil || prev.Time == nil {
			return nil, false
		}
		var load **float64
		if ex.InputType == exercises.DurationWeight {
			load = &rec.Weight
		}
		timeStep(rec, *prev.Time, *ex.MinDuration, *ex.MaxDuration, load, step, minW, maxW)

	case exercises.DistanceDuration, exercises.WeightDistance:
		if ex.MinDistance == nil || ex.MaxDistance == nil || prev.Distance == nil {
			return nil, false
		}
		lo := units.DistanceFromKm(*ex.MinDistance, prefs.Distance)
		hi := units.DistanceFromKm(*ex.MaxDistance, prefs.Distance)
		var load **float64
		if ex.InputType == exercises.WeightDistance {
			load = &rec.Weight
		}
		distanceStepRec(rec, *prev.Distance, lo, hi, load, step, minW, maxW)

	default:
		return nil, false
	}

	roundFields(&rec.Fields)
	return rec, true
}

func loadField(it exercises.InputType, rec *Recommendation) **float64 {
	switch it {
	case exercises.WeightReps:
		return &rec.Weight
	case exercises.WeightedBodyweight:
		return &rec.AdditionalWeight
	case exercises.AssistedBodyweight:
		return &rec.AssistanceWeight
	}
	return nil
}

func repsStep(
	rec *Recommendation,
	reps, minReps, maxReps int,
	load **float64,
	it exercises.InputType,
	step float64,
	minW, maxW *float64,
) {
	// assistance works the other way round: less of it is harder
	up, down := step, -step
	if it == exercises.AssistedBodyweight {
		up, down = -step, step
	}

	switch {
	case reps >= maxReps && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, up, it, step, minW, maxW))
		rec.Reps = ptr(minReps)
		rec.Reason = ReasonIncreaseLoad
		rec.Recommended = []string{loadName(it), "reps"}
	case reps < minReps && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, down, it, step, minW, maxW))
		rec.Reps = ptr(minReps)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{loadName(it), "reps"}
	case reps >= maxReps:
		rec.Reps = ptr(maxReps)
		rec.Reason = ReasonHold
		rec.Recommended = []string{"reps"}
	case reps < minReps:
		rec.Reps = ptr(minReps)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{"reps"}
	default:
		rec.Reps = ptr(min(reps+1, maxReps))
		rec.Reason = ReasonProgress
		rec.Recommended = []string{"reps"}
	}
}

func timeStep(rec *Recommendation, t, lo, hi int, load **float64, step float64, minW, maxW *float64) {
	switch {
	case t >= hi && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, step, exercises.DurationWeight, step, minW, maxW))
		rec.Time = ptr(lo)
		rec.Reason = ReasonIncreaseLoad
		rec.Recommended = []string{"weight", "time"}
	case t < lo && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, -step, exercises.DurationWeight, step, minW, maxW))
		rec.Time = ptr(lo)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{"weight", "time"}
	case t >= hi:
		rec.Time = ptr(hi)
		rec.Reason = ReasonHold
		rec.Recommended = []string{"time"}
	case t < lo:
		rec.Time = ptr(lo)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{"time"}
	default:
		rec.Time = ptr(min(t+timeStepSeconds, hi))
		rec.Reason = ReasonProgress
		rec.Recommended = []string{"time"}
	}
}

func distanceStepRec(rec *Recommendation, d, lo, hi float64, load **float64, step float64, minW, maxW *float64) {
	switch {
	case d >= hi && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, step, exercises.WeightDistance, step, minW, maxW))
		rec.Distance = ptr(lo)
		rec.Reason = ReasonIncreaseLoad
		rec.Recommended = []string{"weight", "distance"}
	case d < lo && load != nil && *load != nil:
		*load = ptr(adjustLoad(**load, -step, exercises.WeightDistance, step, minW, maxW))
		rec.Distance = ptr(lo)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{"weight", "distance"}
	case d >= hi:
		rec.Distance = ptr(hi)
		rec.Reason = ReasonHold
		rec.Recommended = []string{"distance"}
	case d < lo:
		rec.Distance = ptr(lo)
		rec.Reason = ReasonDecreaseLoad
		rec.Recommended = []string{"distance"}
	default:
		rec.Distance = ptr(math.Min(d+distanceStep, hi))
		rec.Reason = ReasonProgress
		rec.Recommended = []string{"distance"}
	}
}

// adjustLoad applies delta to w. A main working weight never drops below
// one step; added or assisting weight may reach zero.
func adjustLoad(w, delta float64, it exercises.InputType, step float64, minW, maxW *float64) float64 {
	floor := step
	if it == exercises.WeightedBodyweight || it == exercises.AssistedBodyweight {
		floor = 0
	}
	w = math.Max(floor, w+delta)
	if minW != nil && w < *minW {
		w = *minW
	}
	if maxW != nil && w > *maxW {
		w = *maxW
	}
	return w
}

func loadName(it exercises.InputType) string {
	switch it {
	case exercises.WeightedBodyweight:
		return "additional_weight"
	case exercises.AssistedBodyweight:
		return "assistance_weight"
	}
	return "weight"
}

func displayBound(kg *float64, u units.WeightUnit) *float64 {
	if kg == nil {
		return nil
	}
	return ptr(units.Round2(units.WeightFromKg(*kg, u)))
}

func copyFields(f volume.Fields) volume.Fields {
	return volume.Fields{
		Weight:           clone(f.Weight),
		Reps:             clone(f.Reps),
		Time:             clone(f.Time),
		Distance:         clone(f.Distance),
		AdditionalWeight: clone(f.AdditionalWeight),
		AssistanceWeight: clone(f.AssistanceWeight),
	}
}

func roundFields(f *volume.Fields) {
	for _, v := range []*float64{f.Weight, f.Distance, f.AdditionalWeight, f.AssistanceWeight} {
		if v != nil {
			*v = units.Round2(*v)
		}
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ptr[T any](v T) *T {
	return &v
}
