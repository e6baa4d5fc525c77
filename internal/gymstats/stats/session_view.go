package stats

import (
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/gymstats/volume"
	"github.com/2beens/liftlog/internal/units"
)

// ExerciseSummary is one exercise of a session with a representative
// value per input type: averages for load and reps, totals for time and
// distance. Progress is -1/0/+1 against the previous session.
type ExerciseSummary struct {
	ExerciseID          int                 `json:"exercise_id"`
	Name                string              `json:"name"`
	InputType           exercises.InputType `json:"input_type"`
	Sets                int                 `json:"sets"`
	Volume              float64             `json:"volume"`
	AvgWeight           *float64            `json:"avg_weight,omitempty"`
	AvgReps             *float64            `json:"avg_reps,omitempty"`
	AvgAdditionalWeight *float64            `json:"avg_additional_weight,omitempty"`
	AvgAssistanceWeight *float64            `json:"avg_assistance_weight,omitempty"`
	TotalDuration       *int                `json:"total_duration,omitempty"`
	TotalDistance       *float64            `json:"total_distance,omitempty"`
	Progress            *int                `json:"progress,omitempty"`
	SetDetails          []SetView           `json:"set_details"`
}

type SetView struct {
	Order       int     `json:"order"`
	SetType     string  `json:"set_type"`
	Volume      float64 `json:"volume"`
	WithinRange bool    `json:"within_range"`
	volume.Fields
}

type SessionView struct {
	Session       *sessions.Session  `json:"session"`
	DurationLabel string             `json:"duration_label"`
	Exercises     []ExerciseSummary  `json:"exercises"`
	WeightUnit    units.WeightUnit   `json:"weight_unit"`
	DistanceUnit  units.DistanceUnit `json:"distance_unit"`
}

// groupSets splits sets by exercise keeping first-seen exercise order.
func groupSets(sets []history.Set) ([]int, map[int][]history.Set) {
	var order []int
	grouped := map[int][]history.Set{}
	for _, s := range sets {
		if _, ok := grouped[s.ExerciseID]; !ok {
			order = append(order, s.ExerciseID)
		}
		grouped[s.ExerciseID] = append(grouped[s.ExerciseID], s)
	}
	return order, grouped
}

func summarize(ex *exercises.Exercise, sets []history.Set, prefs units.Prefs) ExerciseSummary {
	summary := ExerciseSummary{
		ExerciseID: ex.ID,
		Name:       ex.Name,
		InputType:  ex.InputType,
		SetDetails: make([]SetView, 0, len(sets)),
	}

	var (
		weightSum, additionalSum, assistanceSum, distanceSum float64
		repsSum, timeSum                                     int
		weightN, additionalN, assistanceN, repsN             int
		timeN, distanceN                                     int
	)
	for _, s := range sets {
		summary.SetDetails = append(summary.SetDetails, SetView{
			Order:       s.Order,
			SetType:     s.SetType,
			Volume:      units.Round2(s.Volume),
			WithinRange: s.WithinRange,
			Fields:      progression.ToDisplay(s.Fields, prefs),
		})
		if !s.Completed {
			continue
		}
		summary.Sets++
		summary.Volume += s.Volume
		if s.Weight != nil {
			weightSum += *s.Weight
			weightN++
		}
		if s.Reps != nil {
			repsSum += *s.Reps
			repsN++
		}
		if s.AdditionalWeight != nil {
			additionalSum += *s.AdditionalWeight
			additionalN++
		}
		if s.AssistanceWeight != nil {
			assistanceSum += *s.AssistanceWeight
			assistanceN++
		}
		if s.Time != nil {
			timeSum += *s.Time
			timeN++
		}
		if s.Distance != nil {
			distanceSum += *s.Distance
			distanceN++
		}
	}
	summary.Volume = units.Round2(summary.Volume)

	it := ex.InputType
	if it.UsesWeight() && weightN > 0 {
		summary.AvgWeight = ptr(units.Round2(units.WeightFromKg(weightSum/float64(weightN), prefs.Weight)))
	}
	if it.UsesReps() && repsN > 0 {
		summary.AvgReps = ptr(units.Round2(float64(repsSum) / float64(repsN)))
	}
	if it == exercises.WeightedBodyweight && additionalN > 0 {
		summary.AvgAdditionalWeight = ptr(units.Round2(units.WeightFromKg(additionalSum/float64(additionalN), prefs.Weight)))
	}
	if it == exercises.AssistedBodyweight && assistanceN > 0 {
		summary.AvgAssistanceWeight = ptr(units.Round2(units.WeightFromKg(assistanceSum/float64(assistanceN), prefs.Weight)))
	}
	if it.UsesTime() && timeN > 0 {
		summary.TotalDuration = ptr(timeSum)
	}
	if it.UsesDistance() && distanceN > 0 {
		summary.TotalDistance = ptr(units.Round2(units.DistanceFromKm(distanceSum, prefs.Distance)))
	}

	return summary
}

func ptr[T any](v T) *T {
	return &v
}
