package progression

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/volume"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

var ErrNoPreviousSet = apperr.NotFound("no previous set for this exercise")

type historyReader interface {
	PreviousSet(ctx context.Context, userID, exerciseID int, order *int) (*history.Set, bool, error)
	PreviousExerciseVolume(ctx context.Context, userID, exerciseID int, before time.Time, beforeID int) (float64, bool, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type settingsReader interface {
	Settings(ctx context.Context, userID int) (*account.Settings, error)
}

// PreviousValues is the most recent completed set in display units.
type PreviousValues struct {
	ExerciseID      int       `json:"exercise_id"`
	Order           int       `json:"order"`
	IsExactPosition bool      `json:"is_exact_position"`
	SessionID       int       `json:"session_id"`
	SessionDate     time.Time `json:"session_date"`
	volume.Fields
	WeightUnit   units.WeightUnit   `json:"weight_unit"`
	DistanceUnit units.DistanceUnit `json:"distance_unit"`
}

type Service struct {
	history  historyReader
	catalog  exerciseGetter
	settings settingsReader
}

func NewService(history historyReader, catalog exerciseGetter, settings settingsReader) *Service {
	return &Service{
		history:  history,
		catalog:  catalog,
		settings: settings,
	}
}

// PreviousValues returns the user's last completed set of the exercise,
// preferring position order when given.
func (s *Service) PreviousValues(ctx context.Context, userID, exerciseID int, order *int) (_ *PreviousValues, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.previousValues")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise_id", exerciseID))

	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	set, exact, err := s.history.PreviousSet(ctx, userID, exerciseID, order)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrNoPreviousSet
	}

	return &PreviousValues{
		ExerciseID:      exerciseID,
		Order:           set.Order,
		IsExactPosition: exact,
		SessionID:       set.SessionID,
		SessionDate:     set.SessionDate,
		Fields:          ToDisplay(set.Fields, settings.Prefs),
		WeightUnit:      settings.Weight,
		DistanceUnit:    settings.Distance,
	}, nil
}

// Recommendation proposes the next set for the exercise. It is only
// available with ranges and recommendations enabled and a previous set.
func (s *Service) Recommendation(ctx context.Context, userID, exerciseID int, order *int) (_ *Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.recommendation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise_id", exerciseID))

	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.RecommendEnabled {
		return nil, apperr.Validation("recommendations are disabled")
	}

	ex, err := s.catalog.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if !ex.RangeEnabled {
		return nil, apperr.Validation("exercise has no target range")
	}

	set, _, err := s.history.PreviousSet(ctx, userID, exerciseID, order)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrNoPreviousSet
	}

	rec, ok := Recommend(ex, ToDisplay(set.Fields, settings.Prefs), settings.Prefs)
	if !ok {
		return nil, apperr.Validation("no recommendation for this exercise")
	}

	return rec, nil
}

// SessionRef identifies the session whose exercises are compared.
type SessionRef struct {
	ID     int
	UserID int
	Date   time.Time
}

// CompareProgress compares, per exercise, the completed volume in the
// session with the user's previous session containing that exercise:
// -1 less, 0 same or no earlier data, +1 more. Exercises whose lookup fails
// are logged and left out.
func (s *Service) CompareProgress(ctx context.Context, ref SessionRef, sets []history.Set) map[int]int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.compareProgress")
	defer span.End()
	span.SetAttributes(attribute.Int("session_id", ref.ID))

	current := map[int]float64{}
	var exerciseOrder []int
	for _, set := range sets {
		if !set.Completed {
			continue
		}
		if _, ok := current[set.ExerciseID]; !ok {
			exerciseOrder = append(exerciseOrder, set.ExerciseID)
		}
		current[set.ExerciseID] += set.Volume
	}

	result := make(map[int]int, len(current))
	for _, exerciseID := range exerciseOrder {
		prev, found, err := s.history.PreviousExerciseVolume(ctx, ref.UserID, exerciseID, ref.Date, ref.ID)
		if err != nil {
			log.Errorf("compare progress, session %d exercise %d: %s", ref.ID, exerciseID, err)
			continue
		}
		if !found {
			result[exerciseID] = 0
			continue
		}
		result[exerciseID] = Compare(current[exerciseID], prev)
	}

	return result
}

// Compare returns -1, 0 or +1 for current against previous.
func Compare(current, previous float64) int {
	const eps = 1e-9
	switch {
	case current > previous+eps:
		return 1
	case current < previous-eps:
		return -1
	default:
		return 0
	}
}

// ToDisplay converts canonical set fields to the user's units, rounded to
// two decimals.
func ToDisplay(f volume.Fields, prefs units.Prefs) volume.Fields {
	out := copyFields(f)
	convertWeight := func(v *float64) {
		if v != nil {
			*v = units.Round2(units.WeightFromKg(*v, prefs.Weight))
		}
	}
	convertWeight(out.Weight)
	convertWeight(out.AdditionalWeight)
	convertWeight(out.AssistanceWeight)
	if out.Distance != nil {
		*out.Distance = units.Round2(units.DistanceFromKm(*out.Distance, prefs.Distance))
	}
	return out
}

// ToCanonical converts set fields entered in the user's units to kg and km.
func ToCanonical(f volume.Fields, prefs units.Prefs) volume.Fields {
	out := copyFields(f)
	convertWeight := func(v *float64) {
		if v != nil {
			*v = units.WeightToKg(*v, prefs.Weight)
		}
	}
	convertWeight(out.Weight)
	convertWeight(out.AdditionalWeight)
	convertWeight(out.AssistanceWeight)
	if out.Distance != nil {
		*out.Distance = units.DistanceToKm(*out.Distance, prefs.Distance)
	}
	return out
}
