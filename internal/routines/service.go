package routines

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/gymstats/volume"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

const MaxPageSize = 50

var validate = validator.New()

type store interface {
	Create(ctx context.Context, routine *Routine) error
	Update(ctx context.Context, routine *Routine) error
	Delete(ctx context.Context, userID, id int) error
	Get(ctx context.Context, id int) (*Routine, error)
	List(ctx context.Context, userID int) ([]Routine, error)
	SharedCount(ctx context.Context) (int, error)
	SharedPage(ctx context.Context, page, size int) ([]SharedRoutine, error)
	GetShared(ctx context.Context, id int) (*SharedRoutine, error)
	Copy(ctx context.Context, sharedID int, dup *Routine) error
}

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type settingsReader interface {
	Settings(ctx context.Context, userID int) (*account.Settings, error)
}

// Service keeps routine templates in canonical units and shows them in the
// reader's units.
type Service struct {
	store    store
	catalog  exerciseGetter
	settings settingsReader
}

func NewService(store store, catalog exerciseGetter, settings settingsReader) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		settings: settings,
	}
}

func (s *Service) prefs(ctx context.Context, userID int) (units.Prefs, error) {
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return units.Prefs{}, err
	}
	return settings.Prefs, nil
}

func (s *Service) Create(ctx context.Context, userID int, req RoutineRequest) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	routine, prefs, err := s.build(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, routine); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("id", routine.ID))

	return toDisplay(routine, prefs), nil
}

func (s *Service) Update(ctx context.Context, userID, id int, req RoutineRequest) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	routine, prefs, err := s.build(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	routine.ID = id
	if err := s.store.Update(ctx, routine); err != nil {
		return nil, err
	}

	return toDisplay(routine, prefs), nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	return s.store.Delete(ctx, userID, id)
}

// Get returns the routine to its owner, or to anyone while it is public.
func (s *Service) Get(ctx context.Context, viewerID, id int) (*Routine, error) {
	routine, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine.UserID != viewerID && !routine.IsPublic {
		return nil, ErrNotOwner
	}
	prefs, err := s.prefs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return toDisplay(routine, prefs), nil
}

func (s *Service) List(ctx context.Context, userID int) ([]Routine, error) {
	list, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]Routine, 0, len(list))
	for i := range list {
		result = append(result, *toDisplay(&list[i], prefs))
	}
	return result, nil
}

func (s *Service) SharedPage(ctx context.Context, viewerID, page, size int) (_ *SharedPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.sharedPage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if page < 1 {
		return nil, apperr.Validation("invalid page (has to be non-zero value)")
	}
	if size < 1 || size > MaxPageSize {
		return nil, apperr.Validation("invalid size (has to be between 1 and %d)", MaxPageSize)
	}

	list, err := s.store.SharedPage(ctx, page, size)
	if err != nil {
		return nil, err
	}
	total, err := s.store.SharedCount(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	result := &SharedPage{
		Routines: make([]SharedRoutine, 0, len(list)),
		Total:    total,
	}
	for _, shared := range list {
		shared.Exercises = templatesToDisplay(shared.Exercises, prefs)
		result.Routines = append(result.Routines, shared)
	}
	return result, nil
}

// Copy makes a private routine for userID from a public snapshot. Exercises
// the user cannot see are left out.
func (s *Service) Copy(ctx context.Context, userID, sharedID int) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.copy")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("shared_id", sharedID))

	shared, err := s.store.GetShared(ctx, sharedID)
	if err != nil {
		return nil, err
	}

	templates := make([]sessions.TemplateExercise, 0, len(shared.Exercises))
	for _, te := range shared.Exercises {
		ex, err := s.catalog.Get(ctx, te.ExerciseID)
		if err != nil || !ex.VisibleTo(userID) {
			log.Debugf("copy shared routine %d: skip exercise %d: %v", sharedID, te.ExerciseID, err)
			continue
		}
		templates = append(templates, te)
	}

	dup := &Routine{
		UserID:      userID,
		Name:        shared.Name,
		Level:       shared.Level,
		Goal:        shared.Goal,
		Muscles:     shared.Muscles,
		Description: shared.Description,
		Exercises:   templates,
	}
	if err := s.store.Copy(ctx, sharedID, dup); err != nil {
		return nil, err
	}

	prefs, err := s.prefs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDisplay(dup, prefs), nil
}

// build validates req against the catalog and returns the routine in
// canonical units along with the author's prefs.
func (s *Service) build(ctx context.Context, userID int, req RoutineRequest) (*Routine, units.Prefs, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, units.Prefs{}, apperr.Validation("invalid routine: %s", err)
	}

	prefs, err := s.prefs(ctx, userID)
	if err != nil {
		return nil, units.Prefs{}, err
	}

	templates := make([]sessions.TemplateExercise, 0, len(req.Exercises))
	for _, te := range req.Exercises {
		ex, err := s.catalog.Get(ctx, te.ExerciseID)
		if apperr.Is(err, apperr.KindNotFound) || (err == nil && !ex.VisibleTo(userID)) {
			return nil, units.Prefs{}, apperr.Validation("unknown exercise %d", te.ExerciseID)
		}
		if err != nil {
			return nil, units.Prefs{}, err
		}

		te.Name = ex.Name
		te.InputType = ex.InputType
		if te.RestSeconds <= 0 {
			te.RestSeconds = ex.RestSeconds
		}
		sets := make([]sessions.SetCandidate, 0, len(te.Sets))
		for _, set := range te.Sets {
			sets = append(sets, convertSet(set, func(f volume.Fields) volume.Fields {
				return progression.ToCanonical(f, prefs)
			}))
		}
		te.Sets = sets
		templates = append(templates, te)
	}

	muscles := req.Muscles
	if muscles == nil {
		muscles = []string{}
	}
	return &Routine{
		UserID:      userID,
		Name:        req.Name,
		Level:       req.Level,
		Goal:        req.Goal,
		Muscles:     muscles,
		Description: req.Description,
		Exercises:   templates,
		IsPublic:    req.IsPublic,
	}, prefs, nil
}

func convertSet(set sessions.SetCandidate, convert func(volume.Fields) volume.Fields) sessions.SetCandidate {
	f := convert(volume.Fields{
		Weight:           set.Weight,
		Reps:             set.Reps,
		Time:             set.Time,
		Distance:         set.Distance,
		AdditionalWeight: set.AdditionalWeight,
		AssistanceWeight: set.AssistanceWeight,
	})
	setType := set.SetType
	if setType == "" {
		setType = history.DefaultSetType
	}
	return sessions.SetCandidate{
		SetType:          setType,
		Weight:           f.Weight,
		Reps:             f.Reps,
		Time:             f.Time,
		Distance:         f.Distance,
		AdditionalWeight: f.AdditionalWeight,
		AssistanceWeight: f.AssistanceWeight,
	}
}

func templatesToDisplay(in []sessions.TemplateExercise, prefs units.Prefs) []sessions.TemplateExercise {
	out := make([]sessions.TemplateExercise, 0, len(in))
	for _, te := range in {
		sets := make([]sessions.SetCandidate, 0, len(te.Sets))
		for _, set := range te.Sets {
			sets = append(sets, convertSet(set, func(f volume.Fields) volume.Fields {
				return progression.ToDisplay(f, prefs)
			}))
		}
		te.Sets = sets
		out = append(out, te)
	}
	return out
}

func toDisplay(routine *Routine, prefs units.Prefs) *Routine {
	out := *routine
	out.Exercises = templatesToDisplay(routine.Exercises, prefs)
	return &out
}
