package stats

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

type totalsReader interface {
	Totals(ctx context.Context, userID int, from, to time.Time) (Totals, error)
}

type historyReader interface {
	ExerciseSets(ctx context.Context, userID, exerciseID int, from, to *time.Time) ([]history.Set, error)
	SessionSets(ctx context.Context, sessionID int) ([]history.Set, error)
}

type sessionGetter interface {
	Get(ctx context.Context, id int) (*sessions.Session, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type accountReader interface {
	Settings(ctx context.Context, userID int) (*account.Settings, error)
	CanView(ctx context.Context, viewerID, ownerID int) (bool, error)
}

type progressComparer interface {
	CompareProgress(ctx context.Context, ref progression.SessionRef, sets []history.Set) map[int]int
}

type Service struct {
	totals   totalsReader
	history  historyReader
	sessions sessionGetter
	catalog  exerciseGetter
	accounts accountReader
	progress progressComparer
	// ability to inject the clock (for unit testing)
	Now func() time.Time
}

func NewService(
	totals totalsReader,
	history historyReader,
	sessions sessionGetter,
	catalog exerciseGetter,
	accounts accountReader,
	progress progressComparer,
) *Service {
	return &Service{
		totals:   totals,
		history:  history,
		sessions: sessions,
		catalog:  catalog,
		accounts: accounts,
		progress: progress,
		Now:      time.Now,
	}
}

func (s *Service) checkAccess(ctx context.Context, viewerID, ownerID int) error {
	allowed, err := s.accounts.CanView(ctx, viewerID, ownerID)
	if err != nil {
		return err
	}
	if !allowed {
		return account.ErrPrivateProfile
	}
	return nil
}

// Weekly returns the current ISO week against the previous one for userID.
func (s *Service) Weekly(ctx context.Context, viewerID, userID int) (_ *WeeklyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	if err := s.checkAccess(ctx, viewerID, userID); err != nil {
		return nil, err
	}

	weekStart := WeekStart(s.Now())
	current, err := s.totals.Totals(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	previous, err := s.totals.Totals(ctx, userID, weekStart.AddDate(0, 0, -7), weekStart)
	if err != nil {
		return nil, err
	}
	current.Volume = units.Round2(current.Volume)
	previous.Volume = units.Round2(previous.Volume)

	return &WeeklyStats{
		WeekStart:     weekStart,
		Current:       current,
		Previous:      previous,
		Comparison:    compareTotals(current, previous),
		DurationLabel: units.FormatHuman(current.Duration),
	}, nil
}

// ExerciseTrend returns the user's per-day aggregates for an exercise.
func (s *Service) ExerciseTrend(ctx context.Context, userID, exerciseID int, from, to *time.Time) (_ []TrendPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.exerciseTrend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise_id", exerciseID))

	if _, err := s.catalog.Get(ctx, exerciseID); err != nil {
		return nil, err
	}

	settings, err := s.accounts.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	sets, err := s.history.ExerciseSets(ctx, userID, exerciseID, from, to)
	if err != nil {
		return nil, err
	}

	return BuildTrend(sets, settings.Prefs), nil
}

// SessionView groups a session's sets by exercise in the viewer's units.
// Exercises that fail to resolve are logged and left out.
func (s *Service) SessionView(ctx context.Context, viewerID, sessionID int) (_ *SessionView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.sessionView")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", sessionID))

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, viewerID, session.UserID); err != nil {
		return nil, err
	}

	prefs := units.DefaultPrefs()
	if viewerID > 0 {
		settings, err := s.accounts.Settings(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		prefs = settings.Prefs
	}

	sets, err := s.history.SessionSets(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	progress := s.progress.CompareProgress(ctx, progression.SessionRef{
		ID:     session.ID,
		UserID: session.UserID,
		Date:   session.Date,
	}, sets)

	view := &SessionView{
		Session:       session,
		DurationLabel: units.FormatHuman(session.Duration),
		Exercises:     []ExerciseSummary{},
		WeightUnit:    prefs.Weight,
		DistanceUnit:  prefs.Distance,
	}
	order, grouped := groupSets(sets)
	for _, exerciseID := range order {
		ex, err := s.catalog.Get(ctx, exerciseID)
		if err != nil {
			log.Errorf("session view %d: get exercise %d: %s", sessionID, exerciseID, err)
			continue
		}
		summary := summarize(ex, grouped[exerciseID], prefs)
		if p, ok := progress[exerciseID]; ok {
			summary.Progress = ptr(p)
		}
		view.Exercises = append(view.Exercises, summary)
	}

	return view, nil
}
