package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/volume"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

var (
	ErrSessionNotFound = apperr.NotFound("session not found")
	ErrNotOwner        = apperr.Permission("session belongs to another user")
)

var validate = validator.New()

// TxStore is the storage seen from inside one unit of work.
type TxStore interface {
	// LockUser reads the user row FOR UPDATE.
	LockUser(ctx context.Context, userID int) (*Owner, error)
	LatestBodyweight(ctx context.Context, userID int) (kg float64, found bool, err error)
	CountSessions(ctx context.Context, userID int, from, to time.Time) (int, error)
	InsertSession(ctx context.Context, s *Session) error
	InsertSet(ctx context.Context, set *history.Set) error
	FinishSession(ctx context.Context, s *Session) error
	UpdateProgress(ctx context.Context, userID int, p experience.Progress) error
	// GetSessionForUpdate returns ErrSessionNotFound when missing.
	GetSessionForUpdate(ctx context.Context, id int) (*Session, error)
	DeleteSession(ctx context.Context, id int) error
}

type Store interface {
	InTx(ctx context.Context, fn func(tx TxStore) error) error
	Get(ctx context.Context, id int) (*Session, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type Service struct {
	store          Store
	catalog        exerciseGetter
	metricsManager *metrics.Manager
	// ability to inject the clock (for unit testing)
	Now func() time.Time
}

func NewService(store Store, catalog exerciseGetter, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		catalog:        catalog,
		metricsManager: metricsManager,
		Now:            time.Now,
	}
}

// Ingest persists a completed workout for userID together with its sets
// and the owner's EXP update, all in one transaction. raw is stored as the
// session snapshot; when nil the request itself is marshalled.
func (s *Service) Ingest(ctx context.Context, userID int, req IngestRequest, raw json.RawMessage) (_ *IngestResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.ingest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("invalid workout: %s", err)
	}

	if raw == nil {
		raw, err = json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal snapshot: %w", err)
		}
	}

	start := time.Now()
	now := s.Now().UTC()

	var (
		session *Session
		award   experience.Award
		logged  = map[exercises.InputType]int{}
	)
	err = s.store.InTx(ctx, func(tx TxStore) error {
		owner, err := tx.LockUser(ctx, userID)
		if err != nil {
			return err
		}

		bodyweight, found, err := tx.LatestBodyweight(ctx, userID)
		if err != nil {
			return fmt.Errorf("latest bodyweight: %w", err)
		}
		if !found {
			bodyweight = volume.DefaultBodyweightKg
		}

		activity, err := s.activity(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		session = &Session{
			UserID:      userID,
			Date:        now,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Photo:       req.Photo,
			Rating:      req.Rating,
			Duration:    int(req.Duration),
			Snapshot:    raw,
		}
		if session.Title == "" {
			session.Title = defaultTitle
		}
		if session.Rating == 0 {
			session.Rating = defaultRating
		}
		if err := tx.InsertSession(ctx, session); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		// an exercise listed more than once continues its order
		nextOrder := map[int]int{}
		for _, entry := range req.Exercises {
			ex, err := s.catalog.Get(ctx, entry.ID)
			if apperr.Is(err, apperr.KindNotFound) {
				log.Debugf("ingest session %d: skipping unknown exercise %d", session.ID, entry.ID)
				continue
			}
			if err != nil {
				return fmt.Errorf("get exercise %d: %w", entry.ID, err)
			}
			if !ex.VisibleTo(userID) {
				log.Debugf("ingest session %d: skipping foreign exercise %d", session.ID, entry.ID)
				continue
			}

			for _, candidate := range entry.Sets {
				if !candidate.Completed {
					continue
				}

				set, err := buildSet(ex, candidate, entry.Defaults, owner.Prefs, bodyweight)
				if err != nil {
					return err
				}
				set.SessionID = session.ID
				set.Order = nextOrder[ex.ID]
				if err := tx.InsertSet(ctx, set); err != nil {
					return err
				}
				nextOrder[ex.ID]++

				session.Volume += set.Volume
				session.SetsCompleted++
				if set.Reps != nil {
					session.TotalReps += *set.Reps
				}
				logged[ex.InputType]++
			}
		}

		award = experience.Apply(owner.Progress, req.ExpGained, activity)
		session.ExpGained = award.ExpGained
		if err := tx.FinishSession(ctx, session); err != nil {
			return fmt.Errorf("finish session: %w", err)
		}

		if err := tx.UpdateProgress(ctx, userID, award.Progress); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		return nil
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return nil, err
		}
		return nil, apperr.Integrity(err, "failed to save workout")
	}

	s.metricsManager.HistIngestDuration.Observe(time.Since(start).Seconds())
	s.metricsManager.CounterSessionsIngested.Inc()
	s.metricsManager.CounterExpAwarded.Add(float64(award.ExpGained))
	for inputType, n := range logged {
		s.metricsManager.CounterSetsLogged.WithLabelValues(string(inputType)).Add(float64(n))
	}

	log.Debugf(
		"user %d ingested session %d [%s]: %d sets, volume %.2f, exp +%d, level %d, streak %d",
		userID, session.ID, session.DurationLabel(), session.SetsCompleted, session.Volume,
		award.ExpGained, award.Progress.Level, award.Progress.Streak,
	)

	return &IngestResult{
		Success:   true,
		SessionID: session.ID,
		ExpGained: award.ExpGained,
	}, nil
}

func (s *Service) activity(ctx context.Context, tx TxStore, userID int, now time.Time) (experience.Activity, error) {
	var (
		a   experience.Activity
		err error
	)

	a.RecentSessions, err = tx.CountSessions(ctx, userID, now.Add(-experience.RecentWindow), now)
	if err != nil {
		return a, fmt.Errorf("count recent sessions: %w", err)
	}

	yesterdayFrom, todayFrom := experience.YesterdayWindow(now)
	yesterday, err := tx.CountSessions(ctx, userID, yesterdayFrom, todayFrom)
	if err != nil {
		return a, fmt.Errorf("count yesterday sessions: %w", err)
	}
	a.WorkedOutYesterday = yesterday > 0

	today, err := tx.CountSessions(ctx, userID, todayFrom, now)
	if err != nil {
		return a, fmt.Errorf("count today sessions: %w", err)
	}
	a.WorkedOutEarlierToday = today > 0

	return a, nil
}

// buildSet converts a submitted set to canonical units and computes its
// volume and range flag.
func buildSet(
	ex *exercises.Exercise,
	c SetCandidate,
	defaults *SetDefaults,
	prefs units.Prefs,
	bodyweightKg float64,
) (*history.Set, error) {
	if defaults != nil {
		if c.Weight == nil {
			c.Weight = defaults.Weight
		}
		if c.Time == nil {
			c.Time = defaults.Time
		}
	}

	fields := volume.Fields{
		Weight:           weightToKg(c.Weight, prefs.Weight),
		Reps:             c.Reps,
		Time:             c.Time,
		Distance:         distanceToKm(c.Distance, prefs.Distance),
		AdditionalWeight: weightToKg(c.AdditionalWeight, prefs.Weight),
		AssistanceWeight: weightToKg(c.AssistanceWeight, prefs.Weight),
	}
	variant, err := volume.NewVariant(ex.InputType, fields)
	if err != nil {
		return nil, err
	}

	setType := strings.TrimSpace(c.SetType)
	if setType == "" {
		setType = history.DefaultSetType
	}

	return &history.Set{
		ExerciseID:  ex.ID,
		Completed:   true,
		SetType:     setType,
		Volume:      volume.Calculate(variant, bodyweightKg),
		WithinRange: volume.WithinRange(ex, variant),
		Fields:      volume.FieldsOf(variant),
	}, nil
}

func weightToKg(v *float64, from units.WeightUnit) *float64 {
	if v == nil {
		return nil
	}
	kg := units.WeightToKg(*v, from)
	return &kg
}

func distanceToKm(v *float64, from units.DistanceUnit) *float64 {
	if v == nil {
		return nil
	}
	km := units.DistanceToKm(*v, from)
	return &km
}

// Delete removes the owner's session with its sets, likes and comments and
// takes back the EXP it granted.
func (s *Service) Delete(ctx context.Context, userID, sessionID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID), attribute.Int("session_id", sessionID))

	var reverted experience.Progress
	err = s.store.InTx(ctx, func(tx TxStore) error {
		// user row first, same lock order as ingest
		owner, err := tx.LockUser(ctx, userID)
		if err != nil {
			return err
		}

		session, err := tx.GetSessionForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.UserID != userID {
			return ErrNotOwner
		}

		if err := tx.DeleteSession(ctx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}

		reverted = experience.Revert(owner.Progress, session.ExpGained)
		if err := tx.UpdateProgress(ctx, userID, reverted); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		return nil
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return err
		}
		return apperr.Integrity(err, "failed to delete workout")
	}

	s.metricsManager.CounterSessionsDeleted.Inc()
	log.Debugf("user %d deleted session %d, exp now %d (level %d)", userID, sessionID, reverted.Exp, reverted.Level)

	return nil
}

func (s *Service) Get(ctx context.Context, sessionID int) (*Session, error) {
	return s.store.Get(ctx, sessionID)
}
