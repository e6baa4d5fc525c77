package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const setColumns = `
	ws.id, ws.session_id, ws.exercise_id, ws.set_order, ws.completed, ws.set_type,
	ws.weight, ws.reps, ws.time, ws.distance, ws.additional_weight, ws.assistance_weight,
	ws.volume, ws.within_range, s.session_date`

// InsertSet appends a set. q is usually the ingest transaction.
func InsertSet(ctx context.Context, q db.Querier, set *Set) error {
	err := q.QueryRow(
		ctx,
		`INSERT INTO workout_set
				(session_id, exercise_id, set_order, completed, set_type,
				 weight, reps, time, distance, additional_weight, assistance_weight,
				 volume, within_range)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id;`,
		set.SessionID, set.ExerciseID, set.Order, set.Completed, set.SetType,
		set.Weight, set.Reps, set.Time, set.Distance, set.AdditionalWeight, set.AssistanceWeight,
		set.Volume, set.WithinRange,
	).Scan(&set.ID)
	if err != nil {
		return fmt.Errorf("insert set [%d/%d/%d]: %w", set.SessionID, set.ExerciseID, set.Order, err)
	}
	return nil
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// PreviousSet returns the user's most recent completed set of the exercise.
// With order set, a set at that position is preferred; when none exists the
// most recent set at any position is returned and exact is false.
// A nil set means the user never performed the exercise.
func (r *Repo) PreviousSet(ctx context.Context, userID, exerciseID int, order *int) (_ *Set, exact bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.previousSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID), attribute.Int("exercise_id", exerciseID))

	if order != nil {
		span.SetAttributes(attribute.Int("order", *order))
		set, err := r.previousSet(ctx, userID, exerciseID, order)
		if err != nil {
			return nil, false, err
		}
		if set != nil {
			return set, true, nil
		}
	}

	set, err := r.previousSet(ctx, userID, exerciseID, nil)
	if err != nil {
		return nil, false, err
	}
	return set, set != nil && order == nil, nil
}

func (r *Repo) previousSet(ctx context.Context, userID, exerciseID int, order *int) (*Set, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM workout_set ws
			JOIN workout_session s ON s.id = ws.session_id
			WHERE s.user_id = $1 AND ws.exercise_id = $2 AND ws.completed
				AND ($3::int IS NULL OR ws.set_order = $3)
			ORDER BY s.session_date DESC, s.id DESC, ws.set_order DESC
			LIMIT 1;`,
		userID, exerciseID, order,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

// RecentSets returns the completed sets of the user's latest session that
// contains the exercise, in order.
func (r *Repo) RecentSets(ctx context.Context, userID, exerciseID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.recentSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			WITH latest AS (
				SELECT s.id
				FROM workout_session s
				JOIN workout_set ws ON ws.session_id = s.id
				WHERE s.user_id = $1 AND ws.exercise_id = $2 AND ws.completed
				ORDER BY s.session_date DESC, s.id DESC
				LIMIT 1
			)
			SELECT `+setColumns+`
			FROM workout_set ws
			JOIN workout_session s ON s.id = ws.session_id
			WHERE ws.session_id = (SELECT id FROM latest) AND ws.exercise_id = $2 AND ws.completed
			ORDER BY ws.set_order ASC;`,
		userID, exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sets(rows)
}

// ExerciseSets returns all of the user's completed sets for an exercise,
// oldest first, optionally bounded by [from, to).
func (r *Repo) ExerciseSets(ctx context.Context, userID, exerciseID int, from, to *time.Time) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.exerciseSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID), attribute.Int("exercise_id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM workout_set ws
			JOIN workout_session s ON s.id = ws.session_id
			WHERE s.user_id = $1 AND ws.exercise_id = $2 AND ws.completed
				AND ($3::timestamptz IS NULL OR s.session_date >= $3)
				AND ($4::timestamptz IS NULL OR s.session_date < $4)
			ORDER BY s.session_date ASC, s.id ASC, ws.set_order ASC;`,
		userID, exerciseID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sets(rows)
}

// SessionSets returns the sets of a session ordered by (exercise, order).
func (r *Repo) SessionSets(ctx context.Context, sessionID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.sessionSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM workout_set ws
			JOIN workout_session s ON s.id = ws.session_id
			WHERE ws.session_id = $1
			ORDER BY MIN(ws.id) OVER (PARTITION BY ws.exercise_id), ws.exercise_id, ws.set_order;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sets(rows)
}

// PreviousExerciseVolume sums the completed set volume of the exercise in
// the user's most recent session strictly before (before, beforeID).
func (r *Repo) PreviousExerciseVolume(
	ctx context.Context,
	userID, exerciseID int,
	before time.Time,
	beforeID int,
) (_ float64, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.previousExerciseVolume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var total float64
	err = r.db.QueryRow(
		ctx,
		`
			WITH prev AS (
				SELECT s.id
				FROM workout_session s
				JOIN workout_set ws ON ws.session_id = s.id
				WHERE s.user_id = $1 AND ws.exercise_id = $2 AND ws.completed
					AND (s.session_date, s.id) < ($3, $4)
				ORDER BY s.session_date DESC, s.id DESC
				LIMIT 1
			)
			SELECT COALESCE(SUM(ws.volume), 0)
			FROM workout_set ws
			WHERE ws.session_id = (SELECT id FROM prev) AND ws.exercise_id = $2 AND ws.completed
			HAVING COUNT(*) > 0;`,
		userID, exerciseID, before, beforeID,
	).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return total, true, nil
}

func rows2sets(rows pgx.Rows) ([]Set, error) {
	var sets []Set
	for rows.Next() {
		var s Set
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.ExerciseID, &s.Order, &s.Completed, &s.SetType,
			&s.Weight, &s.Reps, &s.Time, &s.Distance, &s.AdditionalWeight, &s.AssistanceWeight,
			&s.Volume, &s.WithinRange, &s.SessionDate,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}
