package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = apperr.NotFound("exercise not found")

type ListParams struct {
	// UserID is the viewer; their custom exercises are included and
	// their recently used exercises come first.
	UserID    int
	Muscle    string
	InputType string
	Search    string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const exerciseColumns = `
	e.id, e.name, e.equipment, e.muscles, e.input_type,
	e.min_reps, e.max_reps, e.min_duration, e.max_duration,
	e.min_distance, e.max_distance, e.min_weight, e.max_weight,
	e.range_enabled, e.rest_seconds, e.user_created, e.created_by, e.created_at`

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, `SELECT `+exerciseColumns+` FROM exercise e WHERE e.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises, err := r.rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(exercises) != 1 {
		return nil, ErrExerciseNotFound
	}

	return &exercises[0], nil
}

// List returns the catalog visible to params.UserID. Exercises the user
// performed most recently come first, the rest are ordered by name.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.String("muscle", params.Muscle))
	span.SetAttributes(attribute.String("input_type", params.InputType))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+exerciseColumns+`
			FROM exercise e
			LEFT JOIN (
				SELECT ws.exercise_id, MAX(s.session_date) AS last_used
				FROM workout_set ws
				JOIN workout_session s ON s.id = ws.session_id
				WHERE s.user_id = $1
				GROUP BY ws.exercise_id
			) recent ON recent.exercise_id = e.id
			WHERE (e.user_created = FALSE OR e.created_by = $1)
				AND ($2::text = '' OR $2 = ANY(e.muscles))
				AND ($3::text = '' OR e.input_type = $3)
				AND ($4::text = '' OR e.name ILIKE '%' || $4 || '%')
			ORDER BY recent.last_used DESC NULLS LAST, e.name ASC;`,
		params.UserID, params.Muscle, params.InputType, params.Search,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2exercises(rows)
}

func (r *Repo) Create(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(name, equipment, muscles, input_type,
				 min_reps, max_reps, min_duration, max_duration,
				 min_distance, max_distance, min_weight, max_weight,
				 range_enabled, rest_seconds, user_created, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING id, created_at;`,
		exercise.Name, exercise.Equipment, exercise.Muscles, string(exercise.InputType),
		exercise.MinReps, exercise.MaxReps, exercise.MinDuration, exercise.MaxDuration,
		exercise.MinDistance, exercise.MaxDistance, exercise.MinWeight, exercise.MaxWeight,
		exercise.RangeEnabled, exercise.RestSeconds, exercise.UserCreated, exercise.CreatedBy,
	).Scan(&exercise.ID, &exercise.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

// CompletedSetCounts returns, per exercise id, how many completed sets the
// user logged for exercises tagged with muscle.
func (r *Repo) CompletedSetCounts(ctx context.Context, userID int, muscle string) (_ map[int]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.completedSetCounts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID), attribute.String("muscle", muscle))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ws.exercise_id, COUNT(*)
			FROM workout_set ws
			JOIN workout_session s ON s.id = ws.session_id
			JOIN exercise e ON e.id = ws.exercise_id
			WHERE s.user_id = $1 AND ws.completed AND $2 = ANY(e.muscles)
			GROUP BY ws.exercise_id;`,
		userID, muscle,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var exerciseID, count int
		if err := rows.Scan(&exerciseID, &count); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		counts[exerciseID] = count
	}

	return counts, rows.Err()
}

func (r *Repo) rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		var inputType string
		if err := rows.Scan(
			&ex.ID, &ex.Name, &ex.Equipment, &ex.Muscles, &inputType,
			&ex.MinReps, &ex.MaxReps, &ex.MinDuration, &ex.MaxDuration,
			&ex.MinDistance, &ex.MaxDistance, &ex.MinWeight, &ex.MaxWeight,
			&ex.RangeEnabled, &ex.RestSeconds, &ex.UserCreated, &ex.CreatedBy, &ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ex.InputType = ParseInputType(inputType)
		exercises = append(exercises, ex)
	}

	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return exercises, nil
}
