package routines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

var (
	ErrRoutineNotFound = apperr.NotFound("routine not found")
	ErrSharedNotFound  = apperr.NotFound("shared routine not found")
	ErrNotOwner        = apperr.Permission("routine belongs to another user")
)

const routineColumns = `
	id, user_id, name, level, goal, muscles, description, exercises, is_public, created_at, updated_at`

const sharedColumns = `
	s.id, s.routine_id, s.user_id, u.username, s.name, s.level, s.goal, s.muscles, s.description,
	s.exercises, s.copy_count, s.created_at, s.updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the routine and, when public, its shared snapshot.
func (r *Repo) Create(ctx context.Context, routine *Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercisesJSON, err := json.Marshal(routine.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`
				INSERT INTO routine (user_id, name, level, goal, muscles, description, exercises, is_public)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id, created_at, updated_at;`,
			routine.UserID, routine.Name, routine.Level, routine.Goal, routine.Muscles,
			routine.Description, exercisesJSON, routine.IsPublic,
		).Scan(&routine.ID, &routine.CreatedAt, &routine.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert routine: %w", err)
		}
		if !routine.IsPublic {
			return nil
		}
		return upsertShared(ctx, tx, routine.ID)
	})
}

// Update rewrites an owned routine. While public its snapshot is refreshed;
// a routine made private keeps its last snapshot.
func (r *Repo) Update(ctx context.Context, routine *Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", routine.ID))

	exercisesJSON, err := json.Marshal(routine.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockOwned(ctx, tx, routine.UserID, routine.ID); err != nil {
			return err
		}

		err := tx.QueryRow(
			ctx,
			`
				UPDATE routine
				SET name = $2, level = $3, goal = $4, muscles = $5, description = $6,
					exercises = $7, is_public = $8, updated_at = now()
				WHERE id = $1
				RETURNING created_at, updated_at;`,
			routine.ID, routine.Name, routine.Level, routine.Goal, routine.Muscles,
			routine.Description, exercisesJSON, routine.IsPublic,
		).Scan(&routine.CreatedAt, &routine.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update routine: %w", err)
		}
		if !routine.IsPublic {
			return nil
		}
		return upsertShared(ctx, tx, routine.ID)
	})
}

// Delete removes an owned routine; its snapshot goes with it.
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockOwned(ctx, tx, userID, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM routine WHERE id = $1`, id)
		return err
	})
}

func lockOwned(ctx context.Context, q db.Querier, userID, id int) error {
	var ownerID int
	err := q.QueryRow(ctx, `SELECT user_id FROM routine WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRoutineNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrNotOwner
	}
	return nil
}

func upsertShared(ctx context.Context, q db.Querier, routineID int) error {
	_, err := q.Exec(
		ctx,
		`
			INSERT INTO shared_routine (routine_id, user_id, name, level, goal, muscles, description, exercises)
			SELECT id, user_id, name, level, goal, muscles, description, exercises
			FROM routine WHERE id = $1
			ON CONFLICT (routine_id) DO UPDATE
			SET name = EXCLUDED.name, level = EXCLUDED.level, goal = EXCLUDED.goal,
				muscles = EXCLUDED.muscles, description = EXCLUDED.description,
				exercises = EXCLUDED.exercises, updated_at = now();`,
		routineID,
	)
	if err != nil {
		return fmt.Errorf("upsert shared routine %d: %w", routineID, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, `SELECT `+routineColumns+` FROM routine WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2routines(rows)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, ErrRoutineNotFound
	}
	return &list[0], nil
}

func (r *Repo) List(ctx context.Context, userID int) (_ []Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+routineColumns+` FROM routine WHERE user_id = $1 ORDER BY updated_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2routines(rows)
}

// SharedCount counts the snapshots of routines that are currently public.
func (r *Repo) SharedCount(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.sharedCount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(
		ctx,
		`
			SELECT count(*) FROM shared_routine s
			JOIN routine r ON r.id = s.routine_id
			WHERE r.is_public;`,
	).Scan(&count)
	return count, err
}

// SharedPage lists public snapshots, most copied first.
func (r *Repo) SharedPage(ctx context.Context, page, size int) (_ []SharedRoutine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.sharedPage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+sharedColumns+`
			FROM shared_routine s
			JOIN routine r ON r.id = s.routine_id
			JOIN users u ON u.id = s.user_id
			WHERE r.is_public
			ORDER BY s.copy_count DESC, s.id DESC
			LIMIT $1
			OFFSET $2;`,
		size, (page-1)*size,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2shared(rows)
}

func (r *Repo) GetShared(ctx context.Context, id int) (_ *SharedRoutine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.getShared")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+sharedColumns+`
			FROM shared_routine s
			JOIN routine r ON r.id = s.routine_id
			JOIN users u ON u.id = s.user_id
			WHERE s.id = $1 AND r.is_public;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2shared(rows)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, ErrSharedNotFound
	}
	return &list[0], nil
}

// Copy bumps the snapshot's copy_count and inserts dup as a new private
// routine in the same transaction.
func (r *Repo) Copy(ctx context.Context, sharedID int, dup *Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.copy")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("shared_id", sharedID))

	exercisesJSON, err := json.Marshal(dup.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`
				UPDATE shared_routine s SET copy_count = s.copy_count + 1
				FROM routine r
				WHERE s.id = $1 AND r.id = s.routine_id AND r.is_public;`,
			sharedID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrSharedNotFound
		}

		dup.IsPublic = false
		return tx.QueryRow(
			ctx,
			`
				INSERT INTO routine (user_id, name, level, goal, muscles, description, exercises, is_public)
				VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
				RETURNING id, created_at, updated_at;`,
			dup.UserID, dup.Name, dup.Level, dup.Goal, dup.Muscles, dup.Description, exercisesJSON,
		).Scan(&dup.ID, &dup.CreatedAt, &dup.UpdatedAt)
	})
}

func rows2routines(rows pgx.Rows) ([]Routine, error) {
	var list []Routine
	for rows.Next() {
		var (
			routine       Routine
			exercisesJSON []byte
		)
		if err := rows.Scan(
			&routine.ID, &routine.UserID, &routine.Name, &routine.Level, &routine.Goal, &routine.Muscles,
			&routine.Description, &exercisesJSON, &routine.IsPublic, &routine.CreatedAt, &routine.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJSON, &routine.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of routine %d: %w", routine.ID, err)
		}
		list = append(list, routine)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func rows2shared(rows pgx.Rows) ([]SharedRoutine, error) {
	var list []SharedRoutine
	for rows.Next() {
		var (
			shared        SharedRoutine
			exercisesJSON []byte
		)
		if err := rows.Scan(
			&shared.ID, &shared.RoutineID, &shared.UserID, &shared.Username, &shared.Name, &shared.Level,
			&shared.Goal, &shared.Muscles, &shared.Description, &exercisesJSON, &shared.CopyCount,
			&shared.CreatedAt, &shared.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJSON, &shared.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of shared routine %d: %w", shared.ID, err)
		}
		list = append(list, shared)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
