package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

var ErrUserNotFound = apperr.NotFound("user not found")

const sessionColumns = `
	id, user_id, session_date, title, description, photo, rating, duration,
	volume, exp_gained, sets_completed, total_reps, snapshot`

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: db,
	}
}

func (s *PgStore) InTx(ctx context.Context, fn func(tx TxStore) error) error {
	return db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&pgTxStore{tx: tx})
	})
}

func (s *PgStore) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return getSession(ctx, s.db, `SELECT `+sessionColumns+` FROM workout_session WHERE id = $1`, id)
}

// Feed lists the sessions of userID and of the users they follow, newest
// first with ties broken by id.
func (s *PgStore) Feed(ctx context.Context, userID, limit, offset int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := s.db.Query(
		ctx,
		`
			SELECT `+sessionColumns+` FROM workout_session
			WHERE user_id = $1
				OR user_id IN (SELECT followed_id FROM follow WHERE follower_id = $1)
			ORDER BY session_date DESC, id DESC
			LIMIT $2 OFFSET $3;`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sessions(rows)
}

type pgTxStore struct {
	tx pgx.Tx
}

func (s *pgTxStore) LockUser(ctx context.Context, userID int) (*Owner, error) {
	owner := &Owner{ID: userID}
	var weightUnit, distanceUnit, lengthUnit string
	err := s.tx.QueryRow(
		ctx,
		`
			SELECT preferred_weight_unit, preferred_distance_unit, preferred_measurement_unit,
				exp, level, streak
			FROM users WHERE id = $1
			FOR UPDATE;`,
		userID,
	).Scan(
		&weightUnit, &distanceUnit, &lengthUnit,
		&owner.Progress.Exp, &owner.Progress.Level, &owner.Progress.Streak,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user %d: %w", userID, err)
	}

	owner.Prefs = units.Prefs{
		Weight:   units.WeightUnit(weightUnit),
		Distance: units.DistanceUnit(distanceUnit),
		Length:   units.LengthUnit(lengthUnit),
	}

	return owner, nil
}

func (s *pgTxStore) LatestBodyweight(ctx context.Context, userID int) (float64, bool, error) {
	var kg float64
	err := s.tx.QueryRow(
		ctx,
		`
			SELECT value FROM measurement
			WHERE user_id = $1 AND type = 'weight'
			ORDER BY measured_at DESC, id DESC
			LIMIT 1;`,
		userID,
	).Scan(&kg)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return kg, true, nil
}

func (s *pgTxStore) CountSessions(ctx context.Context, userID int, from, to time.Time) (int, error) {
	var count int
	err := s.tx.QueryRow(
		ctx,
		`
			SELECT COUNT(*) FROM workout_session
			WHERE user_id = $1 AND session_date >= $2 AND session_date < $3;`,
		userID, from, to,
	).Scan(&count)
	return count, err
}

func (s *pgTxStore) InsertSession(ctx context.Context, session *Session) error {
	return s.tx.QueryRow(
		ctx,
		`
			INSERT INTO workout_session
				(user_id, session_date, title, description, photo, rating, duration, volume, snapshot)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
			RETURNING id;`,
		session.UserID, session.Date, session.Title, session.Description, session.Photo,
		session.Rating, session.Duration, []byte(session.Snapshot),
	).Scan(&session.ID)
}

func (s *pgTxStore) InsertSet(ctx context.Context, set *history.Set) error {
	return history.InsertSet(ctx, s.tx, set)
}

func (s *pgTxStore) FinishSession(ctx context.Context, session *Session) error {
	tag, err := s.tx.Exec(
		ctx,
		`
			UPDATE workout_session
			SET volume = $2, exp_gained = $3, sets_completed = $4, total_reps = $5
			WHERE id = $1;`,
		session.ID, session.Volume, session.ExpGained, session.SetsCompleted, session.TotalReps,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("session %d: unexpected rows affected: %d", session.ID, tag.RowsAffected())
	}
	return nil
}

func (s *pgTxStore) UpdateProgress(ctx context.Context, userID int, p experience.Progress) error {
	_, err := s.tx.Exec(
		ctx,
		`UPDATE users SET exp = $2, level = $3, streak = $4 WHERE id = $1;`,
		userID, p.Exp, p.Level, p.Streak,
	)
	return err
}

func (s *pgTxStore) GetSessionForUpdate(ctx context.Context, id int) (*Session, error) {
	return getSession(ctx, s.tx, `SELECT `+sessionColumns+` FROM workout_session WHERE id = $1 FOR UPDATE`, id)
}

func (s *pgTxStore) DeleteSession(ctx context.Context, id int) error {
	// sets, likes and comments go with it (ON DELETE CASCADE)
	tag, err := s.tx.Exec(ctx, `DELETE FROM workout_session WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func getSession(ctx context.Context, q db.Querier, sql string, id int) (*Session, error) {
	rows, err := q.Query(ctx, sql, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}
	return &sessions[0], nil
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var (
			s        Session
			snapshot []byte
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Date, &s.Title, &s.Description, &s.Photo, &s.Rating, &s.Duration,
			&s.Volume, &s.ExpGained, &s.SetsCompleted, &s.TotalReps, &snapshot,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		s.Snapshot = snapshot
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
