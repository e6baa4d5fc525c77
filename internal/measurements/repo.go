package measurements

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
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

var (
	ErrMeasurementNotFound = apperr.NotFound("measurement not found")
	ErrLastWeight          = apperr.Conflict("the last weight measurement cannot be deleted")
)

// Insert logs m through q, usually a transaction.
func Insert(ctx context.Context, q db.Querier, m *Measurement) error {
	err := q.QueryRow(
		ctx,
		`
			INSERT INTO measurement (user_id, type, value, measured_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		m.UserID, string(m.Type), m.Value, m.MeasuredAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert measurement [%s]: %w", m.Type, err)
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

func (r *Repo) Add(ctx context.Context, m *Measurement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return Insert(ctx, r.db, m)
}

// List returns the user's measurements, newest first. An empty type lists all.
func (r *Repo) List(ctx context.Context, userID int, t Type) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", string(t)))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, type, value, measured_at
			FROM measurement
			WHERE user_id = $1 AND ($2::text = '' OR type = $2)
			ORDER BY measured_at DESC, id DESC;`,
		userID, string(t),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Measurement
	for rows.Next() {
		var (
			m       Measurement
			mType   string
			created time.Time
		)
		if err := rows.Scan(&m.ID, &m.UserID, &mType, &m.Value, &created); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		m.Type = Type(mType)
		m.MeasuredAt = created
		list = append(list, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// Delete removes one of the user's measurements, refusing to remove their
// last weight entry. The user row is locked so concurrent deletes serialize.
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
			return fmt.Errorf("lock user %d: %w", userID, err)
		}

		var mType string
		err := tx.QueryRow(
			ctx,
			`SELECT type FROM measurement WHERE id = $1 AND user_id = $2`,
			id, userID,
		).Scan(&mType)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMeasurementNotFound
		}
		if err != nil {
			return err
		}

		if Type(mType) == Weight {
			var weights int
			if err := tx.QueryRow(
				ctx,
				`SELECT COUNT(*) FROM measurement WHERE user_id = $1 AND type = 'weight'`,
				userID,
			).Scan(&weights); err != nil {
				return err
			}
			if weights <= 1 {
				return ErrLastWeight
			}
		}

		_, err = tx.Exec(ctx, `DELETE FROM measurement WHERE id = $1`, id)
		return err
	})
}
