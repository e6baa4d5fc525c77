package users

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/measurements"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: db,
	}
}

// Register creates the user and the initial bodyweight measurement atomically.
func (s *PgStore) Register(ctx context.Context, user *account.User, weightKg float64, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := account.Create(ctx, tx, user); err != nil {
			return err
		}
		return measurements.Insert(ctx, tx, &measurements.Measurement{
			UserID:     user.ID,
			Type:       measurements.Weight,
			Value:      weightKg,
			MeasuredAt: at,
		})
	})
}
