package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Totals sums the user's sessions with session_date in [from, to).
func (r *Repo) Totals(ctx context.Context, userID int, from, to time.Time) (_ Totals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	var t Totals
	err = r.db.QueryRow(
		ctx,
		`
			SELECT COUNT(*), COALESCE(SUM(volume), 0), COALESCE(SUM(duration), 0), COALESCE(SUM(exp_gained), 0)
			FROM workout_session
			WHERE user_id = $1 AND session_date >= $2 AND session_date < $3;`,
		userID, from, to,
	).Scan(&t.Sessions, &t.Volume, &t.Duration, &t.Exp)

	return t, err
}
