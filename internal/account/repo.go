package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
	"github.com/2beens/liftlog/pkg"
)

var (
	ErrUserNotFound   = apperr.NotFound("user not found")
	ErrUserExists     = apperr.Conflict("username or email already taken")
	ErrPrivateProfile = apperr.Permission("this profile is private")
)

const userColumns = `
	u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.gender, u.birthday,
	u.preferred_weight_unit, u.preferred_distance_unit, u.preferred_measurement_unit,
	u.privacy_setting, u.range_enabled, u.recommend_enabled,
	u.exp, u.level, u.streak, u.created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the user through q, usually the registration transaction.
func Create(ctx context.Context, q db.Querier, user *User) error {
	err := q.QueryRow(
		ctx,
		`
			INSERT INTO users
				(username, email, password_hash, first_name, last_name, gender, birthday,
				 preferred_weight_unit, preferred_distance_unit, preferred_measurement_unit,
				 privacy_setting, range_enabled, recommend_enabled, exp, level, streak)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, 1, 0)
			RETURNING id, exp, level, streak, created_at;`,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Gender, user.Birthday,
		user.Prefs.Weight, user.Prefs.Distance, user.Prefs.Length,
		user.Privacy, user.RangeEnabled, user.RecommendEnabled,
	).Scan(&user.ID, &user.Exp, &user.Level, &user.Streak, &user.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("insert user [%s]: %w", user.Username, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email)
}

func (r *Repo) getOne(ctx context.Context, sql string, arg any) (*User, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users, err := rows2users(rows)
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

func (r *Repo) Settings(ctx context.Context, userID int) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.settings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	var s Settings
	err = r.db.QueryRow(
		ctx,
		`
			SELECT preferred_weight_unit, preferred_distance_unit, preferred_measurement_unit,
				privacy_setting, range_enabled, recommend_enabled
			FROM users WHERE id = $1;`,
		userID,
	).Scan(&s.Weight, &s.Distance, &s.Length, &s.Privacy, &s.RangeEnabled, &s.RecommendEnabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repo) UpdateSettings(ctx context.Context, userID int, s Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE users
			SET preferred_weight_unit = $2, preferred_distance_unit = $3, preferred_measurement_unit = $4,
				privacy_setting = $5, range_enabled = $6, recommend_enabled = $7
			WHERE id = $1;`,
		userID, s.Weight, s.Distance, s.Length, s.Privacy, s.RangeEnabled, s.RecommendEnabled,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Search finds users whose username starts with prefix (case-insensitive).
func (r *Repo) Search(ctx context.Context, prefix string, limit int) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("prefix", prefix))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+userColumns+` FROM users u
			WHERE u.username ILIKE $1 || '%'
			ORDER BY u.username
			LIMIT $2;`,
		prefix, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2users(rows)
}

// CanView reports whether viewerID may read ownerID's profile and workouts:
// the owner, anyone for public accounts, followers for private ones.
func (r *Repo) CanView(ctx context.Context, viewerID, ownerID int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.account.canView")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if viewerID > 0 && viewerID == ownerID {
		return true, nil
	}

	var allowed bool
	err = r.db.QueryRow(
		ctx,
		`
			SELECT u.privacy_setting = 'public'
				OR EXISTS (SELECT 1 FROM follow f WHERE f.follower_id = $1 AND f.followed_id = u.id)
			FROM users u WHERE u.id = $2;`,
		viewerID, ownerID,
	).Scan(&allowed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}

	return allowed, nil
}

func rows2users(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		var (
			u                                    User
			weightUnit, distanceUnit, lengthUnit string
			privacy                              string
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Gender, &u.Birthday,
			&weightUnit, &distanceUnit, &lengthUnit,
			&privacy, &u.RangeEnabled, &u.RecommendEnabled,
			&u.Exp, &u.Level, &u.Streak, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		u.Prefs = units.Prefs{
			Weight:   units.WeightUnit(weightUnit),
			Distance: units.DistanceUnit(distanceUnit),
			Length:   units.LengthUnit(lengthUnit),
		}
		u.Privacy = Privacy(privacy)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
