package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/gymstats/stats"
	"github.com/2beens/liftlog/internal/measurements"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
	"github.com/2beens/liftlog/pkg"
)

const searchLimit = 20

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	errBirthdayInFuture   = errors.New("birthday is in the future")
)

var validate = validator.New()

type registrar interface {
	Register(ctx context.Context, user *account.User, weightKg float64, at time.Time) error
}

type accountStore interface {
	Get(ctx context.Context, id int) (*account.User, error)
	GetByEmail(ctx context.Context, email string) (*account.User, error)
	Settings(ctx context.Context, userID int) (*account.Settings, error)
	UpdateSettings(ctx context.Context, userID int, s account.Settings) error
	Search(ctx context.Context, prefix string, limit int) ([]account.User, error)
	CanView(ctx context.Context, viewerID, ownerID int) (bool, error)
}

type tokenIssuer interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type weeklyReader interface {
	Weekly(ctx context.Context, viewerID, userID int) (*stats.WeeklyStats, error)
}

type Service struct {
	registrar registrar
	accounts  accountStore
	tokens    tokenIssuer
	weekly    weeklyReader
	// ability to inject the clock (for unit testing)
	Now func() time.Time
}

func NewService(
	registrar registrar,
	accounts accountStore,
	tokens tokenIssuer,
	weekly weeklyReader,
) *Service {
	return &Service{
		registrar: registrar,
		accounts:  accounts,
		tokens:    tokens,
		weekly:    weekly,
		Now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (_ *account.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("invalid registration: %s", err)
	}

	now := s.Now().UTC()
	birthday, err := parseBirthday(req.Birthday, now)
	if err != nil {
		return nil, apperr.Validation("invalid birthday %q, expected YYYY-MM-DD", req.Birthday)
	}

	settings := account.DefaultSettings()
	if err := applyPreferences(&settings, PreferencesRequest{
		WeightUnit:      nonEmpty(req.WeightUnit),
		DistanceUnit:    nonEmpty(req.DistanceUnit),
		MeasurementUnit: nonEmpty(req.MeasurementUnit),
		Privacy:         nonEmpty(req.Privacy),
	}); err != nil {
		return nil, err
	}

	weightKg, err := measurements.NewCanonical(measurements.Weight, req.Weight, settings.Prefs)
	if err != nil {
		return nil, err
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &account.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       nonEmpty(req.Gender),
		Birthday:     birthday,
		Settings:     settings,
	}
	if err := s.registrar.Register(ctx, user, weightKg, now); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("user_id", user.ID))

	log.Debugf("user %d [%s] registered", user.ID, user.Username)
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (_ *LoginResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.accounts.GetByEmail(ctx, req.Email)
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Login(ctx, user.ID, s.Now())
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	removed, err := s.tokens.Logout(ctx, token)
	if err != nil {
		return err
	}
	if !removed {
		log.Debugf("logout: no live session for token")
	}
	return nil
}

func (s *Service) Me(ctx context.Context, userID int) (*Profile, error) {
	return s.Profile(ctx, userID, userID)
}

// Profile returns userID's profile as seen by viewerID. Private profiles are
// readable by the owner and followers only.
func (s *Service) Profile(ctx context.Context, viewerID, userID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	canView, err := s.accounts.CanView(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, account.ErrPrivateProfile
	}

	user, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewerID != userID {
		user.Email = ""
		user.Birthday = nil
	}

	profile := &Profile{
		User:         user,
		Badge:        experience.Badge(user.Level),
		NextLevelExp: experience.NextLevelExp(user.Level),
	}

	weekly, err := s.weekly.Weekly(ctx, viewerID, userID)
	if err != nil {
		log.Errorf("profile %d: weekly stats: %s", userID, err)
	} else {
		profile.Weekly = weekly
	}

	return profile, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID int, req PreferencesRequest) (_ *account.Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.updatePreferences")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	settings, err := s.accounts.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyPreferences(settings, req); err != nil {
		return nil, err
	}
	if err := s.accounts.UpdateSettings(ctx, userID, *settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *Service) Search(ctx context.Context, query string) (_ []PublicUser, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return []PublicUser{}, nil
	}
	// the prefix goes into ILIKE
	query = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query)

	found, err := s.accounts.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	result := make([]PublicUser, 0, len(found))
	for _, u := range found {
		result = append(result, PublicUser{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Level:     u.Level,
		})
	}
	return result, nil
}

func applyPreferences(settings *account.Settings, req PreferencesRequest) error {
	if req.WeightUnit != nil {
		u, err := units.ParseWeightUnit(*req.WeightUnit)
		if err != nil {
			return apperr.Validation("%s", err)
		}
		settings.Weight = u
	}
	if req.DistanceUnit != nil {
		u, err := units.ParseDistanceUnit(*req.DistanceUnit)
		if err != nil {
			return apperr.Validation("%s", err)
		}
		settings.Distance = u
	}
	if req.MeasurementUnit != nil {
		u, err := units.ParseLengthUnit(*req.MeasurementUnit)
		if err != nil {
			return apperr.Validation("%s", err)
		}
		settings.Length = u
	}
	if req.Privacy != nil {
		p, err := account.ParsePrivacy(*req.Privacy)
		if err != nil {
			return apperr.Validation("%s", err)
		}
		settings.Privacy = p
	}
	if req.RangeEnabled != nil {
		settings.RangeEnabled = *req.RangeEnabled
	}
	if req.RecommendEnabled != nil {
		settings.RecommendEnabled = *req.RecommendEnabled
	}
	return nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
