// Package users covers registration, login and the profile surface.
package users

import (
	"time"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/gymstats/stats"
)

const birthdayLayout = "2006-01-02"

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	// Birthday is YYYY-MM-DD.
	Birthday string `json:"birthday"`
	Privacy  string `json:"privacy_setting"`

	WeightUnit      string `json:"preferred_weight_unit"`
	DistanceUnit    string `json:"preferred_distance_unit"`
	MeasurementUnit string `json:"preferred_measurement_unit"`

	// Weight is the initial bodyweight in the preferred weight unit.
	Weight float64 `json:"weight" validate:"required,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string        `json:"token"`
	User  *account.User `json:"user"`
}

// PreferencesRequest updates only the fields that are set.
type PreferencesRequest struct {
	WeightUnit       *string `json:"preferred_weight_unit"`
	DistanceUnit     *string `json:"preferred_distance_unit"`
	MeasurementUnit  *string `json:"preferred_measurement_unit"`
	Privacy          *string `json:"privacy_setting"`
	RangeEnabled     *bool   `json:"range_enabled"`
	RecommendEnabled *bool   `json:"recommend_enabled"`
}

type Profile struct {
	*account.User
	Badge        string             `json:"badge"`
	NextLevelExp int                `json:"next_level_exp"`
	Weekly       *stats.WeeklyStats `json:"weekly_stats,omitempty"`
}

// PublicUser is the search result view of a user.
type PublicUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Level     int    `json:"level"`
}

func parseBirthday(s string, now time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	b, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return nil, err
	}
	if b.After(now) {
		return nil, errBirthdayInFuture
	}
	return &b, nil
}
