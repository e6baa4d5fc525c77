// Package account holds the user record and its storage.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/units"
)

type Privacy string

const (
	Public  Privacy = "public"
	Private Privacy = "private"
)

func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Public:
		return Public, nil
	case Private:
		return Private, nil
	}
	return "", fmt.Errorf("unknown privacy setting: %q", s)
}

// Settings are the user controlled preferences that shape reads and ingest.
type Settings struct {
	units.Prefs
	Privacy          Privacy `json:"privacy_setting"`
	RangeEnabled     bool    `json:"range_enabled"`
	RecommendEnabled bool    `json:"recommend_enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		Prefs:   units.DefaultPrefs(),
		Privacy: Public,
	}
}

type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Gender       *string    `json:"gender,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Settings
	experience.Progress
	CreatedAt time.Time `json:"created_at"`
}
