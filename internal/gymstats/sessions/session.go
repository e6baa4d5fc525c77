// Package sessions ingests completed workouts and owns their lifecycle.
package sessions

import (
	"encoding/json"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/units"
)

// Session is one recorded workout. Canonical units throughout; immutable
// once committed.
type Session struct {
	ID            int             `json:"id"`
	UserID        int             `json:"user_id"`
	Date          time.Time       `json:"session_date"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Photo         *string         `json:"photo,omitempty"`
	Rating        int             `json:"rating"`
	Duration      int             `json:"duration"`
	Volume        float64         `json:"volume"`
	ExpGained     int             `json:"exp_gained"`
	SetsCompleted int             `json:"sets_completed"`
	TotalReps     int             `json:"total_reps"`
	Snapshot      json.RawMessage `json:"-"`
}

// DurationLabel is the "N minutes" display form of the duration.
func (s *Session) DurationLabel() string {
	return units.FormatMinutes(s.Duration)
}

// Owner is the ingesting user's state, read under a row lock.
type Owner struct {
	ID       int
	Prefs    units.Prefs
	Progress experience.Progress
}

// SetCandidate is one set as submitted, in the user's display units.
type SetCandidate struct {
	Completed        bool     `json:"completed"`
	SetType          string   `json:"set_type" validate:"max=20"`
	Weight           *float64 `json:"weight,omitempty"`
	Reps             *int     `json:"reps,omitempty"`
	Time             *int     `json:"time,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	AdditionalWeight *float64 `json:"additional_weight,omitempty"`
	AssistanceWeight *float64 `json:"assistance_weight,omitempty"`
}

// SetDefaults fill weight and time of sets that omit them.
type SetDefaults struct {
	Weight *float64 `json:"weight,omitempty"`
	Time   *int     `json:"time,omitempty"`
}

type ExerciseEntry struct {
	ID       int            `json:"id" validate:"gt=0"`
	Defaults *SetDefaults   `json:"defaults,omitempty"`
	Sets     []SetCandidate `json:"sets" validate:"dive"`
}

// IngestRequest is the completed workout payload.
type IngestRequest struct {
	Title       string        `json:"title" validate:"max=200"`
	Description string        `json:"description" validate:"max=5000"`
	Rating      int           `json:"rating" validate:"omitempty,min=1,max=5"`
	Duration    units.Seconds `json:"duration" validate:"gte=0"`
	Photo       *string       `json:"photo,omitempty"`
	// Volume, SetsCompleted and TotalReps are the client's own tallies.
	// They are kept in the snapshot only; the server recomputes them.
	Volume        float64         `json:"volume"`
	ExpGained     int             `json:"exp_gained" validate:"gte=0,lte=10000"`
	SetsCompleted int             `json:"sets_completed"`
	TotalReps     int             `json:"total_reps"`
	Exercises     []ExerciseEntry `json:"exercises" validate:"dive"`
}

type IngestResult struct {
	Success   bool `json:"success"`
	SessionID int  `json:"session_id"`
	ExpGained int  `json:"exp_gained"`
}

const (
	defaultRating = 5
	defaultTitle  = "Workout"
)
