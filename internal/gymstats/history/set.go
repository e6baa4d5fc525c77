// Package history is the append-only log of completed sets.
package history

import (
	"time"

	"github.com/2beens/liftlog/internal/gymstats/volume"
)

const DefaultSetType = "normal"

// Set is one persisted execution of an exercise within a session.
// Field values are canonical (kg, km, seconds).
type Set struct {
	ID          int     `json:"id"`
	SessionID   int     `json:"session_id"`
	ExerciseID  int     `json:"exercise_id"`
	Order       int     `json:"order"`
	Completed   bool    `json:"completed"`
	SetType     string  `json:"set_type"`
	Volume      float64 `json:"volume"`
	WithinRange bool    `json:"within_range"`
	volume.Fields

	// SessionDate is filled on reads joined with the parent session.
	SessionDate time.Time `json:"session_date,omitzero"`
}
