// Package routines stores workout templates and the public snapshots users
// browse and copy.
package routines

import (
	"time"

	"github.com/2beens/liftlog/internal/gymstats/sessions"
)

type Routine struct {
	ID          int                         `json:"id"`
	UserID      int                         `json:"user_id"`
	Name        string                      `json:"name"`
	Level       string                      `json:"level"`
	Goal        string                      `json:"goal"`
	Muscles     []string                    `json:"muscles"`
	Description string                      `json:"description"`
	Exercises   []sessions.TemplateExercise `json:"exercises"`
	IsPublic    bool                        `json:"is_public"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// SharedRoutine is the public snapshot of a routine. It follows the routine
// while public and is kept unchanged when the routine goes private.
type SharedRoutine struct {
	ID          int                         `json:"id"`
	RoutineID   int                         `json:"routine_id"`
	UserID      int                         `json:"user_id"`
	Username    string                      `json:"username"`
	Name        string                      `json:"name"`
	Level       string                      `json:"level"`
	Goal        string                      `json:"goal"`
	Muscles     []string                    `json:"muscles"`
	Description string                      `json:"description"`
	Exercises   []sessions.TemplateExercise `json:"exercises"`
	CopyCount   int                         `json:"copy_count"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

type SharedPage struct {
	Routines []SharedRoutine `json:"routines"`
	Total    int             `json:"total"`
}

type RoutineRequest struct {
	Name        string                      `json:"name" validate:"required,max=100"`
	Level       string                      `json:"level" validate:"max=50"`
	Goal        string                      `json:"goal" validate:"max=100"`
	Muscles     []string                    `json:"muscles" validate:"max=20,dive,max=50"`
	Description string                      `json:"description" validate:"max=1000"`
	Exercises   []sessions.TemplateExercise `json:"exercises" validate:"min=1,max=50"`
	IsPublic    bool                        `json:"is_public"`
}
