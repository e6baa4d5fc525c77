package sessions

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type TemplateExercise struct {
	ExerciseID  int                 `json:"exercise_id"`
	Name        string              `json:"name"`
	InputType   exercises.InputType `json:"input_type"`
	RestSeconds int                 `json:"rest_seconds"`
	Sets        []SetCandidate      `json:"sets"`
}

// Template is a workout rebuilt from a stored session snapshot, ready to be
// performed again.
type Template struct {
	SourceSessionID int                `json:"source_session_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Exercises       []TemplateExercise `json:"exercises"`
}

// Repeat rebuilds the owner's session as a template. Exercises no longer
// in the catalog and sets that were not completed are left out.
func (s *Service) Repeat(ctx context.Context, userID, sessionID int) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.repeat")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", sessionID))

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwner
	}

	var snapshot IngestRequest
	if len(session.Snapshot) > 0 {
		if err := json.Unmarshal(session.Snapshot, &snapshot); err != nil {
			return nil, apperr.Integrity(fmt.Errorf("unmarshal snapshot %d: %w", sessionID, err), "workout snapshot unreadable")
		}
	}

	template := &Template{
		SourceSessionID: session.ID,
		Title:           session.Title,
		Description:     session.Description,
		Exercises:       []TemplateExercise{},
	}
	for _, entry := range snapshot.Exercises {
		ex, err := s.catalog.Get(ctx, entry.ID)
		if err != nil {
			if !apperr.Is(err, apperr.KindNotFound) {
				log.Errorf("repeat session %d: get exercise %d: %s", sessionID, entry.ID, err)
			}
			continue
		}

		te := TemplateExercise{
			ExerciseID:  ex.ID,
			Name:        ex.Name,
			InputType:   ex.InputType,
			RestSeconds: ex.RestSeconds,
			Sets:        []SetCandidate{},
		}
		for _, set := range entry.Sets {
			if !set.Completed {
				continue
			}
			set.Completed = false
			te.Sets = append(te.Sets, set)
		}
		if len(te.Sets) == 0 {
			continue
		}
		template.Exercises = append(template.Exercises, te)
	}

	return template, nil
}
