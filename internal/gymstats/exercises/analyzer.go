package exercises

import (
	"context"
	"sort"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type ExercisePercentageInfo struct {
	ExerciseID   int     `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Percentage   float64 `json:"percentage"`
}

type Analyzer struct {
	repo exercisesRepo
}

func NewAnalyzer(repo exercisesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// MuscleDistribution returns the share of completed sets per exercise for
// a muscle tag. Exercises never performed are listed with 0.
func (a *Analyzer) MuscleDistribution(
	ctx context.Context,
	userID int,
	muscle string,
) (_ []ExercisePercentageInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.exercises.muscleDistribution")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle", muscle))

	catalog, err := a.repo.List(ctx, ListParams{UserID: userID, Muscle: muscle})
	if err != nil {
		return nil, err
	}

	counts, err := a.repo.CompletedSetCounts(ctx, userID, muscle)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	distribution := make([]ExercisePercentageInfo, 0, len(catalog))
	for _, ex := range catalog {
		info := ExercisePercentageInfo{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Sets:         counts[ex.ID],
		}
		if total > 0 {
			p := float64(info.Sets) / float64(total) * 100
			// leave only 2 decimals
			info.Percentage = float64(int(p*100)) / 100
		}
		distribution = append(distribution, info)
	}

	sort.SliceStable(distribution, func(i, j int) bool {
		if distribution[i].Sets != distribution[j].Sets {
			return distribution[i].Sets > distribution[j].Sets
		}
		return distribution[i].ExerciseName < distribution[j].ExerciseName
	})

	return distribution, nil
}
