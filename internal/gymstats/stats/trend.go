package stats

import (
	"math"

	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/units"
)

// TrendPoint aggregates one calendar day of an exercise, display units.
// MinAssistanceWeight is 0 when no set used assistance.
type TrendPoint struct {
	Date                string  `json:"date"`
	Sets                int     `json:"sets"`
	Volume              float64 `json:"volume"`
	MaxWeight           float64 `json:"max_weight"`
	TotalReps           int     `json:"total_reps"`
	TotalDuration       int     `json:"total_duration"`
	TotalDistance       float64 `json:"total_distance"`
	MaxAdditionalWeight float64 `json:"max_additional_weight"`
	MinAssistanceWeight float64 `json:"min_assistance_weight"`
}

// BuildTrend groups completed sets by UTC calendar date, in input order.
func BuildTrend(sets []history.Set, prefs units.Prefs) []TrendPoint {
	points := []TrendPoint{}
	index := map[string]int{}

	for _, s := range sets {
		if !s.Completed {
			continue
		}
		date := s.SessionDate.UTC().Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			points = append(points, TrendPoint{Date: date})
			i = len(points) - 1
			index[date] = i
		}
		p := &points[i]

		p.Sets++
		p.Volume += s.Volume
		if s.Weight != nil {
			p.MaxWeight = math.Max(p.MaxWeight, *s.Weight)
		}
		if s.Reps != nil {
			p.TotalReps += *s.Reps
		}
		if s.Time != nil {
			p.TotalDuration += *s.Time
		}
		if s.Distance != nil {
			p.TotalDistance += *s.Distance
		}
		if s.AdditionalWeight != nil {
			p.MaxAdditionalWeight = math.Max(p.MaxAdditionalWeight, *s.AdditionalWeight)
		}
		if s.AssistanceWeight != nil && *s.AssistanceWeight > 0 {
			if p.MinAssistanceWeight == 0 || *s.AssistanceWeight < p.MinAssistanceWeight {
				p.MinAssistanceWeight = *s.AssistanceWeight
			}
		}
	}

	for i := range points {
		p := &points[i]
		p.Volume = units.Round2(p.Volume)
		p.MaxWeight = units.Round2(units.WeightFromKg(p.MaxWeight, prefs.Weight))
		p.MaxAdditionalWeight = units.Round2(units.WeightFromKg(p.MaxAdditionalWeight, prefs.Weight))
		p.MinAssistanceWeight = units.Round2(units.WeightFromKg(p.MinAssistanceWeight, prefs.Weight))
		p.TotalDistance = units.Round2(units.DistanceFromKm(p.TotalDistance, prefs.Distance))
	}

	return points
}
