// Package stats builds the read-side aggregations: weekly summaries,
// per-exercise trends and the grouped session view.
package stats

import (
	"time"

	"github.com/2beens/liftlog/internal/gymstats/progression"
)

// Totals summarizes the sessions of one window.
type Totals struct {
	Sessions int     `json:"sessions"`
	Volume   float64 `json:"volume"`
	Duration int     `json:"duration"`
	Exp      int     `json:"exp"`
}

// Comparison holds -1/0/+1 per metric, current week against the previous.
type Comparison struct {
	Sessions int `json:"sessions"`
	Volume   int `json:"volume"`
	Duration int `json:"duration"`
	Exp      int `json:"exp"`
}

type WeeklyStats struct {
	WeekStart     time.Time  `json:"week_start"`
	Current       Totals     `json:"current"`
	Previous      Totals     `json:"previous"`
	Comparison    Comparison `json:"comparison"`
	DurationLabel string     `json:"duration_label"`
}

// WeekStart returns Monday 00:00 UTC of t's ISO week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

func compareTotals(current, previous Totals) Comparison {
	return Comparison{
		Sessions: progression.Compare(float64(current.Sessions), float64(previous.Sessions)),
		Volume:   progression.Compare(current.Volume, previous.Volume),
		Duration: progression.Compare(float64(current.Duration), float64(previous.Duration)),
		Exp:      progression.Compare(float64(current.Exp), float64(previous.Exp)),
	}
}
