// Package experience derives EXP, level and streak changes for sessions.
package experience

import "time"

const (
	ExpPerLevel = 100

	RecentWindow = 7 * 24 * time.Hour
)

// Progress is the user's EXP state.
type Progress struct {
	Exp    int `json:"exp"`
	Level  int `json:"level"`
	Streak int `json:"streak"`
}

// Activity describes the user's history relative to the session being ingested.
// The session itself is never counted.
type Activity struct {
	RecentSessions        int
	WorkedOutYesterday    bool
	WorkedOutEarlierToday bool
}

type Award struct {
	BaseExp          int      `json:"base_exp"`
	FrequencyBonus   int      `json:"frequency_bonus"`
	StreakBonus      int      `json:"streak_bonus"`
	ExpGained        int      `json:"exp_gained"`
	Progress         Progress `json:"progress"`
	LevelledUp       bool     `json:"levelled_up"`
	PreviousProgress Progress `json:"-"`
}

func LevelFor(exp int) int {
	return max(1, exp/ExpPerLevel)
}

func NextLevelExp(level int) int {
	return (level + 1) * ExpPerLevel
}

func Badge(level int) string {
	switch {
	case level >= 16:
		return "Expert"
	case level >= 6:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

func frequencyBonus(recentSessions int) int {
	switch {
	case recentSessions >= 3:
		return 20
	case recentSessions >= 1:
		return 10
	default:
		return 0
	}
}

func streakBonus(streak int) int {
	switch {
	case streak >= 7:
		return 30
	case streak >= 3:
		return 15
	default:
		return 0
	}
}

func nextStreak(streak int, a Activity) int {
	switch {
	case a.WorkedOutEarlierToday:
		// today already counted
		return max(streak, 1)
	case a.WorkedOutYesterday:
		return streak + 1
	default:
		return 1
	}
}

// Apply computes the EXP award for a new session and the resulting progress.
func Apply(p Progress, baseExp int, a Activity) Award {
	streak := nextStreak(p.Streak, a)
	award := Award{
		BaseExp:          baseExp,
		FrequencyBonus:   frequencyBonus(a.RecentSessions),
		StreakBonus:      streakBonus(streak),
		PreviousProgress: p,
	}
	award.ExpGained = award.BaseExp + award.FrequencyBonus + award.StreakBonus

	exp := max(0, p.Exp+award.ExpGained)
	award.Progress = Progress{
		Exp:    exp,
		Level:  LevelFor(exp),
		Streak: streak,
	}
	award.LevelledUp = award.Progress.Level > LevelFor(p.Exp)

	return award
}

// Revert removes the EXP a deleted session granted. The streak is kept.
func Revert(p Progress, expGained int) Progress {
	exp := max(0, p.Exp-expGained)
	return Progress{
		Exp:    exp,
		Level:  LevelFor(exp),
		Streak: p.Streak,
	}
}

// DayStart returns 00:00 UTC of t's calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YesterdayWindow returns [yesterday 00:00, today 00:00) in UTC.
func YesterdayWindow(now time.Time) (time.Time, time.Time) {
	today := DayStart(now)
	return today.AddDate(0, 0, -1), today
}
