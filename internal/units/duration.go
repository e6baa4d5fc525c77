package units

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	bareDigitsRegex = regexp.MustCompile(`^\d+$`)
	anyDigitRegex   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// longer spellings come first, go regexp alternation is leftmost-first
	durationPartRegex = regexp.MustCompile(
		`(?i)(\d+(?:\.\d+)?)\s*(hours|hour|hrs|hr|h|minutes|minute|mins|min|m|seconds|second|secs|sec|s)`,
	)
)

// ParseDuration turns a stored or client supplied duration into seconds.
//
//	"90"          -> 90 (bare digits are seconds)
//	"45 minutes"  -> 2700
//	"1h 15min"    -> 4500
//	"about 20"    -> 1200 (digits with no unit are minutes)
//	"n/a"         -> 0
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if bareDigitsRegex.MatchString(s) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return v
	}

	matches := durationPartRegex.FindAllStringSubmatch(s, -1)
	if len(matches) > 0 {
		var total float64
		for _, m := range matches {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			switch unit := strings.ToLower(m[2]); {
			case strings.HasPrefix(unit, "h"):
				total += v * 3600
			case strings.HasPrefix(unit, "m"):
				total += v * 60
			default:
				total += v
			}
		}
		seconds, ok := toSeconds(total)
		if !ok {
			return 0
		}
		return seconds
	}

	if digits := anyDigitRegex.FindString(s); digits != "" {
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0
		}
		seconds, ok := toSeconds(v * 60)
		if !ok {
			return 0
		}
		return seconds
	}

	return 0
}

// toSeconds truncates v to whole seconds. It reports false for NaN, infinities
// and values outside the int range.
func toSeconds(v float64) (int, bool) {
	if math.IsNaN(v) || v >= math.MaxInt || v < math.MinInt {
		return 0, false
	}
	return int(v), true
}

// FormatMinutes renders seconds the way sessions store their duration label.
func FormatMinutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d minutes", seconds/60)
}

// FormatHuman renders seconds as "1h 15min" or "15min".
func FormatHuman(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	hours := minutes / 60
	minutes = minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}

// Seconds is a JSON duration accepting either a number of seconds or a
// duration string understood by ParseDuration.
type Seconds int

func (s *Seconds) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v, ok := toSeconds(n)
		if !ok {
			return fmt.Errorf("duration %s out of range", data)
		}
		*s = Seconds(v)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("duration must be a number or a string: %w", err)
	}
	str = strings.TrimSpace(str)
	if strings.HasPrefix(str, "-") {
		if v, err := strconv.Atoi(str); err == nil {
			*s = Seconds(v)
			return nil
		}
	}
	*s = Seconds(ParseDuration(str))
	return nil
}
