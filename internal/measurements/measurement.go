// Package measurements logs body measurements. Values are stored in
// canonical units and never change after logging.
package measurements

import (
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/units"
)

type Type string

const (
	Weight   Type = "weight"
	BodyFat  Type = "body_fat"
	Chest    Type = "chest"
	Waist    Type = "waist"
	Hips     Type = "hips"
	Neck     Type = "neck"
	Biceps   Type = "biceps"
	Forearms Type = "forearms"
	Calves   Type = "calves"
	Thighs   Type = "thighs"
)

type Kind int

const (
	KindWeight Kind = iota
	KindPercent
	KindLength
)

// Limit is an inclusive canonical range (kg, %, cm).
type Limit struct {
	Min, Max float64
}

var limits = map[Type]Limit{
	Weight:   {5, 600},
	BodyFat:  {1, 50},
	Chest:    {40, 200},
	Waist:    {40, 200},
	Hips:     {40, 200},
	Neck:     {20, 100},
	Biceps:   {10, 100},
	Forearms: {10, 100},
	Calves:   {10, 100},
	Thighs:   {20, 150},
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := limits[t]; !ok {
		return "", apperr.Validation("unknown measurement type %q", s)
	}
	return t, nil
}

func (t Type) Kind() Kind {
	switch t {
	case Weight:
		return KindWeight
	case BodyFat:
		return KindPercent
	default:
		return KindLength
	}
}

func (t Type) Limit() Limit {
	return limits[t]
}

// DisplayLimit converts the canonical limit to the user's unit.
func (t Type) DisplayLimit(prefs units.Prefs) Limit {
	l := limits[t]
	return Limit{
		Min: units.Round2(ToDisplay(t, l.Min, prefs)),
		Max: units.Round2(ToDisplay(t, l.Max, prefs)),
	}
}

func ToCanonical(t Type, v float64, prefs units.Prefs) float64 {
	switch t.Kind() {
	case KindWeight:
		return units.WeightToKg(v, prefs.Weight)
	case KindLength:
		return units.LengthToCm(v, prefs.Length)
	}
	return v
}

func ToDisplay(t Type, v float64, prefs units.Prefs) float64 {
	switch t.Kind() {
	case KindWeight:
		return units.WeightFromKg(v, prefs.Weight)
	case KindLength:
		return units.LengthFromCm(v, prefs.Length)
	}
	return v
}

type Measurement struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Type       Type      `json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	MeasuredAt time.Time `json:"measured_at"`
}

// UnitLabel names the display unit of t under prefs.
func UnitLabel(t Type, prefs units.Prefs) string {
	switch t.Kind() {
	case KindWeight:
		return string(prefs.Weight)
	case KindLength:
		return string(prefs.Length)
	}
	return "%"
}

// NewCanonical validates a display value and returns it in canonical units.
func NewCanonical(t Type, v float64, prefs units.Prefs) (float64, error) {
	canonical := ToCanonical(t, v, prefs)
	l := limits[t]
	// tolerate conversion rounding at the edges
	const eps = 1e-6
	if canonical < l.Min-eps || canonical > l.Max+eps {
		dl := t.DisplayLimit(prefs)
		return 0, apperr.Validation(
			"%s must be between %g and %g %s", t, dl.Min, dl.Max, UnitLabel(t, prefs),
		)
	}
	return canonical, nil
}
