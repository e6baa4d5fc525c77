// Package units converts between display units and the canonical storage
// units (kg, km, cm). Persistence and computation only ever see canonical values.
package units

import (
	"fmt"
	"math"
	"strings"
)

const (
	LbsPerKg = 2.20462
	MiPerKm  = 0.621371
	InPerCm  = 0.393701
)

type WeightUnit string

const (
	Kg  WeightUnit = "kg"
	Lbs WeightUnit = "lbs"
)

type DistanceUnit string

const (
	Km DistanceUnit = "km"
	Mi DistanceUnit = "mi"
)

type LengthUnit string

const (
	Cm LengthUnit = "cm"
	In LengthUnit = "in"
)

// Prefs are the user's preferred display units.
type Prefs struct {
	Weight   WeightUnit   `json:"preferred_weight_unit"`
	Distance DistanceUnit `json:"preferred_distance_unit"`
	Length   LengthUnit   `json:"preferred_measurement_unit"`
}

func DefaultPrefs() Prefs {
	return Prefs{Weight: Kg, Distance: Km, Length: Cm}
}

func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs":
		return Kg, nil
	case "lbs", "lb":
		return Lbs, nil
	}
	return "", fmt.Errorf("unknown weight unit: %q", s)
}

func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "km":
		return Km, nil
	case "mi", "miles":
		return Mi, nil
	}
	return "", fmt.Errorf("unknown distance unit: %q", s)
}

func ParseLengthUnit(s string) (LengthUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cm":
		return Cm, nil
	case "in", "inch", "inches":
		return In, nil
	}
	return "", fmt.Errorf("unknown length unit: %q", s)
}

// ConvertWeight converts v between weight units. Same-unit conversion is the identity.
func ConvertWeight(v float64, from, to WeightUnit) float64 {
	if from == to {
		return v
	}
	if from == Kg && to == Lbs {
		return v * LbsPerKg
	}
	return v / LbsPerKg
}

func ConvertDistance(v float64, from, to DistanceUnit) float64 {
	if from == to {
		return v
	}
	if from == Km && to == Mi {
		return v * MiPerKm
	}
	return v / MiPerKm
}

func ConvertLength(v float64, from, to LengthUnit) float64 {
	if from == to {
		return v
	}
	if from == Cm && to == In {
		return v * InPerCm
	}
	return v / InPerCm
}

func WeightToKg(v float64, from WeightUnit) float64 {
	return ConvertWeight(v, from, Kg)
}

func WeightFromKg(kg float64, to WeightUnit) float64 {
	return ConvertWeight(kg, Kg, to)
}

func DistanceToKm(v float64, from DistanceUnit) float64 {
	return ConvertDistance(v, from, Km)
}

func DistanceFromKm(km float64, to DistanceUnit) float64 {
	return ConvertDistance(km, Km, to)
}

func LengthToCm(v float64, from LengthUnit) float64 {
	return ConvertLength(v, from, Cm)
}

func LengthFromCm(cm float64, to LengthUnit) float64 {
	return ConvertLength(cm, Cm, to)
}

// Round2 rounds to two decimal places, the display precision for weights and distances.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
