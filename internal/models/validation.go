package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidInput = errors.New("inputs must be positive finite numbers")
	ErrUnknownType  = errors.New("unknown workout type")
)

// ValidationError is returned when a submission breaks an input rule.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string {
	return e.Rule
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func checkInputs(ok bool) error {
	if ok {
		return nil
	}
	return &ValidationError{Rule: ErrInvalidInput.Error()}
}

func allFinite(inputs ...float64) bool {
	for _, in := range inputs {
		if math.IsNaN(in) || math.IsInf(in, 0) {
			return false
		}
	}
	return true
}

func allPositive(inputs ...float64) bool {
	for _, in := range inputs {
		if !(in > 0) {
			return false
		}
	}
	return true
}

// RawInput is the untyped form data handed over by the UI shell.
type RawInput struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

// ParseInput coerces raw form values into a Spec. Blank values become 0 and
// unparsable ones NaN, so the type's validation rejects them later.
func ParseInput(raw RawInput, coords Coords) Spec {
	return Spec{
		Type:          WorkoutType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Coords:        coords,
		Distance:      toNumber(raw.Distance),
		Duration:      toNumber(raw.Duration),
		Cadence:       toNumber(raw.Cadence),
		ElevationGain: toNumber(raw.Elevation),
	}
}

func toNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// ParseFloat accepts "inf" and "nan" spellings; only plain numbers count.
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity", "nan":
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
