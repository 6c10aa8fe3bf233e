// Package angle converts between radians and sexagesimal string notation.
package angle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a string is not a three-field
// colon-separated sexagesimal value.
var ErrInvalidFormat = errors.New("invalid sexagesimal format")

// Sexagesimal formats a decimal angle (pre-scaled to hours or degrees) as
// D:MM:SS.ss. The sign is applied to the leading field only; minutes and
// seconds are always rendered non-negative and zero-padded.
func Sexagesimal(value float64) string {
	sign := ""
	if math.Signbit(value) {
		sign = "-"
		value = -value
	}

	// Work in hundredths of a second so the rendered seconds field can
	// never round up to 60.00.
	total := int64(math.Round(value * 360000))
	degrees := total / 360000
	minutes := (total % 360000) / 6000
	seconds := float64(total%6000) / 100

	return fmt.Sprintf("%s%d:%02d:%05.2f", sign, degrees, minutes, seconds)
}

// ParseSexagesimal parses a D:MM:SS.ss string into a decimal angle in the
// same unit as the leading field. The sign of the leading field propagates
// to the minutes and seconds fields, so "-10:30:00" parses as -10.5.
func ParseSexagesimal(s string) (float64, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	c, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	// Signbit also catches "-0", which ParseFloat preserves.
	if math.Signbit(a) {
		b = -math.Abs(b)
		c = -math.Abs(c)
	}

	return a + b/60 + c/3600, nil
}

// RAToRadians parses a right ascension in HH:MM:SS.S notation into radians.
func RAToRadians(s string) (float64, error) {
	hours, err := ParseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	return hours * math.Pi / 12, nil
}

// RAFromRadians formats a right ascension in radians as HH:MM:SS.ss.
func RAFromRadians(ra float64) string {
	return Sexagesimal(ra * 12 / math.Pi)
}

// DecToRadians parses a declination in DD:MM:SS.S notation into radians.
func DecToRadians(s string) (float64, error) {
	degrees, err := ParseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	return degrees * math.Pi / 180, nil
}

// DecFromRadians formats a declination in radians as DD:MM:SS.ss.
func DecFromRadians(dec float64) string {
	return Sexagesimal(dec * 180 / math.Pi)
}
