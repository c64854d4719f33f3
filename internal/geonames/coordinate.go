package geonames

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Coordinate is a latitude or longitude in decimal degrees. A cell that does
// not parse is held as NaN rather than rejected.
type Coordinate float64

// NaN is the sentinel stored for unparseable coordinate cells.
func NaN() Coordinate {
	return Coordinate(math.NaN())
}

// decimalPattern is plain decimal notation with an optional exponent. Hex
// floats, digit separators and inf/nan spellings do not match.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseCoordinate coerces a raw cell. Absent and blank cells become 0,
// anything else that is not a finite decimal number becomes NaN.
func ParseCoordinate(cell *string) Coordinate {
	if cell == nil {
		return 0
	}
	s := strings.TrimSpace(*cell)
	if s == "" {
		return 0
	}
	if !decimalPattern.MatchString(s) {
		return NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return NaN()
	}
	return Coordinate(v)
}

// IsValid reports whether the coordinate is a finite number.
func (c Coordinate) IsValid() bool {
	f := float64(c)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float64 returns the raw value.
func (c Coordinate) Float64() float64 {
	return float64(c)
}

func (c Coordinate) value() any {
	if !c.IsValid() {
		return nil
	}
	return float64(c)
}

// MarshalJSON writes non-finite values as null and negative zero as 0.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return []byte("null"), nil
	}
	f := float64(c)
	if f == 0 {
		return []byte("0"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads null back as NaN.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = NaN()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return eris.Wrap(err, "geonames: decode coordinate")
	}
	*c = Coordinate(f)
	return nil
}
