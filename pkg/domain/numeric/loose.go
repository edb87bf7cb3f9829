// Package numeric holds the lenient number handling used at every input boundary.
//
// Raw measurements arrive as JSON numbers, numeric strings, empty strings, nulls or
// free text typed into a form. None of these are ever an error: a value either parses
// to a decimal or is marked invalid, and the caller picks the default.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix of a string, so "12.5m" reads as 12.5.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// MaxMagnitude bounds the decimal exponent of an accepted value. Quantities and
// prices never come near it; anything beyond is treated as garbage input.
const MaxMagnitude = 30

// maxScale bounds the number of fractional digits kept from an input.
const maxScale = 2 * MaxMagnitude

// Loose is a leniently parsed scalar. Valid is false when the input was absent,
// null, empty, not a number or out of range.
type Loose struct {
	Decimal decimal.Decimal
	Valid   bool
}

// Of wraps an exact decimal.
func Of(d decimal.Decimal) Loose {
	return Loose{Decimal: d, Valid: true}
}

// OfInt wraps an integer.
func OfInt(i int64) Loose {
	return Of(decimal.NewFromInt(i))
}

// OfFloat wraps a float. NaN, infinities and out-of-range magnitudes are invalid.
func OfFloat(f float64) Loose {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Loose{}
	}
	return checked(decimal.NewFromFloat(f))
}

// InRange reports whether d lies within 1e-MaxMagnitude..1e+MaxMagnitude in
// magnitude, carrying at most maxScale fractional digits. Zero is in range.
func InRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := int64(d.Exponent())
	if exp < -maxScale {
		return false
	}
	digits := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		digits--
	}
	adjusted := exp + digits - 1
	return adjusted >= -MaxMagnitude && adjusted <= MaxMagnitude
}

func checked(d decimal.Decimal) Loose {
	if d.IsZero() {
		return Of(decimal.Zero)
	}
	if !InRange(d) {
		return Loose{}
	}
	return Of(d)
}

// Parse reads the numeric prefix of s. Surrounding whitespace and thousands
// separators are ignored. Values outside InRange are invalid.
func Parse(s string) Loose {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Loose{}
	}
	match := leadingNumber.FindString(s)
	if match == "" {
		return Loose{}
	}
	match = strings.TrimSuffix(match, ".")
	d, err := decimal.NewFromString(match)
	if err != nil {
		return Loose{}
	}
	return checked(d)
}

// OrZero returns the value, or zero when invalid.
func (l Loose) OrZero() decimal.Decimal {
	return l.Or(decimal.Zero)
}

// Or returns the value, or def when invalid.
func (l Loose) Or(def decimal.Decimal) decimal.Decimal {
	if !l.Valid {
		return def
	}
	return l.Decimal
}

// IntOr truncates the value to an int, or returns def when invalid.
func (l Loose) IntOr(def int) int {
	if !l.Valid {
		return def
	}
	return int(l.Decimal.IntPart())
}

// Null converts to a decimal.NullDecimal, keeping the invalid state.
func (l Loose) Null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: l.Decimal, Valid: l.Valid}
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else decodes
// as invalid rather than failing the surrounding document.
func (l *Loose) UnmarshalJSON(data []byte) error {
	*l = Loose{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*l = Parse(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*l = Parse(string(data))
	}
	return nil
}

// MarshalJSON writes a bare number, or null when invalid.
func (l Loose) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return []byte(l.Decimal.String()), nil
}

// String implements fmt.Stringer.
func (l Loose) String() string {
	if !l.Valid {
		return "<invalid>"
	}
	return l.Decimal.String()
}
