package loader

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Source timestamp layouts.
const (
	LayoutExpiry      = "2/1/2006"
	LayoutLastPayment = "2/1/2006 15:04"
	LayoutActivity    = "Jan 2, 2006, 3:04 PM"
)

// ErrEmpty is returned for blank cells.
var ErrEmpty = errors.New("empty value")

// ParseTime parses a naive timestamp in loc. Runs of whitespace are collapsed
// and AM/PM markers are accepted in either case.
func ParseTime(value, layout string, loc *time.Location) (time.Time, error) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return time.Time{}, ErrEmpty
	}
	if loc == nil {
		loc = time.UTC
	}
	if strings.Contains(layout, "PM") {
		value = strings.ToUpper(value)
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t, nil
}

// ParseAmount converts a currency string such as "$1,200.00" to a decimal.
// Currency symbols, thousands separators and spaces are removed first.
func ParseAmount(value string) (decimal.Decimal, error) {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r == ',':
		case unicode.IsSpace(r):
		case unicode.Is(unicode.Sc, r):
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, ErrEmpty
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return d, nil
}
