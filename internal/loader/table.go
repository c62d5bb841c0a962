// Package loader turns raw tabular rows into typed member and payment records.
// Cells that fail to parse become absent fields; only a missing required column
// is an error.
package loader

import (
	"errors"
	"fmt"
	"strings"
)

// Row maps a column header to its raw cell text.
type Row map[string]string

// Table is a header plus its rows, as produced by a record source.
type Table struct {
	Columns []string
	Rows    []Row
}

// Column headers of the membership export.
const (
	ColMemberID    = "Member ID"
	ColRegion      = "Region"
	ColCity        = "City"
	ColExpiry      = "Expiry date"
	ColLastPayment = "Last Payment Date"
	ColSignedUp    = "Date Signed up"
	ColLastLogin   = "Last logged in"
)

// Column headers of the payments export.
const (
	ColPaidAt = "Paid at"
	ColAmount = "Amount"
)

// MemberColumns lists the columns a members table must carry.
var MemberColumns = []string{ColMemberID, ColRegion, ColCity, ColExpiry, ColLastPayment, ColSignedUp, ColLastLogin}

// PaymentColumns lists the columns a payments table must carry.
var PaymentColumns = []string{ColPaidAt, ColAmount}

// ErrMissingColumns is wrapped by every *SchemaError.
var ErrMissingColumns = errors.New("missing required columns")

// SchemaError reports the required columns absent from a dataset.
type SchemaError struct {
	Dataset string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset: %s: %s", e.Dataset, ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumns }

// CheckColumns returns a *SchemaError naming every required column that is not
// in the table header.
func CheckColumns(dataset string, t Table, required []string) error {
	present := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Dataset: dataset, Missing: missing}
	}
	return nil
}
