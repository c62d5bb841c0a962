package loader

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// Dataset names used in reports and schema errors.
const (
	DatasetMembers  = "members"
	DatasetPayments = "payments"
)

// Report summarizes one load: rows seen, rows kept, rows filtered out by the
// identifier rule and, per column, non-empty cells that failed to parse.
type Report struct {
	Dataset  string         `json:"dataset"`
	Rows     int            `json:"rows"`
	Kept     int            `json:"kept"`
	Filtered int            `json:"filtered"`
	Unparsed map[string]int `json:"unparsed"`
}

// UnparsedColumns returns the columns with parse failures, sorted.
func (r Report) UnparsedColumns() []string {
	cols := make([]string, 0, len(r.Unparsed))
	for c := range r.Unparsed {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func newReport(dataset string, rows int) Report {
	return Report{Dataset: dataset, Rows: rows, Unparsed: map[string]int{}}
}

// Loader parses tables with naive timestamps interpreted in a fixed location.
type Loader struct {
	loc *time.Location
}

// New returns a Loader for loc; nil means UTC.
func New(loc *time.Location) *Loader {
	if loc == nil {
		loc = time.UTC
	}
	return &Loader{loc: loc}
}

// Location reports the time zone used for naive timestamps.
func (l *Loader) Location() *time.Location { return l.loc }

// Members converts the members table. Rows whose identifier does not start
// with domain.MemberIDPrefix are dropped.
func (l *Loader) Members(t Table) ([]domain.MemberRecord, Report, error) {
	report := newReport(DatasetMembers, len(t.Rows))
	if err := CheckColumns(DatasetMembers, t, MemberColumns); err != nil {
		return nil, report, err
	}

	members := make([]domain.MemberRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := row[ColMemberID]
		if !strings.HasPrefix(id, domain.MemberIDPrefix) {
			report.Filtered++
			continue
		}
		members = append(members, domain.MemberRecord{
			ID:          id,
			Region:      row[ColRegion],
			City:        row[ColCity],
			ExpiresAt:   l.timeField(row, ColExpiry, LayoutExpiry, &report),
			LastPaidAt:  l.timeField(row, ColLastPayment, LayoutLastPayment, &report),
			SignedUpAt:  l.timeField(row, ColSignedUp, LayoutActivity, &report),
			LastLoginAt: l.timeField(row, ColLastLogin, LayoutActivity, &report),
		})
	}
	report.Kept = len(members)
	return members, report, nil
}

// Payments converts the payments table. Every row is kept.
func (l *Loader) Payments(t Table) ([]domain.PaymentRecord, Report, error) {
	report := newReport(DatasetPayments, len(t.Rows))
	if err := CheckColumns(DatasetPayments, t, PaymentColumns); err != nil {
		return nil, report, err
	}

	payments := make([]domain.PaymentRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		payments = append(payments, domain.PaymentRecord{
			PaidAt: l.timeField(row, ColPaidAt, LayoutActivity, &report),
			Amount: amountField(row, ColAmount, &report),
		})
	}
	report.Kept = len(payments)
	return payments, report, nil
}

func (l *Loader) timeField(row Row, col, layout string, report *Report) *time.Time {
	raw := row[col]
	t, err := ParseTime(raw, layout, l.loc)
	if err != nil {
		if strings.TrimSpace(raw) != "" {
			report.Unparsed[col]++
		}
		return nil
	}
	return &t
}

func amountField(row Row, col string, report *Report) decimal.NullDecimal {
	raw := row[col]
	d, err := ParseAmount(raw)
	if err != nil {
		if strings.TrimSpace(raw) != "" {
			report.Unparsed[col]++
		}
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
