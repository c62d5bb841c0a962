package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel is the sentinel used for locations that are missing or cannot be
// resolved against reference data.
const UnknownLabel = "Unknown"

// MemberIDPrefix is the prefix every retained member identifier carries.
const MemberIDPrefix = "CITANZ-"

// MemberRecord is one typed row of the membership export. Optional timestamps are
// nil when the source cell was empty or could not be parsed.
type MemberRecord struct {
	ID          string
	Region      string
	City        string
	ExpiresAt   *time.Time
	SignedUpAt  *time.Time
	LastPaidAt  *time.Time
	LastLoginAt *time.Time
}

// RegionLabel returns the raw region, or UnknownLabel when it is missing.
func (m MemberRecord) RegionLabel() string {
	return labelOrUnknown(m.Region)
}

// CityLabel returns the raw city, or UnknownLabel when it is missing.
func (m MemberRecord) CityLabel() string {
	return labelOrUnknown(m.City)
}

// PaymentRecord is one typed row of the payments export.
type PaymentRecord struct {
	PaidAt *time.Time
	Amount decimal.NullDecimal
}

func labelOrUnknown(v string) string {
	if v == "" {
		return UnknownLabel
	}
	return v
}
