package loader

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberTable(rows ...Row) Table {
	return Table{Columns: append([]string(nil), MemberColumns...), Rows: rows}
}

func TestMembersFiltersIdentifiers(t *testing.T) {
	table := memberTable(
		Row{ColMemberID: "CITANZ-1", ColRegion: "Auckland"},
		Row{ColMemberID: "X-2", ColRegion: "Otago"},
		Row{ColMemberID: "CITANZ-3", ColRegion: "Otago"},
		Row{ColMemberID: "", ColRegion: "Otago"},
		Row{ColMemberID: " CITANZ-5"},
	)

	members, report, err := New(nil).Members(table)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "CITANZ-1", members[0].ID)
	assert.Equal(t, "CITANZ-3", members[1].ID)
	assert.Equal(t, 5, report.Rows)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 3, report.Filtered)
}

func TestMembersParsesDates(t *testing.T) {
	table := memberTable(Row{
		ColMemberID:    "CITANZ-1",
		ColRegion:      "奥克兰",
		ColCity:        "",
		ColExpiry:      "31/12/2025",
		ColLastPayment: "5/1/2024 09:30",
		ColSignedUp:    "Jan 5, 2024, 9:15 AM",
		ColLastLogin:   "Mar 10, 2024, 11:45 pm",
	})

	members, report, err := New(time.UTC).Members(table)
	require.NoError(t, err)
	require.Len(t, members, 1)
	m := members[0]

	require.NotNil(t, m.ExpiresAt)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *m.ExpiresAt)
	require.NotNil(t, m.LastPaidAt)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC), *m.LastPaidAt)
	require.NotNil(t, m.SignedUpAt)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC), *m.SignedUpAt)
	require.NotNil(t, m.LastLoginAt)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 45, 0, 0, time.UTC), *m.LastLoginAt)

	assert.Equal(t, "奥克兰", m.Region)
	assert.Equal(t, "Unknown", m.CityLabel())
	assert.Empty(t, report.Unparsed)
}

func TestMembersUnparsableFieldsBecomeAbsent(t *testing.T) {
	table := memberTable(Row{
		ColMemberID:    "CITANZ-1",
		ColExpiry:      "2025-12-31",
		ColLastPayment: "",
		ColSignedUp:    "yesterday",
		ColLastLogin:   "Mar 10, 2024, 11:45 PM",
	})

	members, report, err := New(nil).Members(table)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Nil(t, members[0].ExpiresAt)
	assert.Nil(t, members[0].LastPaidAt)
	assert.Nil(t, members[0].SignedUpAt)
	assert.NotNil(t, members[0].LastLoginAt)

	assert.Equal(t, map[string]int{ColExpiry: 1, ColSignedUp: 1}, report.Unparsed)
	assert.Equal(t, []string{ColSignedUp, ColExpiry}, report.UnparsedColumns())
}

func TestMembersUsesLocation(t *testing.T) {
	loc := time.FixedZone("NZST", 12*3600)
	members, _, err := New(loc).Members(memberTable(Row{ColMemberID: "CITANZ-1", ColExpiry: "1/2/2024"}))
	require.NoError(t, err)
	require.NotNil(t, members[0].ExpiresAt)
	assert.Equal(t, time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), members[0].ExpiresAt.UTC())
}

func TestMembersMissingColumns(t *testing.T) {
	table := Table{Columns: []string{ColMemberID, ColRegion, ColExpiry}}

	_, _, err := New(nil).Members(table)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, DatasetMembers, schemaErr.Dataset)
	assert.Equal(t, []string{ColCity, ColLastPayment, ColSignedUp, ColLastLogin}, schemaErr.Missing)
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.Contains(t, err.Error(), "City, Last Payment Date, Date Signed up, Last logged in")
}

func TestPayments(t *testing.T) {
	table := Table{
		Columns: []string{ColPaidAt, ColAmount, "Reference"},
		Rows: []Row{
			{ColPaidAt: "Feb 1, 2024, 10:00 AM", ColAmount: "$1,200.00"},
			{ColPaidAt: "not a date", ColAmount: "300"},
			{ColPaidAt: "", ColAmount: "abc"},
			{ColPaidAt: "Feb 3, 2024, 1:00 PM", ColAmount: ""},
		},
	}

	payments, report, err := New(nil).Payments(table)
	require.NoError(t, err)
	require.Len(t, payments, 4)

	assert.True(t, payments[0].Amount.Valid)
	assert.True(t, payments[0].Amount.Decimal.Equal(decimal.RequireFromString("1200.00")))
	require.NotNil(t, payments[0].PaidAt)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), *payments[0].PaidAt)

	assert.Nil(t, payments[1].PaidAt)
	assert.True(t, payments[1].Amount.Decimal.Equal(decimal.NewFromInt(300)))

	assert.False(t, payments[2].Amount.Valid)
	assert.False(t, payments[3].Amount.Valid)

	assert.Equal(t, map[string]int{ColPaidAt: 1, ColAmount: 1}, report.Unparsed)
	assert.Equal(t, 4, report.Kept)
}

func TestPaymentsMissingColumns(t *testing.T) {
	_, _, err := New(nil).Payments(Table{Columns: []string{"Paid"}})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{ColPaidAt, ColAmount}, schemaErr.Missing)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$1,200.00", "1200"},
		{"300", "300"},
		{"NZ$ 45.50", ""},
		{"¥1,000", "1000"},
		{"€ 12.5", "12.5"},
		{"-$20", "-20"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.want == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseAmountEmpty(t *testing.T) {
	_, err := ParseAmount(" $ ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseTimeCollapsesWhitespace(t *testing.T) {
	got, err := ParseTime("  Jan  5,   2024,  9:15 am ", LayoutActivity, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC), got)

	_, err = ParseTime("   ", LayoutExpiry, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}
