package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/citanz/dashboard/backend/internal/loader"
)

func TestDecode(t *testing.T) {
	gbk, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("Region\n奥克兰\n"))
	require.NoError(t, err)
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Region\n惠灵顿\n"))
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Region\nOtago\n"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []byte
		want     string
		encoding string
	}{
		{"plain", []byte("Region\nAuckland\n"), "Region\nAuckland\n", EncodingUTF8},
		{"bom", append([]byte{0xEF, 0xBB, 0xBF}, "Region\n"...), "Region\n", EncodingUTF8BOM},
		{"utf16le", utf16le, "Region\n惠灵顿\n", EncodingUTF16LE},
		{"utf16be", utf16be, "Region\nOtago\n", EncodingUTF16BE},
		{"gb18030", gbk, "Region\n奥克兰\n", EncodingGB18030},
		{"empty", nil, "", EncodingUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, enc, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, tt.encoding, enc)
		})
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte(" Paid at ,Amount\n" +
		"2/1/2024 10:00,$50.00\n" +
		"3/1/2024 11:00\n" +
		"4/1/2024 12:00,\"1,200\",extra\n")

	table, warnings, err := ParseCSV(loader.DatasetPayments, data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Paid at", "Amount"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, loader.Row{"Paid at": "2/1/2024 10:00", "Amount": "$50.00"}, table.Rows[0])
	assert.Equal(t, loader.Row{"Paid at": "3/1/2024 11:00", "Amount": ""}, table.Rows[1])
	assert.Equal(t, loader.Row{"Paid at": "4/1/2024 12:00", "Amount": "1,200"}, table.Rows[2])

	require.Len(t, warnings, 2)
	assert.Equal(t, 3, warnings[0].Row)
	assert.Contains(t, warnings[0].Message, "padding")
	assert.Equal(t, 4, warnings[1].Row)
	assert.Contains(t, warnings[1].Message, "truncating")
	assert.Equal(t, loader.DatasetPayments, warnings[1].Dataset)
}

func TestParseCSVKeepsCellWhitespace(t *testing.T) {
	table, _, err := ParseCSV(loader.DatasetMembers, []byte("Region\nauckland \n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "auckland ", table.Rows[0]["Region"])
}

func TestParseCSVEmpty(t *testing.T) {
	table, warnings, err := ParseCSV(loader.DatasetMembers, nil)
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
	assert.Empty(t, warnings)

	table, _, err = ParseCSV(loader.DatasetMembers, []byte("Paid at,Amount\n"))
	require.NoError(t, err)
	assert.Len(t, table.Columns, 2)
	assert.Empty(t, table.Rows)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()
	members := writeFile(t, dir, "members.csv",
		"Member ID,Region,City,Expiry date,Last Payment Date,Date Signed up,Last logged in\n"+
			"CITANZ-1,奥克兰,Auckland,1/1/2030,,,\n"+
			"CITANZ-2,Otago\n")
	payments := writeFile(t, dir, "payments.csv", "Paid at,Amount\n1/3/2024 10:00,50\n")

	src := NewCSVSource(members, payments)
	require.NoError(t, src.Ping(context.Background()))
	assert.Equal(t, "csv", src.Name())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Members.Rows, 2)
	assert.Equal(t, "奥克兰", ds.Members.Rows[0][loader.ColRegion])
	assert.Len(t, ds.Payments.Rows, 1)
	require.Len(t, ds.Warnings, 1)
	assert.Equal(t, loader.DatasetMembers, ds.Warnings[0].Dataset)
}

func TestCSVSourceMissingFile(t *testing.T) {
	dir := t.TempDir()
	members := writeFile(t, dir, "members.csv", "Member ID\n")
	src := NewCSVSource(members, filepath.Join(dir, "missing.csv"))

	assert.Error(t, src.Ping(context.Background()))
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource("a.csv", "b.csv").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
