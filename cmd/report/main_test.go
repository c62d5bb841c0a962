package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/citanz/dashboard/backend/internal/config"
	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/logging"
)

const membersCSV = "Member ID,Region,City,Expiry date,Last Payment Date,Date Signed up,Last logged in\n" +
	"CITANZ-1,Auckland,Auckland,1/1/2030,2/6/2024 09:05,\"Jun 2, 2024, 9:00 AM\",\"Jun 10, 2024, 9:30 AM\"\n"

const paymentsCSV = "Paid at,Amount\n\"Mar 1, 2024, 10:00 AM\",$50.00\n"

func writeExports(t *testing.T, members, payments string) config.Config {
	t.Helper()
	dir := t.TempDir()
	membersPath := filepath.Join(dir, "members.csv")
	paymentsPath := filepath.Join(dir, "payments.csv")
	require.NoError(t, os.WriteFile(membersPath, []byte(members), 0o644))
	require.NoError(t, os.WriteFile(paymentsPath, []byte(payments), 0o644))
	return config.Config{Data: config.DataConfig{
		Source:       config.SourceCSV,
		MembersPath:  membersPath,
		PaymentsPath: paymentsPath,
		Location:     time.UTC,
	}}
}

func TestRunWritesWorkbook(t *testing.T) {
	cfg := writeExports(t, membersCSV, paymentsCSV)
	out := filepath.Join(t.TempDir(), "dashboard.xlsx")

	err := run(context.Background(), logging.Discard(), cfg, options{
		xlsxPath: out,
		now:      time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	wb, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer wb.Close()
	v, err := wb.GetCellValue("summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestRunReturnsSchemaError(t *testing.T) {
	cfg := writeExports(t, "Member ID,Region\nCITANZ-1,Auckland\n", paymentsCSV)

	err := run(context.Background(), logging.Discard(), cfg, options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrMissingColumns)
}
