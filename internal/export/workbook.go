package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/citanz/dashboard/backend/internal/domain"
)

const summarySheet = "summary"

// WriteWorkbook writes snap as an XLSX workbook: a summary sheet with the
// generation time, then one sheet per view in dashboard order.
func WriteWorkbook(w io.Writer, snap domain.Snapshot) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(wb, snap); err != nil {
		return err
	}

	header, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for _, view := range domain.ViewNames {
		t, err := ViewTable(snap, view)
		if err != nil {
			return err
		}
		if _, err := wb.NewSheet(view); err != nil {
			return fmt.Errorf("create sheet %s: %w", view, err)
		}
		if err := writeTable(wb, view, t, header); err != nil {
			return fmt.Errorf("write sheet %s: %w", view, err)
		}
	}

	_, err = wb.WriteTo(w)
	return err
}

func writeSummary(wb *excelize.File, snap domain.Snapshot) error {
	rows := [][]any{
		{"generated_at", snap.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"total_members", snap.KeyMetrics.Total},
		{"active_members", snap.KeyMetrics.Active},
		{"new_this_month", snap.KeyMetrics.NewThisMonth},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(wb *excelize.File, sheet string, t Table, headerStyle int) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err != nil {
		return err
	}
	if err := wb.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
