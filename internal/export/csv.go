package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// WriteCSV writes one view of snap as CSV with a header row.
func WriteCSV(w io.Writer, snap domain.Snapshot, view string) error {
	t, err := ViewTable(snap, view)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
