package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/source"
)

// File names written by WriteDataset.
const (
	MembersFile  = "members.csv"
	PaymentsFile = "payments.csv"
)

// WriteDataset writes members.csv and payments.csv under dir.
func WriteDataset(dataset source.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, MembersFile), dataset.Members); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, PaymentsFile), dataset.Payments)
}

func writeFile(path string, table loader.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, table); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// WriteCSV writes table with its header, cells in column order.
func WriteCSV(w io.Writer, table loader.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
