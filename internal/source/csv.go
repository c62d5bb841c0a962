package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/citanz/dashboard/backend/internal/loader"
)

// CSVSource reads the members and payments exports from disk on every Load.
type CSVSource struct {
	MembersPath  string
	PaymentsPath string
}

// NewCSVSource returns a CSVSource for the two export files.
func NewCSVSource(membersPath, paymentsPath string) *CSVSource {
	return &CSVSource{MembersPath: membersPath, PaymentsPath: paymentsPath}
}

func (s *CSVSource) Name() string { return "csv" }

// Load reads and parses both files.
func (s *CSVSource) Load(ctx context.Context) (Dataset, error) {
	var ds Dataset

	members, warnings, err := s.readFile(ctx, loader.DatasetMembers, s.MembersPath)
	if err != nil {
		return Dataset{}, err
	}
	ds.Members = members
	ds.Warnings = append(ds.Warnings, warnings...)

	payments, warnings, err := s.readFile(ctx, loader.DatasetPayments, s.PaymentsPath)
	if err != nil {
		return Dataset{}, err
	}
	ds.Payments = payments
	ds.Warnings = append(ds.Warnings, warnings...)

	return ds, nil
}

// Ping checks both files exist and are regular files.
func (s *CSVSource) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, path := range []string{s.MembersPath, s.PaymentsPath} {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
	}
	return nil
}

func (s *CSVSource) readFile(ctx context.Context, dataset, path string) (loader.Table, []Warning, error) {
	if err := ctx.Err(); err != nil {
		return loader.Table{}, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return loader.Table{}, nil, fmt.Errorf("read %s export: %w", dataset, err)
	}
	table, warnings, err := ParseCSV(dataset, data)
	if err != nil {
		return loader.Table{}, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return table, warnings, nil
}

// ParseCSV decodes data and splits it into a header and rows. Header cells are
// trimmed, data cells are kept verbatim. Rows shorter than the header are
// padded with empty cells, longer rows are truncated, and malformed rows are
// skipped; each case yields a Warning. An empty input gives an empty table.
func ParseCSV(dataset string, data []byte) (loader.Table, []Warning, error) {
	decoded, _, err := Decode(data)
	if err != nil {
		return loader.Table{}, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return loader.Table{}, nil, nil
	}
	if err != nil {
		return loader.Table{}, nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	table := loader.Table{Columns: header}
	var warnings []Warning
	rowNum := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			warnings = append(warnings, Warning{Dataset: dataset, Row: rowNum, Message: fmt.Sprintf("skipped: %v", err)})
			continue
		}

		switch {
		case len(record) < len(header):
			warnings = append(warnings, Warning{
				Dataset: dataset,
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(record), len(header)),
			})
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		case len(record) > len(header):
			warnings = append(warnings, Warning{
				Dataset: dataset,
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(record), len(header)),
			})
			record = record[:len(header)]
		}

		row := make(loader.Row, len(header))
		for i, h := range header {
			row[h] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, warnings, nil
}
