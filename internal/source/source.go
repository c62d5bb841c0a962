// Package source fetches the raw member and payment tables from where the
// exports live: CSV files on disk or nodes in a graph database.
package source

import (
	"context"
	"fmt"

	"github.com/citanz/dashboard/backend/internal/loader"
)

// Source produces the raw tables. Implementations must be safe for concurrent
// use.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Name identifies the source kind in logs and health output.
	Name() string
}

// Dataset is one fetch of both tables plus the non-fatal issues met while
// reading them.
type Dataset struct {
	Members  loader.Table
	Payments loader.Table
	Warnings []Warning
}

// Warning is a non-fatal problem in a source row, such as a short or long CSV
// record.
type Warning struct {
	Dataset string `json:"dataset"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %d: %s", w.Dataset, w.Row, w.Message)
}
