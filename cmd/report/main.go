package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/citanz/dashboard/backend/internal/app"
	"github.com/citanz/dashboard/backend/internal/config"
	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/export"
	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/logging"
	"github.com/citanz/dashboard/backend/internal/service"
)

type options struct {
	xlsxPath string
	csvView  string
	now      time.Time
	showLoad bool
}

func main() {
	var (
		membersPath  = flag.String("members", "", "path to the members export (overrides MEMBERS_CSV)")
		paymentsPath = flag.String("payments", "", "path to the payments export (overrides PAYMENTS_CSV)")
		xlsxPath     = flag.String("xlsx", "", "write an XLSX workbook to this path instead of JSON to stdout")
		csvView      = flag.String("csv", "", "write a single view as CSV to stdout")
		nowFlag      = flag.String("now", "", "evaluate the report at this RFC3339 instant")
		showLoad     = flag.Bool("load-report", false, "include the load report in JSON output")
	)
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *membersPath != "" {
		cfg.Data.MembersPath = *membersPath
	}
	if *paymentsPath != "" {
		cfg.Data.PaymentsPath = *paymentsPath
	}

	opts := options{xlsxPath: *xlsxPath, csvView: *csvView, showLoad: *showLoad}
	if *nowFlag != "" {
		opts.now, err = time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -now: %v\n", err)
			os.Exit(2)
		}
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.Logging).With("component", "report")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, cfg, opts); err != nil {
		if errors.Is(err, loader.ErrMissingColumns) {
			logger.Error("export is missing required columns", "error", err)
		} else {
			logger.Error("report failed", "error", err)
		}
		cancel()
		os.Exit(1)
	}
}

// run loads the dataset once and writes the requested output. Every resource
// it opens is released before it returns.
func run(ctx context.Context, logger *slog.Logger, cfg config.Config, opts options) error {
	components, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build data path: %w", err)
	}
	defer func() {
		if err := components.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	svc := components.Service
	if !opts.now.IsZero() {
		now := opts.now
		svc.WithClock(func() time.Time { return now })
	}

	ds, err := svc.Dataset(ctx)
	if err != nil {
		return err
	}
	snap := svc.Engine().Snapshot(ds.Members, ds.Payments)

	switch {
	case opts.xlsxPath != "":
		if err := writeWorkbook(opts.xlsxPath, snap); err != nil {
			return err
		}
		logger.Info("workbook written", "path", opts.xlsxPath, "members", len(ds.Members), "payments", len(ds.Payments))
		return nil
	case opts.csvView != "":
		if err := export.WriteCSV(os.Stdout, snap, opts.csvView); err != nil {
			return fmt.Errorf("write %s csv: %w", opts.csvView, err)
		}
		return nil
	default:
		return writeJSON(os.Stdout, snap, ds.Report, opts.showLoad)
	}
}

func writeWorkbook(path string, snap domain.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := export.WriteWorkbook(file, snap); err != nil {
		file.Close()
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close workbook %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, snap domain.Snapshot, report service.LoadReport, showLoad bool) error {
	out := any(snap)
	if showLoad {
		out = struct {
			Snapshot domain.Snapshot    `json:"snapshot"`
			Load     service.LoadReport `json:"load"`
		}{snap, report}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
