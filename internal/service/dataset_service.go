// Package service loads the exports, keeps the parsed dataset cached and
// serves dashboard views computed from it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/citanz/dashboard/backend/internal/analytics"
	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/metrics"
	"github.com/citanz/dashboard/backend/internal/source"
)

// Dataset is one parsed load of both exports.
type Dataset struct {
	Members  []domain.MemberRecord
	Payments []domain.PaymentRecord
	Report   LoadReport
}

// LoadReport describes how a Dataset was produced.
type LoadReport struct {
	Source   string           `json:"source"`
	LoadedAt time.Time        `json:"loaded_at"`
	Duration time.Duration    `json:"duration_ns"`
	Members  loader.Report    `json:"members"`
	Payments loader.Report    `json:"payments"`
	Warnings []source.Warning `json:"warnings"`
}

// Options tunes a DatasetService.
type Options struct {
	// CacheTTL is how long a loaded Dataset is reused. Zero reloads on every
	// request.
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// DatasetService loads through a Source, parses with a Loader and computes
// views with an Engine. Concurrent requests that miss the cache share one
// load.
type DatasetService struct {
	src    source.Source
	loader *loader.Loader
	engine *analytics.Engine
	ttl    time.Duration
	logger *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	cached   *Dataset
	cachedAt time.Time
	// generation is bumped by Invalidate; a load started under an older
	// generation is returned to its callers but not cached.
	generation uint64
}

// NewDatasetService wires a service. A nil loader or engine selects the
// defaults.
func NewDatasetService(src source.Source, ld *loader.Loader, engine *analytics.Engine, opts Options) *DatasetService {
	if ld == nil {
		ld = loader.New(nil)
	}
	if engine == nil {
		engine = analytics.New(analytics.Options{Location: ld.Location()})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		src:    src,
		loader: ld,
		engine: engine,
		ttl:    opts.CacheTTL,
		logger: logger.With("component", "dataset"),
	}
}

// WithClock overrides the time provider (used primarily in tests and reports).
func (s *DatasetService) WithClock(nowFn func() time.Time) {
	s.engine.WithClock(nowFn)
}

// Engine exposes the analytics engine the service computes views with.
func (s *DatasetService) Engine() *analytics.Engine { return s.engine }

// SourceName identifies the configured source.
func (s *DatasetService) SourceName() string { return s.src.Name() }

// Ping checks the source is reachable.
func (s *DatasetService) Ping(ctx context.Context) error {
	return s.src.Ping(ctx)
}

// Invalidate drops the cached Dataset; the next request reloads. A load
// already in flight is not cached and later callers do not join it.
func (s *DatasetService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.generation++
	s.mu.Unlock()
	s.group.Forget(datasetKey)
}

const datasetKey = "dataset"

// Dataset returns the cached Dataset, loading it when absent or expired.
func (s *DatasetService) Dataset(ctx context.Context) (*Dataset, error) {
	if ds := s.fresh(); ds != nil {
		metrics.CacheHitsTotal.Inc()
		return ds, nil
	}
	metrics.CacheMissesTotal.Inc()

	ch := s.group.DoChan(datasetKey, func() (any, error) {
		if ds := s.fresh(); ds != nil {
			return ds, nil
		}
		s.mu.RLock()
		generation := s.generation
		s.mu.RUnlock()

		ds, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.generation == generation {
			s.cached = ds
			s.cachedAt = s.engine.Now()
		} else {
			s.logger.Info("dataset invalidated during load, not caching")
		}
		s.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

func (s *DatasetService) fresh() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || s.ttl <= 0 {
		return nil
	}
	if s.engine.Now().Sub(s.cachedAt) >= s.ttl {
		return nil
	}
	return s.cached
}

func (s *DatasetService) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	raw, err := s.src.Load(ctx)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues(s.src.Name(), "error").Inc()
		return nil, fmt.Errorf("load %s source: %w", s.src.Name(), err)
	}

	ds := &Dataset{}
	var membersReport, paymentsReport loader.Report
	err = runTasks(ctx, 2, 2, func(idx int) error {
		var err error
		switch idx {
		case 0:
			ds.Members, membersReport, err = s.loader.Members(raw.Members)
		case 1:
			ds.Payments, paymentsReport, err = s.loader.Payments(raw.Payments)
		}
		return err
	})
	if err != nil {
		metrics.LoadsTotal.WithLabelValues(s.src.Name(), "error").Inc()
		return nil, err
	}

	elapsed := time.Since(start)
	ds.Report = LoadReport{
		Source:   s.src.Name(),
		LoadedAt: s.engine.Now(),
		Duration: elapsed,
		Members:  membersReport,
		Payments: paymentsReport,
		Warnings: raw.Warnings,
	}
	if ds.Report.Warnings == nil {
		ds.Report.Warnings = []source.Warning{}
	}

	metrics.LoadsTotal.WithLabelValues(s.src.Name(), "ok").Inc()
	metrics.LoadDurationMs.WithLabelValues(s.src.Name()).Observe(float64(elapsed.Milliseconds()))
	s.observe(ds.Report)
	return ds, nil
}

func (s *DatasetService) observe(report LoadReport) {
	for _, r := range []loader.Report{report.Members, report.Payments} {
		metrics.DatasetRows.WithLabelValues(r.Dataset, "kept").Set(float64(r.Kept))
		metrics.DatasetRows.WithLabelValues(r.Dataset, "filtered").Set(float64(r.Filtered))
		metrics.UnparsedCells.DeletePartialMatch(map[string]string{"dataset": r.Dataset})
		for _, col := range r.UnparsedColumns() {
			metrics.UnparsedCells.WithLabelValues(r.Dataset, col).Set(float64(r.Unparsed[col]))
			s.logger.Debug("unparsed cells", "dataset", r.Dataset, "column", col, "count", r.Unparsed[col])
		}
		s.logger.Info("dataset loaded",
			"source", report.Source,
			"dataset", r.Dataset,
			"rows", r.Rows,
			"kept", r.Kept,
			"filtered", r.Filtered,
			"duration", report.Duration,
		)
	}
	for _, w := range report.Warnings {
		s.logger.Warn("source row", "dataset", w.Dataset, "row", w.Row, "message", w.Message)
	}
}

// Snapshot computes every view from the current Dataset at one instant.
func (s *DatasetService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return s.engine.Snapshot(ds.Members, ds.Payments), nil
}

// View computes a single named view from the current Dataset.
func (s *DatasetService) View(ctx context.Context, name string) (any, error) {
	compute, ok := views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, name)
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return compute(s.engine, ds), nil
}

// LoadReport returns the report of the current Dataset.
func (s *DatasetService) LoadReport(ctx context.Context) (LoadReport, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return LoadReport{}, err
	}
	return ds.Report, nil
}

var views = map[string]func(*analytics.Engine, *Dataset) any{
	domain.ViewKeyMetrics: func(e *analytics.Engine, ds *Dataset) any { return e.KeyMetrics(ds.Members) },
	domain.ViewRegionDistribution: func(e *analytics.Engine, ds *Dataset) any {
		return e.RegionDistribution(ds.Members)
	},
	domain.ViewMembershipStatus: func(e *analytics.Engine, ds *Dataset) any { return e.MembershipStatus(ds.Members) },
	domain.ViewPaymentDistribution: func(e *analytics.Engine, ds *Dataset) any {
		return e.PaymentDistribution(ds.Payments)
	},
	domain.ViewRenewalFunnel:   func(e *analytics.Engine, ds *Dataset) any { return e.RenewalFunnel(ds.Members) },
	domain.ViewIncomeTrend:     func(e *analytics.Engine, ds *Dataset) any { return e.IncomeTrend(ds.Payments) },
	domain.ViewActivityHeatmap: func(e *analytics.Engine, ds *Dataset) any { return e.ActivityHeatmap(ds.Members) },
	domain.ViewGeoDistribution: func(e *analytics.Engine, ds *Dataset) any { return e.GeoDistribution(ds.Members) },
	domain.ViewCityMap:         func(e *analytics.Engine, ds *Dataset) any { return e.CityMap(ds.Members) },
	domain.ViewNewMembers:      func(e *analytics.Engine, ds *Dataset) any { return e.NewMembers(ds.Members) },
}
