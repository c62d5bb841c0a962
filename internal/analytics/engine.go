// Package analytics computes the dashboard views from loaded member and payment
// records. Every view is a pure function of its inputs and, where relevant, of
// a single captured instant.
package analytics

import (
	"time"

	"github.com/citanz/dashboard/backend/internal/geo"
	"github.com/citanz/dashboard/backend/internal/region"
)

// DefaultMainRegions are reported separately in the region distribution.
var DefaultMainRegions = []string{"Auckland", "Wellington", "Canterbury"}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	MainRegions  []string
	Location     *time.Location
	Deduplicator *region.Deduplicator
	Matcher      *geo.Matcher
}

// Engine computes the views. It holds no per-call state and is safe for
// concurrent use once configured.
type Engine struct {
	dedup       *region.Deduplicator
	matcher     *geo.Matcher
	mainRegions []string
	loc         *time.Location
	nowFn       func() time.Time
}

// New constructs an Engine with optional overrides.
func New(opts Options) *Engine {
	e := &Engine{
		dedup:       opts.Deduplicator,
		matcher:     opts.Matcher,
		mainRegions: append([]string(nil), opts.MainRegions...),
		loc:         opts.Location,
		nowFn:       time.Now,
	}
	if e.dedup == nil {
		e.dedup = region.New(nil)
	}
	if e.matcher == nil {
		e.matcher = geo.NewMatcher(nil)
	}
	if len(e.mainRegions) == 0 {
		e.mainRegions = append([]string(nil), DefaultMainRegions...)
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	return e
}

// WithClock overrides the time provider (used primarily in tests and reports).
func (e *Engine) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		e.nowFn = nowFn
	}
}

// Now returns the current instant according to the engine clock.
func (e *Engine) Now() time.Time {
	return e.nowFn()
}

// Location reports the zone used for month and hour bucketing.
func (e *Engine) Location() *time.Location { return e.loc }

func (e *Engine) month(t time.Time) string {
	return t.In(e.loc).Format("2006-01")
}
