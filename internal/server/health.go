package server

import (
	"context"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// Pinger is anything that can report whether its backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SourceHealthService checks the record source as part of health checks.
type SourceHealthService struct {
	Source Pinger
}

// Probe implements the HealthService interface.
func (s SourceHealthService) Probe(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	return s.Source.Ping(ctx)
}
