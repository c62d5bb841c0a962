// Package app assembles the dataset service from configuration; both binaries
// that serve data share it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/citanz/dashboard/backend/internal/analytics"
	"github.com/citanz/dashboard/backend/internal/config"
	"github.com/citanz/dashboard/backend/internal/graph"
	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/service"
	"github.com/citanz/dashboard/backend/internal/source"
)

// Components is the wired data path. Close releases the graph driver when one
// was opened.
type Components struct {
	Source  source.Source
	Service *service.DatasetService
	Graph   graph.Client
}

// Close releases external connections.
func (c *Components) Close(ctx context.Context) error {
	if c.Graph == nil {
		return nil
	}
	return c.Graph.Close(ctx)
}

// Build opens the configured source and wraps it in a DatasetService.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{}

	switch cfg.Data.Source {
	case config.SourceGraph:
		client, err := NewGraphClient(ctx, cfg.Graph)
		if err != nil {
			return nil, fmt.Errorf("create graph client: %w", err)
		}
		c.Graph = client
		c.Source = source.NewGraphSource(client)
	default:
		c.Source = source.NewCSVSource(cfg.Data.MembersPath, cfg.Data.PaymentsPath)
	}

	ld := loader.New(cfg.Data.Location)
	engine := analytics.New(analytics.Options{
		MainRegions: cfg.Data.MainRegions,
		Location:    cfg.Data.Location,
	})
	c.Service = service.NewDatasetService(c.Source, ld, engine, service.Options{
		CacheTTL: cfg.Data.CacheTTL,
		Logger:   logger,
	})

	logger.Info("data source ready",
		"source", c.Source.Name(),
		"timezone", cfg.Data.Location.String(),
		"cache_ttl", cfg.Data.CacheTTL.String(),
	)
	return c, nil
}

// NewGraphClient opens a Neo4j client from the graph section.
func NewGraphClient(ctx context.Context, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, graph.ErrMissingURI
	}
	return graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
}
