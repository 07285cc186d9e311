// Package app assembles the ingestion stack from configuration. Both the
// server and the CLI build their components here.
package app

import (
	"fmt"
	"log/slog"

	"feedboard/internal/config"
	"feedboard/internal/infra/feedparser"
	"feedboard/internal/infra/transport"
	"feedboard/internal/usecase/aggregate"
	"feedboard/internal/usecase/ingest"
	"feedboard/internal/usecase/source"
)

// Components are the wired use cases and their infrastructure.
type Components struct {
	Registry  *source.Registry
	Resolver  *transport.Resolver
	Direct    *transport.HTTPStrategy
	Pipeline  *ingest.Pipeline
	Aggregate *aggregate.Service
}

// Build loads the feed list and wires transport, parser, pipeline and
// aggregator.
func Build(cfg *config.AppConfig, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	feeds, err := config.LoadFeeds(cfg.FeedsFile)
	if err != nil {
		return nil, err
	}

	registry, err := source.NewRegistry(feeds.Feeds, cfg.DenyPrivateIPs)
	if err != nil {
		return nil, fmt.Errorf("invalid feed list: %w", err)
	}

	tcfg := cfg.Transport()
	resolver, err := transport.NewDefaultResolver(tcfg, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid transport configuration: %w", err)
	}

	images := ingest.NewImageResolver(ingest.PlaceholdersFrom(feeds.Placeholders.Default, feeds.Placeholders.ByTag))
	pipeline := ingest.NewPipeline(resolver, feedparser.New(cfg.MaxItemsPerFeed), images, registry, logger)

	return &Components{
		Registry:  registry,
		Resolver:  resolver,
		Direct:    transport.NewDirectStrategy(transport.NewClient(tcfg), tcfg.MaxBodySize),
		Pipeline:  pipeline,
		Aggregate: aggregate.NewService(pipeline, registry, cfg.PipelineConcurrency, logger),
	}, nil
}
