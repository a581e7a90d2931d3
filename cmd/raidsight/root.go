package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidsight/raidsight/internal/adapters/repository"
	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/adapters/telemetry/fake"
	"github.com/raidsight/raidsight/internal/app"
	"github.com/raidsight/raidsight/internal/config"
	"github.com/raidsight/raidsight/internal/domain/castmetrics"
	"github.com/raidsight/raidsight/internal/ingest"
	"github.com/raidsight/raidsight/internal/pipeline"
	"github.com/raidsight/raidsight/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "raidsight",
		Short:         "Combat-telemetry analytics: derived metrics, rotation scores, benchmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIngestCmd(), newScoreCmd(), newBenchmarkCmd())
	return root
}

// buildService wires config into the client, store, and service. An empty
// API token selects the deterministic synthetic client, which keeps the CLI
// usable offline.
func buildService(ctx context.Context) (*app.Service, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevelString(cfg.LogLevel)
	log := logger.Get()

	var client telemetry.Client
	if cfg.APIToken == "" {
		log.Warn(ctx, "no api token configured, using synthetic telemetry")
		client = fake.New(fake.WithEncounters(cfg.Encounters...))
	} else {
		client = telemetry.NewHTTPClient(cfg.APIBaseURL, cfg.APIToken,
			telemetry.WithRateLimiter(telemetry.NewRateLimiter(cfg.RatePerSecond, cfg.RateBurst)),
			telemetry.WithRetry(cfg.MaxRetries, time.Duration(cfg.BaseBackoffMS)*time.Millisecond),
		)
	}

	var storeOpts []repository.StoreOption
	if cfg.DocumentDir != "" {
		storeOpts = append(storeOpts, repository.WithDocumentDir(cfg.DocumentDir))
	}
	store, err := repository.NewMemStore(storeOpts...)
	if err != nil {
		return nil, nil, err
	}

	ingestor := ingest.New(client, store,
		ingest.WithCastConfig(castmetrics.Config{
			GCDLengthMS:    cfg.GCDLengthMS,
			GapThresholdMS: cfg.GapThresholdMS,
		}),
	)
	pipe := pipeline.New(client, store, ingestor,
		pipeline.WithEncounters(cfg.Encounters...),
		pipeline.WithWatchedGuilds(cfg.WatchedGuilds...),
		pipeline.WithMaxPerEncounter(cfg.MaxPerEncounter),
		pipeline.WithWorkers(cfg.Workers),
	)

	svc := app.New(client, store,
		app.WithIngestor(ingestor),
		app.WithPipeline(pipe),
	)
	return svc, cfg, nil
}
