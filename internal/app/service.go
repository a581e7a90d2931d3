// Package app provides the core service exposed to calling collaborators
// (API and agent layers): per-fight ingestion, rotation scoring, and the
// benchmark pipeline.
package app

import (
	"context"
	"fmt"

	"github.com/raidsight/raidsight/internal/adapters/repository"
	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/rotation"
	"github.com/raidsight/raidsight/internal/ingest"
	"github.com/raidsight/raidsight/internal/pipeline"
	"github.com/raidsight/raidsight/pkg/logger"
	"github.com/raidsight/raidsight/pkg/metrics"
)

// Service implements the engine's entry points. Collaborators are injected
// explicitly; nothing is looked up from ambient globals.
type Service struct {
	client   telemetry.Client
	store    repository.Store
	ingestor *ingest.Ingestor
	pipeline *pipeline.Pipeline
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithIngestor replaces the default ingestor.
func WithIngestor(i *ingest.Ingestor) Option {
	return func(s *Service) {
		if i != nil {
			s.ingestor = i
		}
	}
}

// WithPipeline replaces the default benchmark pipeline.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(s *Service) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around a telemetry client and a store.
func New(client telemetry.Client, store repository.Store, opts ...Option) *Service {
	s := &Service{
		client: client,
		store:  store,
		logger: logger.Get().Named("app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ingestor == nil {
		s.ingestor = ingest.New(client, store)
	}
	if s.pipeline == nil {
		s.pipeline = pipeline.New(client, store, s.ingestor)
	}
	return s
}

// IngestFight computes and persists all metrics for one fight.
func (s *Service) IngestFight(ctx context.Context, reportCode string, fightID int) (ingest.FightResult, error) {
	meta, err := s.client.ReportMetadata(ctx, reportCode)
	if err != nil {
		return ingest.FightResult{}, err
	}
	fight, ok := findFight(meta, fightID)
	if !ok {
		return ingest.FightResult{}, fmt.Errorf("%w: fight %d in report %s", ErrFightNotFound, fightID, reportCode)
	}
	return s.ingestor.Fight(ctx, meta, fight)
}

// ScoreRotation grades one player's fight. Missing metrics trigger a fresh
// ingestion of the fight; a missing benchmark entry falls back to the
// static rule tables.
func (s *Service) ScoreRotation(ctx context.Context, reportCode string, fightID int, player string) (rotation.Report, error) {
	meta, err := s.client.ReportMetadata(ctx, reportCode)
	if err != nil {
		return rotation.Report{}, err
	}
	fight, ok := findFight(meta, fightID)
	if !ok {
		return rotation.Report{}, fmt.Errorf("%w: fight %d in report %s", ErrFightNotFound, fightID, reportCode)
	}
	fightRef := repository.FightRef{ReportCode: reportCode, FightID: fightID}

	// Metrics may already be persisted from a previous ingestion.
	cast, haveCast, err := s.store.CastMetric(ctx, fightRef, player)
	if err != nil {
		return rotation.Report{}, err
	}
	if !haveCast {
		if _, err := s.ingestor.Fight(ctx, meta, fight); err != nil {
			return rotation.Report{}, err
		}
		cast, haveCast, err = s.store.CastMetric(ctx, fightRef, player)
		if err != nil {
			return rotation.Report{}, err
		}
	}

	summary, err := s.client.FightSummary(ctx, reportCode, fightID)
	if err != nil {
		return rotation.Report{}, err
	}
	row, haveRow := findPlayer(summary, player)
	if !haveRow {
		return rotation.Report{}, fmt.Errorf("%w: %s in fight %d", ErrPlayerNotFound, player, fightID)
	}

	playerMetrics := rotation.PlayerMetrics{
		AbilityBreakdown: row.AbilityDamage,
	}
	if haveCast {
		playerMetrics.Cast = &cast
	}
	if cds, err := s.store.CooldownRecords(ctx, fightRef, player); err == nil {
		playerMetrics.Cooldowns = cds
	}
	if snap, ok, err := s.store.ResourceSnapshot(ctx, fightRef, player, "mana"); err == nil && ok {
		playerMetrics.Resource = &snap
	}
	if row.HealingDone > 0 {
		overheal := row.OverhealPct
		playerMetrics.OverhealPct = &overheal
	}

	var doc *benchmark.Document
	if d, ok, err := s.store.Benchmark(ctx, fight.Encounter); err == nil && ok {
		doc = &d
	}
	rules, source := rotation.ResolveWithContext(doc, row.Class, row.Spec, fight.Encounter)

	report := rotation.Score(player, row.Class, row.Spec, playerMetrics, rules, source)
	metrics.RecordRotationScored()
	s.logger.Info(ctx, "rotation scored",
		logger.String("player", player),
		logger.String("source", string(source)),
		logger.String("status", string(report.Status)),
		logger.Float64("score", report.Score),
	)
	return report, nil
}

// RunBenchmarkPipeline runs discovery, ingestion, and compute per opts.
func (s *Service) RunBenchmarkPipeline(ctx context.Context, opts pipeline.Options) (pipeline.Result, error) {
	return s.pipeline.Run(ctx, opts)
}

func findFight(meta model.ReportMetadata, fightID int) (model.FightWindow, bool) {
	for _, f := range meta.Fights {
		if f.FightID == fightID {
			return f, true
		}
	}
	return model.FightWindow{}, false
}

func findPlayer(summary telemetry.Summary, name string) (telemetry.PlayerSummary, bool) {
	for _, p := range summary.Players {
		if p.Name == name {
			return p, true
		}
	}
	return telemetry.PlayerSummary{}, false
}
