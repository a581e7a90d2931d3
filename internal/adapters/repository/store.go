// Package repository defines the storage contract for derived metrics, the
// benchmark corpus, and benchmark documents.
package repository

import (
	"context"

	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/model"
)

// FightRef identifies one fight within one report.
type FightRef struct {
	ReportCode string
	FightID    int
}

// FightMetrics bundles everything one ingestion run derives for a fight, so
// persistence is a single call per fight.
type FightMetrics struct {
	Fight     FightRef
	Casts     map[string]model.CastMetric
	Cooldowns []model.CooldownRecord
	Cancels   map[string]model.CancelledCastSummary
	Resources map[string]model.ResourceSnapshot
	Dots      []model.DotRefreshSummary
}

// Store provides read/write access to derived metrics and benchmark state.
// "Not found" is reported through the ok return, never through an error.
type Store interface {
	// SaveFightMetrics persists all derived metrics for one fight,
	// replacing any prior metrics for the same fight.
	SaveFightMetrics(ctx context.Context, m FightMetrics) error

	// CastMetric reads one player's cast metric for a fight.
	CastMetric(ctx context.Context, fight FightRef, player string) (model.CastMetric, bool, error)

	// CooldownRecords reads a player's tracked-cooldown records for a fight.
	CooldownRecords(ctx context.Context, fight FightRef, player string) ([]model.CooldownRecord, error)

	// CancelSummary reads one player's cancelled-cast summary for a fight.
	CancelSummary(ctx context.Context, fight FightRef, player string) (model.CancelledCastSummary, bool, error)

	// ResourceSnapshot reads one player's snapshot for a resource kind.
	ResourceSnapshot(ctx context.Context, fight FightRef, player, resourceKind string) (model.ResourceSnapshot, bool, error)

	// DotSummaries reads a player's DoT refresh summaries for a fight.
	DotSummaries(ctx context.Context, fight FightRef, player string) ([]model.DotRefreshSummary, error)

	// SaveFightSample adds one kill to the benchmark corpus.
	SaveFightSample(ctx context.Context, s benchmark.FightSample) error

	// SamplesByEncounter returns the corpus for one encounter.
	SamplesByEncounter(ctx context.Context, encounterID int) ([]benchmark.FightSample, error)

	// Encounters lists encounter ids present in the corpus, ascending.
	Encounters(ctx context.Context) ([]int, error)

	// MarkReportIngested records corpus membership for a report.
	MarkReportIngested(ctx context.Context, code string, encounterID int) error

	// HasReport reports corpus membership.
	HasReport(ctx context.Context, code string) (bool, error)

	// UpsertBenchmark atomically replaces the document for an encounter.
	UpsertBenchmark(ctx context.Context, doc benchmark.Document) error

	// Benchmark reads the document for an encounter.
	Benchmark(ctx context.Context, encounterID int) (benchmark.Document, bool, error)
}
