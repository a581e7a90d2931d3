// Package ingest runs the full per-fight pipeline: fetch raw events,
// normalize, derive every metric, and persist both the metrics and the
// fight's benchmark corpus sample.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/raidsight/raidsight/internal/adapters/repository"
	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/cancels"
	"github.com/raidsight/raidsight/internal/domain/castmetrics"
	"github.com/raidsight/raidsight/internal/domain/cooldowns"
	"github.com/raidsight/raidsight/internal/domain/dots"
	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/normalize"
	"github.com/raidsight/raidsight/internal/domain/resources"
	"github.com/raidsight/raidsight/internal/domain/rotation"
	"github.com/raidsight/raidsight/internal/domain/types"
	"github.com/raidsight/raidsight/pkg/logger"
	"github.com/raidsight/raidsight/pkg/metrics"
)

// fetchKinds is the fixed set of event streams ingestion consumes.
var fetchKinds = []string{"cast", "begincast", "resourcechange", "death"}

// trackedResource is the depletable resource snapshots are built for.
const trackedResource = "mana"

// Ingestor owns the dependencies of a fight ingestion run. Collaborators
// are passed explicitly; there is no ambient client or store.
type Ingestor struct {
	client       telemetry.Client
	store        repository.Store
	castCfg      castmetrics.Config
	cdCatalog    cooldowns.Catalog
	dotCatalog   dots.Catalog
	resourceKind string
	logger       logger.Logger
}

// Option applies a configuration option to the Ingestor.
type Option func(*Ingestor)

// WithCastConfig overrides the GCD/gap model.
func WithCastConfig(cfg castmetrics.Config) Option {
	return func(i *Ingestor) { i.castCfg = cfg }
}

// WithCooldownCatalog overrides the tracked-cooldown table.
func WithCooldownCatalog(c cooldowns.Catalog) Option {
	return func(i *Ingestor) {
		if c != nil {
			i.cdCatalog = c
		}
	}
}

// WithDotCatalog overrides the tracked-DoT table.
func WithDotCatalog(c dots.Catalog) Option {
	return func(i *Ingestor) {
		if c != nil {
			i.dotCatalog = c
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(i *Ingestor) {
		if l != nil {
			i.logger = l
		}
	}
}

// New builds an Ingestor.
func New(client telemetry.Client, store repository.Store, opts ...Option) *Ingestor {
	i := &Ingestor{
		client:       client,
		store:        store,
		castCfg:      castmetrics.DefaultConfig(),
		cdCatalog:    cooldowns.DefaultCatalog(),
		dotCatalog:   dots.DefaultCatalog(),
		resourceKind: trackedResource,
		logger:       logger.Get().Named("ingest"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FightResult is one ingested fight.
type FightResult struct {
	Fight   repository.FightRef
	Events  int
	Players int
	Sample  benchmark.FightSample
}

// ReportResult summarizes one report's ingestion.
type ReportResult struct {
	Code        string
	EncounterID int
	Fights      []FightResult
}

// Fight ingests a single fight: all metric computers run over the
// normalized events and the results are persisted as one unit.
func (i *Ingestor) Fight(ctx context.Context, meta model.ReportMetadata, fight model.FightWindow) (FightResult, error) {
	raw, err := i.client.Events(ctx, meta.Code, fight, fetchKinds)
	if err != nil {
		return FightResult{}, fmt.Errorf("fight %d: %w", fight.FightID, err)
	}
	events := normalize.Events(raw, meta.ActorNames())
	metrics.RecordEventsNormalized(len(events))

	classes := make(map[string]string, len(meta.Actors))
	for _, p := range meta.Actors {
		classes[p.Name] = p.Class
	}

	fm := repository.FightMetrics{
		Fight:     repository.FightRef{ReportCode: meta.Code, FightID: fight.FightID},
		Casts:     castmetrics.Compute(events, fight, i.castCfg),
		Cooldowns: cooldowns.Compute(events, fight, i.cdCatalog, classes),
		Cancels:   cancels.Compute(events, fight),
		Resources: resources.Compute(events, fight, i.resourceKind),
		Dots:      dots.Compute(events, fight, i.dotCatalog, classes),
	}
	if err := i.store.SaveFightMetrics(ctx, fm); err != nil {
		return FightResult{}, fmt.Errorf("persist fight %d: %w", fight.FightID, err)
	}

	summary, err := i.client.FightSummary(ctx, meta.Code, fight.FightID)
	if err != nil {
		return FightResult{}, fmt.Errorf("fight %d summary: %w", fight.FightID, err)
	}
	sample := i.buildSample(meta, fight, fm, summary)
	metrics.RecordFightIngested()

	return FightResult{
		Fight:   fm.Fight,
		Events:  len(events),
		Players: len(fm.Casts),
		Sample:  sample,
	}, nil
}

// Report ingests every kill fight of a report and records corpus
// membership. The report is one failure domain: any error aborts only this
// report.
func (i *Ingestor) Report(ctx context.Context, code string) (ReportResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	}()

	meta, err := i.client.ReportMetadata(ctx, code)
	if err != nil {
		return ReportResult{}, fmt.Errorf("report %s: %w", code, err)
	}

	result := ReportResult{Code: code}
	for _, fight := range meta.Fights {
		if !fight.Kill || fight.Duration() == 0 {
			continue
		}
		fr, err := i.Fight(ctx, meta, fight)
		if err != nil {
			return ReportResult{}, fmt.Errorf("report %s: %w", code, err)
		}
		if err := i.store.SaveFightSample(ctx, fr.Sample); err != nil {
			return ReportResult{}, fmt.Errorf("report %s: persist sample: %w", code, err)
		}
		if result.EncounterID == 0 {
			result.EncounterID = fight.Encounter
		}
		result.Fights = append(result.Fights, fr)
	}
	if len(result.Fights) == 0 {
		return ReportResult{}, fmt.Errorf("report %s: no kill fights", code)
	}

	if err := i.store.MarkReportIngested(ctx, code, result.EncounterID); err != nil {
		return ReportResult{}, fmt.Errorf("report %s: mark ingested: %w", code, err)
	}
	metrics.RecordReportIngested()
	i.logger.Info(ctx, "report ingested",
		logger.String("code", code),
		logger.Int("fights", len(result.Fights)),
	)
	return result, nil
}

// buildSample joins the summary table with the derived metrics into one
// corpus sample. Summary rows without a matching cast metric still
// contribute throughput; their activity fields stay zero.
func (i *Ingestor) buildSample(meta model.ReportMetadata, fight model.FightWindow, fm repository.FightMetrics, summary telemetry.Summary) benchmark.FightSample {
	durationSec := float64(fight.Duration()) / 1000

	sample := benchmark.FightSample{
		ReportCode:    meta.Code,
		FightID:       fight.FightID,
		EncounterID:   fight.Encounter,
		EncounterName: fight.Name,
		DurationMS:    fight.Duration(),
		Deaths:        summary.Deaths,
	}

	cdByPlayer := make(map[string]map[string]benchmark.CooldownUse)
	for _, cd := range fm.Cooldowns {
		if cd.TimesUsed == 0 {
			continue
		}
		m := cdByPlayer[cd.Player]
		if m == nil {
			m = make(map[string]benchmark.CooldownUse)
			cdByPlayer[cd.Player] = m
		}
		m[cd.AbilityName] = benchmark.CooldownUse{Uses: cd.TimesUsed, EfficiencyPct: cd.EfficiencyPct}
	}

	for _, p := range summary.Players {
		role := rotation.RoleFor(p.Class, p.Spec)
		ps := benchmark.PlayerSample{
			Name:          p.Name,
			Class:         p.Class,
			Spec:          p.Spec,
			Role:          role,
			AbilityDamage: p.AbilityDamage,
			BuffUptimePct: p.BuffUptimePct,
			Consumables:   p.Consumables,
			CooldownUses:  cdByPlayer[p.Name],
		}
		if durationSec > 0 {
			if role == types.RoleHealer {
				ps.Throughput = p.HealingDone / durationSec
			} else {
				ps.Throughput = p.DamageDone / durationSec
			}
		}
		if cm, ok := fm.Casts[p.Name]; ok {
			ps.GCDUptimePct = cm.GCDUptimePct
			ps.CPM = cm.CastsPerMinute
		}
		sample.Players = append(sample.Players, ps)
	}
	return sample
}
