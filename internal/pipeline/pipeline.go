// Package pipeline orchestrates the three benchmark stages: Discover
// candidate reports, Ingest them into the corpus, and Compute per-encounter
// benchmark documents. The stages run in sequence but each is independently
// invocable via Options.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/raidsight/raidsight/internal/adapters/repository"
	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/dedupe"
	"github.com/raidsight/raidsight/internal/ingest"
	"github.com/raidsight/raidsight/pkg/logger"
	"github.com/raidsight/raidsight/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultMaxPerEncounter = 25
	defaultWorkers         = 4
)

// Candidate is one discovered report attributed to a single encounter.
type Candidate struct {
	ReportCode  string
	EncounterID int
}

// Options select what one run does. A zero EncounterID means all configured
// encounters; ComputeOnly skips discovery and ingestion.
type Options struct {
	EncounterID int
	ComputeOnly bool

	// Progress, when set, is called as ingestion advances.
	Progress func(done, total int)
}

// Result reports what one run did. Errors holds one string per failed
// report; failures never abort the run.
type Result struct {
	RunID      string
	Discovered int
	Ingested   int
	Failed     int
	Computed   int
	Errors     []string
}

// Pipeline wires the stages to their collaborators.
type Pipeline struct {
	client   telemetry.Client
	store    repository.Store
	ingestor *ingest.Ingestor
	deduper  dedupe.Deduper
	logger   logger.Logger

	encounters      []int
	watchedGuilds   []int
	maxPerEncounter int
	workers         int
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithEncounters sets the encounters the pipeline maintains benchmarks for.
func WithEncounters(ids ...int) Option {
	return func(p *Pipeline) {
		if len(ids) > 0 {
			p.encounters = ids
		}
	}
}

// WithWatchedGuilds sets the curated guild list discovery also pulls from.
func WithWatchedGuilds(ids ...int) Option {
	return func(p *Pipeline) { p.watchedGuilds = ids }
}

// WithMaxPerEncounter caps candidates discovered per encounter.
func WithMaxPerEncounter(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPerEncounter = n
		}
	}
}

// WithWorkers bounds concurrent report ingestion.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds a Pipeline.
func New(client telemetry.Client, store repository.Store, ingestor *ingest.Ingestor, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:          client,
		store:           store,
		ingestor:        ingestor,
		deduper:         dedupe.NewInMemoryDeduper(),
		logger:          logger.Get().Named("pipeline"),
		maxPerEncounter: defaultMaxPerEncounter,
		workers:         defaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the selected stages and returns counts plus per-report
// error strings.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	p.logger.Info(ctx, "benchmark pipeline run starting",
		logger.String("runID", result.RunID),
		logger.Int("encounter", opts.EncounterID),
	)

	if !opts.ComputeOnly {
		candidates, err := p.discover(ctx, opts.EncounterID)
		if err != nil {
			return result, err
		}
		result.Discovered = len(candidates)
		p.ingest(ctx, candidates, opts.Progress, &result)
	}

	if err := p.compute(ctx, opts.EncounterID, &result); err != nil {
		return result, err
	}

	p.logger.Info(ctx, "benchmark pipeline run finished",
		logger.String("runID", result.RunID),
		logger.Int("discovered", result.Discovered),
		logger.Int("ingested", result.Ingested),
		logger.Int("failed", result.Failed),
		logger.Int("computed", result.Computed),
	)
	return result, nil
}

// discover pulls candidates from the fastest-clears index and the watched
// guilds. A report code is attributed to its first-seen encounter only, and
// reports already in the corpus are excluded.
func (p *Pipeline) discover(ctx context.Context, onlyEncounter int) ([]Candidate, error) {
	var out []Candidate
	perEncounter := make(map[int]int)

	add := func(r telemetry.Ranking) error {
		if r.ReportCode == "" || r.EncounterID == 0 {
			return nil
		}
		if perEncounter[r.EncounterID] >= p.maxPerEncounter {
			return nil
		}
		if p.deduper.SeenAndRecord(ctx, r.ReportCode) {
			return nil
		}
		ingested, err := p.store.HasReport(ctx, r.ReportCode)
		if err != nil {
			return err
		}
		if ingested {
			return nil
		}
		perEncounter[r.EncounterID]++
		out = append(out, Candidate{ReportCode: r.ReportCode, EncounterID: r.EncounterID})
		return nil
	}

	for _, enc := range p.encounters {
		if onlyEncounter != 0 && enc != onlyEncounter {
			continue
		}
		clears, err := p.client.FastestClears(ctx, enc, p.maxPerEncounter)
		if err != nil {
			return nil, fmt.Errorf("discover encounter %d: %w", enc, err)
		}
		for _, r := range clears {
			if err := add(r); err != nil {
				return nil, err
			}
		}
	}

	for _, guild := range p.watchedGuilds {
		reports, err := p.client.GuildReports(ctx, guild, p.maxPerEncounter)
		if err != nil {
			// A missing guild should not sink the whole discovery.
			p.logger.Warn(ctx, "guild discovery failed",
				logger.Int("guild", guild),
				logger.Error(err),
			)
			continue
		}
		for _, r := range reports {
			if onlyEncounter != 0 && r.EncounterID != onlyEncounter {
				continue
			}
			if err := add(r); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ingest fans candidate reports out over a bounded worker group. Each
// report is its own failure domain: an error is recorded and the rest of
// the run continues.
func (p *Pipeline) ingest(ctx context.Context, candidates []Candidate, progress func(done, total int), result *Result) {
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			_, err := p.ingestor.Report(gctx, c.ReportCode)

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, err.Error())
				metrics.RecordReportFailed()
				p.deduper.Unrecord(ctx, c.ReportCode)
			} else {
				result.Ingested++
			}
			if progress != nil {
				progress(done, len(candidates))
			}
			return nil // per-report failures never cancel the group
		})
	}
	_ = g.Wait()
}

// compute aggregates the corpus per encounter and upserts each document.
// An encounter with no samples leaves its prior document untouched.
func (p *Pipeline) compute(ctx context.Context, onlyEncounter int, result *Result) error {
	encounters, err := p.store.Encounters(ctx)
	if err != nil {
		return fmt.Errorf("list encounters: %w", err)
	}
	for _, enc := range encounters {
		if onlyEncounter != 0 && enc != onlyEncounter {
			continue
		}
		samples, err := p.store.SamplesByEncounter(ctx, enc)
		if err != nil {
			return fmt.Errorf("load corpus for encounter %d: %w", enc, err)
		}
		start := time.Now()
		doc, ok := benchmark.Compute(enc, samples, time.Now().UTC())
		if !ok {
			continue
		}
		if err := p.store.UpsertBenchmark(ctx, doc); err != nil {
			return fmt.Errorf("upsert benchmark for encounter %d: %w", enc, err)
		}
		metrics.RecordBenchmarkCompute()
		metrics.RecordComputeLatency(float64(time.Since(start).Milliseconds()))
		result.Computed++
	}
	return nil
}
