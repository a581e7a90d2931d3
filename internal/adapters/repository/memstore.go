package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/pkg/metrics"
)

// MemStore is an in-memory Store. Benchmark documents optionally persist as
// one JSON file per encounter under a document directory, surviving
// restarts; everything else is process-lifetime state.
type MemStore struct {
	mu sync.RWMutex

	metrics   map[FightRef]FightMetrics
	samples   map[int][]benchmark.FightSample // encounterID -> corpus
	reports   map[string]int                  // report code -> encounterID
	documents map[int]benchmark.Document

	docDir string
}

// NewMemStore builds a store, loading any persisted benchmark documents
// from the configured document directory.
func NewMemStore(opts ...StoreOption) (*MemStore, error) {
	s := &MemStore{
		metrics:   make(map[FightRef]FightMetrics),
		samples:   make(map[int][]benchmark.FightSample),
		reports:   make(map[string]int),
		documents: make(map[int]benchmark.Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.docDir != "" {
		if err := s.loadDocuments(); err != nil {
			return nil, fmt.Errorf("load benchmark documents: %w", err)
		}
	}
	return s, nil
}

// SaveFightMetrics persists all derived metrics for one fight.
func (s *MemStore) SaveFightMetrics(_ context.Context, m FightMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[m.Fight] = m
	return nil
}

// CastMetric reads one player's cast metric for a fight.
func (s *MemStore) CastMetric(_ context.Context, fight FightRef, player string) (model.CastMetric, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[fight]
	if !ok {
		return model.CastMetric{}, false, nil
	}
	cm, ok := m.Casts[player]
	return cm, ok, nil
}

// CooldownRecords reads a player's tracked-cooldown records for a fight.
func (s *MemStore) CooldownRecords(_ context.Context, fight FightRef, player string) ([]model.CooldownRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[fight]
	if !ok {
		return nil, nil
	}
	var out []model.CooldownRecord
	for _, r := range m.Cooldowns {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out, nil
}

// CancelSummary reads one player's cancelled-cast summary for a fight.
func (s *MemStore) CancelSummary(_ context.Context, fight FightRef, player string) (model.CancelledCastSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[fight]
	if !ok {
		return model.CancelledCastSummary{}, false, nil
	}
	c, ok := m.Cancels[player]
	return c, ok, nil
}

// ResourceSnapshot reads one player's snapshot for a resource kind.
func (s *MemStore) ResourceSnapshot(_ context.Context, fight FightRef, player, resourceKind string) (model.ResourceSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[fight]
	if !ok {
		return model.ResourceSnapshot{}, false, nil
	}
	r, ok := m.Resources[player]
	if !ok || r.ResourceKind != resourceKind {
		return model.ResourceSnapshot{}, false, nil
	}
	return r, true, nil
}

// DotSummaries reads a player's DoT refresh summaries for a fight.
func (s *MemStore) DotSummaries(_ context.Context, fight FightRef, player string) ([]model.DotRefreshSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[fight]
	if !ok {
		return nil, nil
	}
	var out []model.DotRefreshSummary
	for _, d := range m.Dots {
		if d.Player == player {
			out = append(out, d)
		}
	}
	return out, nil
}

// SaveFightSample adds one kill to the benchmark corpus.
func (s *MemStore) SaveFightSample(_ context.Context, sample benchmark.FightSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[sample.EncounterID] = append(s.samples[sample.EncounterID], sample)
	return nil
}

// SamplesByEncounter returns a copy of the corpus for one encounter.
func (s *MemStore) SamplesByEncounter(_ context.Context, encounterID int) ([]benchmark.FightSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.samples[encounterID]
	out := make([]benchmark.FightSample, len(src))
	copy(out, src)
	return out, nil
}

// Encounters lists encounter ids present in the corpus, ascending.
func (s *MemStore) Encounters(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, 0, len(s.samples))
	for id := range s.samples {
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}

// MarkReportIngested records corpus membership for a report.
func (s *MemStore) MarkReportIngested(_ context.Context, code string, encounterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[code] = encounterID
	metrics.UpdateCorpusReports(len(s.reports))
	return nil
}

// HasReport reports corpus membership.
func (s *MemStore) HasReport(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.reports[code]
	return ok, nil
}

// UpsertBenchmark atomically replaces the document for an encounter. With a
// document directory configured the JSON file is written to a temp path and
// renamed, so readers never observe a partial document.
func (s *MemStore) UpsertBenchmark(_ context.Context, doc benchmark.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docDir != "" {
		if err := s.writeDocument(doc); err != nil {
			return err
		}
	}
	s.documents[doc.EncounterID] = doc
	return nil
}

// Benchmark reads the document for an encounter.
func (s *MemStore) Benchmark(_ context.Context, encounterID int) (benchmark.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[encounterID]
	return doc, ok, nil
}

func (s *MemStore) documentPath(encounterID int) string {
	return filepath.Join(s.docDir, fmt.Sprintf("encounter-%d.json", encounterID))
}

func (s *MemStore) writeDocument(doc benchmark.Document) error {
	if err := os.MkdirAll(s.docDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.documentPath(doc.EncounterID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.documentPath(doc.EncounterID))
}

func (s *MemStore) loadDocuments() error {
	entries, err := os.ReadDir(s.docDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "encounter-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.docDir, name))
		if err != nil {
			return err
		}
		var doc benchmark.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		s.documents[doc.EncounterID] = doc
	}
	return nil
}

var _ Store = (*MemStore)(nil)
