// Package dedupe tracks first-seen report codes so discovery attributes
// each report to a single encounter.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen report codes.
type Deduper interface {
	// SeenAndRecord atomically checks if code was seen and records it if
	// not. Returns true if code was already seen.
	SeenAndRecord(ctx context.Context, code string) bool

	// Unrecord removes a code, allowing it to be re-discovered (e.g. after
	// a failed ingestion).
	Unrecord(ctx context.Context, code string)

	Size() int
}

// inMemoryDeduper is a bounded map with FIFO eviction. maxSize <= 0 means
// unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, code string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[code]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	d.seen[code] = struct{}{}
	d.order = append(d.order, code)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[code]; !ok {
		return
	}
	delete(d.seen, code)
	for i, c := range d.order {
		if c == code {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
