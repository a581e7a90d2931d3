package dedupe

// defaultMaxSize bounds the seen set; discovery runs never approach it.
const defaultMaxSize = 50_000

// Option applies a configuration option to the deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of codes kept. Zero or negative means
// unbounded.
func WithMaxSize(size int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = size
	}
}
