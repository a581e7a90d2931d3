package repository

// StoreOption applies a configuration option to the MemStore.
type StoreOption func(*MemStore)

// WithDocumentDir enables benchmark-document persistence under dir, one
// JSON file per encounter.
func WithDocumentDir(dir string) StoreOption {
	return func(s *MemStore) {
		s.docDir = dir
	}
}
