package repository

// Option applies a configuration option to the HistoryStore.
type Option func(*HistoryStore)

// WithCapacity bounds how many runs are kept before eviction.
func WithCapacity(n int) Option {
	return func(s *HistoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}
