package dedupe

// Option applies a configuration option to the memory deduper.
type Option func(*memoryDeduper)

// WithMaxSize caps the number of tracked keys; oldest entries are evicted
// once the cap is reached. Values below one keep the default.
func WithMaxSize(n int) Option {
	return func(d *memoryDeduper) {
		if n > 0 {
			d.maxSize = n
		}
	}
}
