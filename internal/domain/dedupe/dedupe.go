// Package dedupe tracks recently seen submission keys.
//
// The contact relay uses it to swallow accidental double-posts: a bounded
// cache of content hashes, oldest entries evicted first.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen keys so repeated submissions can be rejected.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records it if
	// not. Returns true if key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord drops a key, allowing it to be submitted again. Used to roll
	// back a recorded key whose downstream processing failed.
	Unrecord(ctx context.Context, key string)

	// Size returns the number of keys currently tracked.
	Size() int
}

// memoryDeduper implements Deduper with a map plus a FIFO eviction ring.
type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, oldest first
	maxSize int
}

// NewMemoryDeduper creates a bounded in-memory deduper.
func NewMemoryDeduper(opts ...Option) Deduper {
	d := &memoryDeduper{
		maxSize: 1024,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.order = make([]string, 0, d.maxSize)
	return d
}

func (d *memoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if len(d.order) >= d.maxSize {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	return false
}

func (d *memoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; !ok {
		return
	}
	delete(d.seen, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *memoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
