// Package repository keeps an in-memory record of recent analysis runs.
//
// Only outcomes are kept - pair, score, input sizes, timing. Embeddings and
// matrices never outlive their pipeline call.
package repository

import (
	"context"
	"time"

	"github.com/unzippd/portfolio/internal/domain/model"
)

// Run captures the outcome of one completed analysis.
type Run struct {
	ID       string        `json:"id"`
	Metric   string        `json:"metric"`
	Match    model.Match   `json:"match"`
	Rows     int           `json:"rows"`
	Users    int           `json:"users"`
	Duration time.Duration `json:"duration_ns"`
	At       time.Time     `json:"at"`
}

// Store provides access to the run history.
type Store interface {
	// Record appends a completed run, evicting the oldest past capacity.
	Record(ctx context.Context, run Run)

	// Recent returns up to n runs, newest first.
	// Returns ErrInvalidLimit when n is less than one.
	Recent(ctx context.Context, n int) ([]Run, error)

	// Count returns the number of runs currently held.
	Count(ctx context.Context) int
}
