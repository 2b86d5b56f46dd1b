// Package analyze drives the temporal-similarity pipeline end to end.
//
// One call runs: read table -> encode times -> aggregate per user -> compute
// pairwise matrix -> select extremal pair. The run is synchronous and purely
// in-memory after the single file read at entry; every intermediate entity is
// scoped to the call, so concurrent runs over different files need no
// coordination. Failures are typed and propagate to the caller untouched -
// nothing is logged-and-swallowed here.
package analyze

import (
	"context"

	"github.com/unzippd/portfolio/internal/domain/encode"
	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/internal/domain/model"
	"github.com/unzippd/portfolio/internal/domain/pair"
	"github.com/unzippd/portfolio/internal/domain/profile"
	"github.com/unzippd/portfolio/internal/tabular"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithHeaderRow controls whether the first row of input files is treated as a
// header and stripped before parsing.
func WithHeaderRow(hasHeader bool) Option {
	return func(a *Analyzer) {
		a.hasHeader = hasHeader
	}
}

// WithMatrixWorkers bounds the goroutines used for matrix rows.
func WithMatrixWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// Analyzer runs the pipeline. It holds configuration only - no state crosses
// invocations, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	hasHeader bool
	workers   int
}

// Report is the outcome of one run: the extremal pair plus the input sizes
// the run saw, for operational reporting.
type Report struct {
	Match model.Match
	Rows  int
	Users int
}

// New creates an Analyzer with configuration options. By default input files
// are expected to carry a header row.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		hasHeader: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyzes the table at path under m and returns the extremal pair.
//
// Error kinds, in pipeline order: tabular.ErrBadFormat, encode.ErrParse (with
// the offending data row), pair.ErrInsufficientUsers, pair.ErrDegenerateVector.
func (a *Analyzer) Run(ctx context.Context, path string, m metric.Metric) (Report, error) {
	records, err := tabular.Read(ctx, path, a.hasHeader)
	if err != nil {
		return Report{}, err
	}

	encoded := make([]profile.Record, len(records))
	for i, rec := range records {
		emb, err := encode.EncodeRecord(rec, i+1)
		if err != nil {
			return Report{}, err
		}
		encoded[i] = profile.Record{UserID: rec.UserID, Embedding: emb}
	}

	profiles := profile.Aggregate(encoded)

	var opts []metric.Option
	if a.workers > 0 {
		opts = append(opts, metric.WithWorkers(a.workers))
	}
	mat, err := metric.Compute(ctx, profiles, m, opts...)
	if err != nil {
		return Report{}, err
	}

	match, err := pair.Best(mat)
	if err != nil {
		return Report{}, err
	}

	return Report{Match: match, Rows: len(records), Users: len(profiles)}, nil
}
