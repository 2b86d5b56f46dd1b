package metric

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/unzippd/portfolio/internal/domain/model"
)

// Matrix is a full pairwise comparison matrix over an ordered set of users.
// It is symmetric by construction: each unordered pair is computed once for
// i <= j and mirrored, so M[i][j] == M[j][i] exactly.
type Matrix struct {
	metric Metric
	users  []string
	cells  [][]float64
}

// Option applies a configuration option to matrix computation.
type Option func(*computeConfig)

type computeConfig struct {
	workers int
}

// WithWorkers bounds the number of goroutines computing matrix rows. Values
// below one fall back to the number of CPUs. Parallelism only splits work;
// cell values and ordering are identical to the serial computation.
func WithWorkers(n int) Option {
	return func(c *computeConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Compute builds the n×n comparison matrix for profiles under m.
//
// Diagonal cells hold the metric's identity value (0 for distance, 1 for
// similarity). Under the similarity metric, any cell involving a degenerate
// (zero) embedding is NaN, including the diagonal; selection layers skip NaN
// cells. Context is checked between row batches so oversized inputs can be
// abandoned.
func Compute(ctx context.Context, profiles []model.UserProfile, m Metric, opts ...Option) (*Matrix, error) {
	cfg := computeConfig{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(profiles)
	users := make([]string, n)
	cells := make([][]float64, n)
	for i, p := range profiles {
		users[i] = p.UserID
		cells[i] = make([]float64, n)
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := cfg.workers
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				fillRow(cells, profiles, m, i)
			}
		}()
	}

	var cancelled error
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		case rows <- i:
			continue
		}
		break
	}
	close(rows)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	return &Matrix{metric: m, users: users, cells: cells}, nil
}

// fillRow computes cells[i][j] for j >= i and mirrors each value to [j][i].
// Each unordered pair belongs to exactly one row, so rows can be filled
// concurrently without coordination.
func fillRow(cells [][]float64, profiles []model.UserProfile, m Metric, i int) {
	for j := i; j < len(profiles); j++ {
		v := compare(m, profiles[i].Embedding, profiles[j].Embedding, i == j)
		cells[i][j] = v
		cells[j][i] = v
	}
}

func compare(m Metric, a, b model.TimeEmbedding, self bool) float64 {
	switch m {
	case Similarity:
		return cosine(a, b, self)
	default:
		if self {
			return 0
		}
		return math.Hypot(a.Sin-b.Sin, a.Cos-b.Cos)
	}
}

// cosine returns NaN when either vector is degenerate; otherwise the
// self-comparison is exactly 1 rather than whatever rounding the division
// would produce.
func cosine(a, b model.TimeEmbedding, self bool) float64 {
	na := math.Hypot(a.Sin, a.Cos)
	nb := math.Hypot(b.Sin, b.Cos)
	if na < degenerateNorm || nb < degenerateNorm {
		return math.NaN()
	}
	if self {
		return 1
	}
	return (a.Sin*b.Sin + a.Cos*b.Cos) / (na * nb)
}

// Metric reports which strategy produced the matrix.
func (m *Matrix) Metric() Metric { return m.metric }

// Size returns the number of users along each dimension.
func (m *Matrix) Size() int { return len(m.users) }

// Users returns the ordered user ids indexing both dimensions.
func (m *Matrix) Users() []string { return m.users }

// At returns the comparison value for users i and j.
func (m *Matrix) At(i, j int) float64 { return m.cells[i][j] }
