// Package pair selects the extremal pair from a comparison matrix.
package pair

import (
	"math"

	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/internal/domain/model"
)

// Best scans mat for the best-ranked pair of distinct users under the
// matrix's metric: the global minimum for distance, the global maximum for
// similarity.
//
// The diagonal is always excluded. For similarity only the cells above the
// diagonal are scanned, so the same unordered pair is never reported twice;
// NaN cells (pairs involving a degenerate embedding) are skipped. Ties go to
// the first extremal cell in row-major order, which keeps results
// reproducible for a given input ordering regardless of how the matrix was
// computed.
func Best(mat *metric.Matrix) (model.Match, error) {
	n := mat.Size()
	if n < 2 {
		return model.Match{}, ErrInsufficientUsers
	}

	switch mat.Metric() {
	case metric.Similarity:
		return mostSimilar(mat)
	default:
		return closest(mat)
	}
}

// closest returns the off-diagonal minimum, scanning every cell row-major
// the way the distance variant always has.
func closest(mat *metric.Matrix) (model.Match, error) {
	users := mat.Users()
	best := model.Match{Score: math.Inf(1)}
	found := false
	for i := 0; i < mat.Size(); i++ {
		for j := 0; j < mat.Size(); j++ {
			if i == j {
				continue
			}
			v := mat.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			// Strict comparison keeps the first extremal cell on ties.
			if v < best.Score {
				best = model.Match{UserA: users[i], UserB: users[j], Score: v}
				found = true
			}
		}
	}
	if !found {
		return model.Match{}, ErrDegenerateVector
	}
	return best, nil
}

// mostSimilar returns the maximum above the diagonal (i < j), so each
// unordered pair is considered once.
func mostSimilar(mat *metric.Matrix) (model.Match, error) {
	users := mat.Users()
	best := model.Match{Score: math.Inf(-1)}
	found := false
	for i := 0; i < mat.Size(); i++ {
		for j := i + 1; j < mat.Size(); j++ {
			v := mat.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if v > best.Score {
				best = model.Match{UserA: users[i], UserB: users[j], Score: v}
				found = true
			}
		}
	}
	if !found {
		return model.Match{}, ErrDegenerateVector
	}
	return best, nil
}
