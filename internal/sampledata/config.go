// Package sampledata generates realistic activity tables for exercising the
// temporal-similarity tool, either locally or against a running service.
package sampledata

import "time"

// Config controls a generation run.
type Config struct {
	// BaseURL of a running service. When set, the generated table is
	// submitted to POST /analysis and the winning pair printed.
	BaseURL string

	// NumUsers is the number of distinct user ids.
	NumUsers int

	// NumRows is the number of activity rows spread over the users.
	NumRows int

	// Metric names the comparison strategy: distance or similarity.
	Metric string

	// OutputFile receives the CSV. Empty picks a timestamped name.
	OutputFile string

	// HasHeader controls whether a title row is written.
	HasHeader bool

	// Verify runs the pipeline locally over the generated table.
	Verify bool

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Stats accumulates counters over a run.
type Stats struct {
	RowsGenerated int
	UsersCovered  int
	Submitted     bool
	Verified      bool
}
