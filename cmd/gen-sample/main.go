package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/unzippd/portfolio/internal/sampledata"
	"github.com/unzippd/portfolio/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumUsers = 20
	defaultNumRows  = 500
	defaultTimeout  = 30 * time.Second
	defaultDeadline = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "", "Base URL of a running service; when set, the table is submitted to POST /analysis")
		numUsers   = flag.Int("users", defaultNumUsers, "Number of distinct users")
		numRows    = flag.Int("rows", defaultNumRows, "Number of activity rows")
		metricName = flag.String("metric", "distance", "Comparison metric: distance or similarity")
		outputFile = flag.String("output", "", "Output CSV file (default: sample_TIMESTAMP.csv)")
		noHeader   = flag.Bool("no-header", false, "Omit the header row")
		verify     = flag.Bool("verify", false, "Run the analysis locally over the generated table")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDeadline)
	defer cancel()

	config := &sampledata.Config{
		BaseURL:    *baseURL,
		NumUsers:   *numUsers,
		NumRows:    *numRows,
		Metric:     *metricName,
		OutputFile: *outputFile,
		HasHeader:  !*noHeader,
		Verify:     *verify,
		Timeout:    *timeout,
	}

	if err := sampledata.Run(ctx, config); err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
