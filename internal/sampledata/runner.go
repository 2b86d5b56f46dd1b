package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/unzippd/portfolio/internal/domain/analyze"
	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/pkg/logger"
)

// Run generates a table per config, writes it to disk and, depending on the
// config, verifies it locally and/or submits it to a running service.
func Run(ctx context.Context, config *Config) error {
	log := logger.Get()

	if config.NumUsers < 2 {
		return fmt.Errorf("need at least 2 users, got %d", config.NumUsers)
	}
	if config.NumRows < config.NumUsers {
		return fmt.Errorf("need at least as many rows as users (%d < %d)", config.NumRows, config.NumUsers)
	}
	m, err := metric.Parse(config.Metric)
	if err != nil {
		return err
	}

	stats := &Stats{}

	users := generateUsers(config.NumUsers)
	rows := generateRows(users, config.NumRows)
	stats.RowsGenerated = len(rows)
	stats.UsersCovered = len(users)

	path := config.OutputFile
	if path == "" {
		path = "sample_" + time.Now().Format("20060102_150405") + ".csv"
	}
	if err := writeCSV(path, rows, config.HasHeader); err != nil {
		return err
	}
	log.Info(ctx, "sample table written",
		logger.String("path", path),
		logger.Int("rows", stats.RowsGenerated),
		logger.Int("users", stats.UsersCovered),
	)

	if config.Verify {
		runner := analyze.New(analyze.WithHeaderRow(config.HasHeader))
		report, err := runner.Run(ctx, path, m)
		if err != nil {
			return fmt.Errorf("local verification failed: %w", err)
		}
		stats.Verified = true
		log.Info(ctx, "local analysis",
			logger.String("metric", m.String()),
			logger.String("userA", report.Match.UserA),
			logger.String("userB", report.Match.UserB),
			logger.Float64("score", report.Match.Score),
		)
	}

	if config.BaseURL != "" {
		result, err := submit(ctx, config, path)
		if err != nil {
			return err
		}
		stats.Submitted = true
		log.Info(ctx, "service analysis",
			logger.String("metric", result.Metric),
			logger.String("userA", result.UserA),
			logger.String("userB", result.UserB),
			logger.Float64("score", result.Score),
		)
	}

	return nil
}

// writeCSV writes the rows as a two-column table.
func writeCSV(path string, rows [][2]string, hasHeader bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if hasHeader {
		if err := w.Write([]string{"user", "time"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row[:]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
