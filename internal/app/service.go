// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unzippd/portfolio/internal/adapters/repository"
	"github.com/unzippd/portfolio/internal/domain/analyze"
	"github.com/unzippd/portfolio/internal/domain/dedupe"
	"github.com/unzippd/portfolio/internal/domain/encode"
	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/internal/domain/pair"
	"github.com/unzippd/portfolio/internal/mail"
	"github.com/unzippd/portfolio/internal/qr"
	"github.com/unzippd/portfolio/internal/tabular"
	"github.com/unzippd/portfolio/internal/upload"
	"github.com/unzippd/portfolio/pkg/logger"
	"github.com/unzippd/portfolio/pkg/metrics"
)

// Service implements the API dependencies for the portfolio system.
type Service struct {
	mu sync.RWMutex

	// Core components
	analyzer *analyze.Analyzer
	history  repository.Store
	guard    dedupe.Deduper
	uploads  *upload.Store
	codes    *qr.Generator
	mailer   mail.Mailer

	// Configuration
	hasHeader      bool
	matrixWorkers  int
	defaultMetric  metric.Metric
	historySize    int
	guardSize      int
	uploadDir      string
	maxUploadBytes int64
	qrDir          string
	qrSize         int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithHeaderRow controls whether uploaded tables carry a header row.
func WithHeaderRow(hasHeader bool) Option {
	return func(s *Service) {
		s.hasHeader = hasHeader
	}
}

// WithMatrixWorkers bounds the goroutines computing comparison matrix rows.
func WithMatrixWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matrixWorkers = n
		}
	}
}

// WithDefaultMetric sets the metric used when a request names none.
func WithDefaultMetric(m metric.Metric) Option {
	return func(s *Service) {
		s.defaultMetric = m
	}
}

// WithHistorySize bounds the record of recent analysis runs.
func WithHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// WithContactGuardSize bounds the contact double-post cache.
func WithContactGuardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.guardSize = n
		}
	}
}

// WithUploadDir sets the directory uploads are parked under.
func WithUploadDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.uploadDir = dir
		}
	}
}

// WithMaxUploadBytes caps the accepted upload payload size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithQRDir sets the static root generated QR codes are saved under.
func WithQRDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.qrDir = dir
		}
	}
}

// WithQRSize sets the generated QR image edge in pixels.
func WithQRSize(px int) Option {
	return func(s *Service) {
		if px > 0 {
			s.qrSize = px
		}
	}
}

// WithMailer sets the contact message relay. Absent a mailer, messages are
// accepted and suppressed.
func WithMailer(m mail.Mailer) Option {
	return func(s *Service) {
		if m != nil {
			s.mailer = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		hasHeader:      true,
		matrixWorkers:  runtime.NumCPU(),
		defaultMetric:  metric.Distance,
		historySize:    100,
		guardSize:      1024,
		uploadDir:      "uploads",
		maxUploadBytes: 1 << 20,
		qrDir:          "static",
		qrSize:         410,
		mailer:         mail.Suppressed{},
		logger:         nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting portfolio service...")

	s.analyzer = analyze.New(
		analyze.WithHeaderRow(s.hasHeader),
		analyze.WithMatrixWorkers(s.matrixWorkers),
	)
	s.history = repository.NewHistoryStore(ctx,
		repository.WithCapacity(s.historySize),
	)
	s.guard = dedupe.NewMemoryDeduper(
		dedupe.WithMaxSize(s.guardSize),
	)
	s.uploads = upload.NewStore(
		upload.WithDir(s.uploadDir),
		upload.WithMaxBytes(s.maxUploadBytes),
	)
	s.codes = qr.NewGenerator(
		qr.WithDir(s.qrDir),
		qr.WithSize(s.qrSize),
	)

	s.started = true
	s.logger.Info(ctx, "portfolio service started",
		logger.String("defaultMetric", s.defaultMetric.String()),
		logger.Int("matrixWorkers", s.matrixWorkers),
		logger.Int("historySize", s.historySize),
		logger.Bool("csvHeader", s.hasHeader),
	)

	return nil
}

// Stop shuts down the service. All state is in-memory, so stopping only
// flips the flag and logs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "portfolio service stopped")
}

// DefaultMetric returns the metric used when a request names none.
func (s *Service) DefaultMetric() metric.Metric {
	return s.defaultMetric
}

// Analyze persists payload to a scratch file, runs the similarity pipeline
// under the named metric and records the outcome in the run history. An
// empty metricName selects the configured default.
func (s *Service) Analyze(ctx context.Context, payload io.Reader, metricName string) (repository.Run, error) {
	m := s.defaultMetric
	if metricName != "" {
		var err error
		if m, err = metric.Parse(metricName); err != nil {
			return repository.Run{}, err
		}
	}

	path, cleanup, err := s.uploads.Save(ctx, payload)
	if err != nil {
		if errors.Is(err, upload.ErrTooLarge) {
			metrics.RecordUploadRejected()
		}
		return repository.Run{}, err
	}
	defer cleanup()
	if fi, statErr := os.Stat(path); statErr == nil {
		metrics.RecordUpload(fi.Size())
	}

	start := time.Now()
	report, err := s.analyzer.Run(ctx, path, m)
	elapsed := time.Since(start)
	metrics.RecordAnalysis(m.String(), outcomeLabel(err))
	if err != nil {
		s.logger.Warn(ctx, "analysis failed",
			logger.String("metric", m.String()),
			logger.Error(err),
		)
		return repository.Run{}, err
	}

	run := repository.Run{
		ID:       uuid.NewString(),
		Metric:   m.String(),
		Match:    report.Match,
		Rows:     report.Rows,
		Users:    report.Users,
		Duration: elapsed,
		At:       time.Now().UTC(),
	}
	s.history.Record(ctx, run)

	metrics.RecordAnalysisDuration(float64(elapsed.Nanoseconds()) / 1e6)
	metrics.AddRowsParsed(report.Rows)
	metrics.UpdateUsersCompared(report.Users)
	metrics.UpdateHistorySize(s.history.Count(ctx))

	s.logger.Info(ctx, "analysis complete",
		logger.String("runID", run.ID),
		logger.String("metric", run.Metric),
		logger.String("userA", run.Match.UserA),
		logger.String("userB", run.Match.UserB),
		logger.Float64("score", run.Match.Score),
		logger.Int("rows", run.Rows),
		logger.Int("users", run.Users),
		logger.Duration("elapsed", elapsed),
	)

	return run, nil
}

// outcomeLabel classifies an analysis error for the outcome metric label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tabular.ErrBadFormat):
		return "bad_format"
	case errors.Is(err, encode.ErrParse):
		return "parse_error"
	case errors.Is(err, pair.ErrInsufficientUsers):
		return "insufficient_users"
	case errors.Is(err, pair.ErrDegenerateVector):
		return "degenerate"
	default:
		return "error"
	}
}

// SendContact validates and relays a contact-form message. Repeat
// submissions of identical content are rejected with ErrDuplicateSubmission
// while the guard remembers them.
func (s *Service) SendContact(ctx context.Context, msg mail.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	key := msg.Key()
	if s.guard.SeenAndRecord(ctx, key) {
		metrics.RecordMailDuplicate()
		s.logger.Debug(ctx, "duplicate contact submission", logger.String("key", key))
		return ErrDuplicateSubmission
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		// Let the sender retry: the failed message should not stay recorded.
		s.guard.Unrecord(ctx, key)
		metrics.RecordMailError()
		s.logger.Error(ctx, "contact relay failed", logger.Error(err))
		return err
	}

	metrics.RecordMailSent()
	s.logger.Info(ctx, "contact message relayed",
		logger.String("subject", msg.Subject),
	)
	return nil
}

// QRInline encodes url and returns PNG bytes for an inline response.
func (s *Service) QRInline(ctx context.Context, url string) ([]byte, error) {
	png, err := s.codes.PNG(ctx, url)
	if err != nil {
		return nil, err
	}
	metrics.RecordQRGenerated()
	return png, nil
}

// QRSave encodes url and writes it under the static root, returning the
// web path of the saved image.
func (s *Service) QRSave(ctx context.Context, url, name string) (string, error) {
	webPath, err := s.codes.Save(ctx, url, name)
	if err != nil {
		return "", err
	}
	metrics.RecordQRGenerated()
	return webPath, nil
}

// RecentRuns returns up to n analysis runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, n int) ([]repository.Run, error) {
	return s.history.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"defaultMetric": s.defaultMetric.String(),
		"matrixWorkers": s.matrixWorkers,
		"historySize":   s.historySize,
		"csvHasHeader":  s.hasHeader,
	}

	if s.started {
		runCount := s.history.Count(ctx)
		guardEntries := s.guard.Size()

		stats["runCount"] = runCount
		stats["guardEntries"] = guardEntries

		// Update metrics
		metrics.UpdateHistorySize(runCount)
	}

	return stats
}
