package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/unzippd/portfolio/internal/adapters/http/api"
	"github.com/unzippd/portfolio/internal/adapters/http/site"
	"github.com/unzippd/portfolio/internal/adapters/http/swagger"
	"github.com/unzippd/portfolio/internal/app"
	"github.com/unzippd/portfolio/internal/config"
	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/internal/mail"
	"github.com/unzippd/portfolio/pkg/logger"
	"github.com/unzippd/portfolio/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	defaultMetric, err := metric.Parse(cfg.DefaultMetric)
	if err != nil {
		os.Stderr.WriteString("invalid default metric: " + err.Error() + "\n")
		return
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithHeaderRow(cfg.CSVHasHeader),
		app.WithMatrixWorkers(cfg.MatrixWorkers),
		app.WithDefaultMetric(defaultMetric),
		app.WithHistorySize(cfg.HistorySize),
		app.WithContactGuardSize(cfg.ContactGuardSize),
		app.WithUploadDir(cfg.UploadDir),
		app.WithMaxUploadBytes(cfg.MaxUploadBytes),
		app.WithQRDir(cfg.QRDir),
		app.WithQRSize(cfg.QRSize),
		app.WithMailer(buildMailer(ctx, cfg, loggerInstance)),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the portfolio pages at /
	site.Register(ctx, mux)

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	// Saved QR codes live on disk under the configured static root.
	qrDir := filepath.Join(cfg.QRDir, "QR")
	mux.Handle("GET /static/QR/", http.StripPrefix("/static/QR/", http.FileServer(http.Dir(qrDir))))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildMailer wires the SMTP relay when enabled, a suppressing mailer
// otherwise.
func buildMailer(ctx context.Context, cfg *config.Config, log logger.Logger) mail.Mailer {
	if !cfg.MailEnabled {
		log.Info(ctx, "mail relay disabled; contact messages will be accepted and dropped")
		return mail.Suppressed{}
	}

	tokens := mail.TokenSource(ctx, cfg.MailClientID, cfg.MailClientSecret, cfg.MailRefreshToken, cfg.MailTokenURL)
	return mail.NewSMTPMailer(
		mail.WithHost(cfg.MailHost),
		mail.WithPort(cfg.MailPort),
		mail.WithAccount(cfg.MailAccount),
		mail.WithRecipient(cfg.MailRecipient),
		mail.WithTokenSource(tokens),
	)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
