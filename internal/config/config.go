// Package config defines service configuration structures and loading hooks.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// UploadDir is where analysis uploads are parked until processed.
	UploadDir string `koanf:"upload_dir"`

	// MaxUploadBytes caps the accepted upload payload size.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// CSVHasHeader marks whether input tables carry a title row to strip.
	CSVHasHeader bool `koanf:"csv_has_header"`

	// MatrixWorkers bounds the goroutines computing comparison matrix rows.
	MatrixWorkers int `koanf:"matrix_workers"`

	// DefaultMetric is used when an analysis request names none.
	DefaultMetric string `koanf:"default_metric"`

	// HistorySize bounds the in-memory record of recent analysis runs.
	HistorySize int `koanf:"history_size"`

	// ContactGuardSize bounds the double-post cache for the contact form.
	ContactGuardSize int `koanf:"contact_guard_size"`

	// QRDir is the static root generated QR codes are saved under.
	QRDir string `koanf:"qr_dir"`

	// QRSize is the generated image edge in pixels.
	QRSize int `koanf:"qr_size"`

	// Mail relay settings. MailEnabled false swaps in a suppressing mailer,
	// mirroring local development without provider credentials.
	MailEnabled      bool   `koanf:"mail_enabled"`
	MailHost         string `koanf:"mail_host"`
	MailPort         int    `koanf:"mail_port"`
	MailAccount      string `koanf:"mail_account"`
	MailRecipient    string `koanf:"mail_recipient"`
	MailClientID     string `koanf:"mail_client_id"`
	MailClientSecret string `koanf:"mail_client_secret"`
	MailRefreshToken string `koanf:"mail_refresh_token"`
	MailTokenURL     string `koanf:"mail_token_url"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":3000",
		UploadDir:        "uploads",
		MaxUploadBytes:   1 << 20,
		CSVHasHeader:     true,
		MatrixWorkers:    runtime.NumCPU(),
		DefaultMetric:    "distance",
		HistorySize:      100,
		ContactGuardSize: 1024,
		QRDir:            "static",
		QRSize:           410,
		MailEnabled:      false,
		MailPort:         587,
		MailTokenURL:     "https://oauth2.googleapis.com/token",
	}
}
