package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if UNZIPPD_CONFIG is set
//  3. env (prefix UNZIPPD_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("UNZIPPD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: UNZIPPD_ADDR, UNZIPPD_MAX_UPLOAD_BYTES, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("UNZIPPD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "unzippd_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxUploadBytes < 1:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.DefaultMetric != "distance" && c.DefaultMetric != "similarity":
		return fmt.Errorf("%w: default_metric must be distance or similarity", ErrInvalidConfig)
	case c.MailEnabled && (c.MailHost == "" || c.MailAccount == "" || c.MailRecipient == ""):
		return fmt.Errorf("%w: mail relay enabled without host, account and recipient", ErrInvalidConfig)
	}
	return nil
}
