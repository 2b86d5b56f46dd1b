package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unzippd/portfolio/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"UNZIPPD_CONFIG",
		"UNZIPPD_ADDR",
		"UNZIPPD_LOG_LEVEL",
		"UNZIPPD_MAX_UPLOAD_BYTES",
		"UNZIPPD_CSV_HAS_HEADER",
		"UNZIPPD_DEFAULT_METRIC",
		"UNZIPPD_MAIL_ENABLED",
		"UNZIPPD_MAIL_HOST",
		"UNZIPPD_MAIL_ACCOUNT",
		"UNZIPPD_MAIL_RECIPIENT",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
				convey.So(cfg.DefaultMetric, convey.ShouldEqual, "distance")
				convey.So(cfg.CSVHasHeader, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("UNZIPPD_ADDR", ":8080")
			_ = os.Setenv("UNZIPPD_DEFAULT_METRIC", "similarity")
			_ = os.Setenv("UNZIPPD_CSV_HAS_HEADER", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultMetric, convey.ShouldEqual, "similarity")
				convey.So(cfg.CSVHasHeader, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":4000\"\nhistory_size: 7\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("UNZIPPD_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":4000")
				convey.So(cfg.HistorySize, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When the default metric is invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("UNZIPPD_DEFAULT_METRIC", "manhattan")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the invalid-config kind", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When mail is enabled without credentials", func() {
			clearConfigEnvVars()
			_ = os.Setenv("UNZIPPD_MAIL_ENABLED", "true")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
