package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 2)
				convey.So(cfg.RetryBaseDelayMS, convey.ShouldEqual, 1000)
				convey.So(cfg.StorePath, convey.ShouldEqual, "wca_persons.json")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PSYCH_MAX_RETRIES", "5")
			_ = os.Setenv("PSYCH_STORE_BACKEND", "redis")
			_ = os.Setenv("PSYCH_REDIS_ADDR", "cache:6380")
			_ = os.Setenv("PSYCH_PROVIDER_BASE_URL", "http://localhost:8000/persons")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 5)
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.StoreRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "cache:6380")
				convey.So(cfg.ProviderBaseURL, convey.ShouldEqual, "http://localhost:8000/persons")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
max_retries: 1
retry_base_delay_ms: 250
store_path: "/tmp/persons.json"
log_level: debug
`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 1)
				convey.So(cfg.RetryBaseDelayMS, convey.ShouldEqual, 250)
				convey.So(cfg.StorePath, convey.ShouldEqual, "/tmp/persons.json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.HTTPTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When both PSYCH_CONFIG and env overrides are set", func() {
			tmpFile := createTempConfigFile("max_retries: 1\nstore_key: fromfile\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PSYCH_CONFIG", tmpFile)
			_ = os.Setenv("PSYCH_MAX_RETRIES", "4")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 4)
				convey.So(cfg.StoreKey, convey.ShouldEqual, "fromfile")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.Load(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative retry budget", func() {
			_ = os.Setenv("PSYCH_MAX_RETRIES", "-1")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_retries")
			})
		})

		convey.Convey("When loading config with an unknown store backend", func() {
			_ = os.Setenv("PSYCH_STORE_BACKEND", "sqlite")

			_, err := config.Load(ctx, "")

			convey.Convey("Then it should reject the backend", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "sqlite")
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PSYCH_HTTP_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty base url", func() {
			_ = os.Setenv("PSYCH_PROVIDER_BASE_URL", " ")

			_, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "provider_base_url must not be empty")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PSYCH_CONFIG",
		"PSYCH_MAX_RETRIES",
		"PSYCH_STORE_BACKEND",
		"PSYCH_REDIS_ADDR",
		"PSYCH_PROVIDER_BASE_URL",
		"PSYCH_HTTP_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "psych-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
