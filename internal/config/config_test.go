package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsMatchDefault(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("MEDDASH_SERVER_PORT", "9090")
	t.Setenv("MEDDASH_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("MEDDASH_SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MEDDASH_DATA_CSV_PATH", "/srv/data/docs.csv")
	t.Setenv("MEDDASH_DATA_DAILY_COUNTS_MODE", "never")
	t.Setenv("MEDDASH_DATA_SEED", "42")
	t.Setenv("MEDDASH_LOGGING_LEVEL", "debug")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "/srv/data/docs.csv", cfg.Data.CSVPath)
	assert.Equal(t, "never", cfg.Data.DailyCountsMode)
	assert.Equal(t, uint64(42), cfg.Data.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFile_YAMLMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
  read_timeout: 3s
security:
  enable_cors: false
data:
  csv_path: fixtures/docs.csv
  stats_month: 10
  watch_file: false
telemetry:
  trace_exporter: stdout
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// env wins over the file
	t.Setenv("MEDDASH_DATA_STATS_MONTH", "12")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Security.EnableCORS)
	assert.Equal(t, "fixtures/docs.csv", cfg.Data.CSVPath)
	assert.Equal(t, 12, cfg.Data.StatsMonth)
	assert.False(t, cfg.Data.WatchFile)
	assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)

	// untouched fields keep their defaults
	assert.Equal(t, 2024, cfg.Data.StatsYear)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("MEDDASH_SERVER_PORT", "not-a-number")
		_, err := LoadFile("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "read timeout"},
		{"write timeout", func(c *Config) { c.Server.WriteTimeout = -1 }, "write timeout"},
		{"request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request timeout"},
		{"cors without origins", func(c *Config) { c.Security.AllowedOrigins = nil }, "allowed origin"},
		{"cors disabled without origins", func(c *Config) {
			c.Security.EnableCORS = false
			c.Security.AllowedOrigins = nil
		}, ""},
		{"rate limit rps", func(c *Config) { c.Security.RateLimit.RPS = 0 }, "rate limit"},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging format"},
		{"log output", func(c *Config) { c.Logging.Output = "syslog" }, "logging output"},
		{"log file path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, "file path"},
		{"csv path", func(c *Config) { c.Data.CSVPath = "" }, "csv path"},
		{"stats month", func(c *Config) { c.Data.StatsMonth = 13 }, "stats month"},
		{"stats year", func(c *Config) { c.Data.StatsYear = 0 }, "stats year"},
		{"daily mode", func(c *Config) { c.Data.DailyCountsMode = "sometimes" }, "daily counts mode"},
		{"trace exporter", func(c *Config) { c.Telemetry.TraceExporter = "otlp" }, "trace exporter"},
		{"metric exporter", func(c *Config) { c.Telemetry.MetricExporter = "statsd" }, "metric exporter"},
		{"sample ratio", func(c *Config) { c.Telemetry.SampleRatio = 1.5 }, "sample ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", Default().Server.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}

func TestGetConfigFilePath_EnvOverride(t *testing.T) {
	t.Setenv(ConfigFileEnv, "/etc/meddash/config.yaml")
	assert.Equal(t, "/etc/meddash/config.yaml", getConfigFilePath())
}
