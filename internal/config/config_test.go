package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so stray config.yaml files are not picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigFileEnv, "")
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, "2023-01-01", cfg.Generator.StartDate)
	assert.Equal(t, "2024-12-31", cfg.Generator.EndDate)
	assert.Equal(t, int64(1000), cfg.Generator.FirstTransactionID)
	assert.Equal(t, 5000, cfg.Generator.CustomerPool)
	assert.Equal(t, 0.40, cfg.Generator.MaxDiscount)
	assert.Equal(t, FormatCSV, cfg.Generator.Format)
	assert.Equal(t, 10, cfg.Analyzer.TopN)
	assert.Equal(t, 300, cfg.Analyzer.DPI)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.validate())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SALES_GENERATOR_SEED", "7")
	t.Setenv("SALES_GENERATOR_FORMAT", "xlsx")
	t.Setenv("SALES_ANALYZER_TOP_N", "5")
	t.Setenv("SALES_LOGGING_LEVEL", "debug")
	t.Setenv("SALES_TELEMETRY_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Generator.Seed)
	assert.Equal(t, FormatXLSX, cfg.Generator.Format)
	assert.Equal(t, 5, cfg.Analyzer.TopN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	// untouched values keep their defaults
	assert.Equal(t, DefaultStartDate, cfg.Generator.StartDate)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := isolate(t)
	yamlContent := `
generator:
  seed: 99
  start_date: "2024-01-01"
  end_date: "2024-01-31"
analyzer:
  dpi: 150
logging:
  output: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0644))
	t.Setenv("SALES_ANALYZER_DPI", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(99), cfg.Generator.Seed)
	assert.Equal(t, "2024-01-01", cfg.Generator.StartDate)
	assert.Equal(t, "2024-01-31", cfg.Generator.EndDate)
	assert.Equal(t, 200, cfg.Analyzer.DPI, "environment wins over file")
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, DefaultTopN, cfg.Analyzer.TopN, "defaults survive a partial file")
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyzer:\n  top_n: 3\n"), 0644))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Analyzer.TopN)
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator: [not, a, map"), 0644))
	t.Setenv(ConfigFileEnv, path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad start date", func(c *Config) { c.Generator.StartDate = "01/01/2023" }, true},
		{"end before start", func(c *Config) { c.Generator.EndDate = "2022-12-31" }, true},
		{"single day", func(c *Config) { c.Generator.EndDate = c.Generator.StartDate }, false},
		{"unknown format", func(c *Config) { c.Generator.Format = "parquet" }, true},
		{"discount cap above one", func(c *Config) { c.Generator.MaxDiscount = 1.5 }, true},
		{"zero discount cap", func(c *Config) { c.Generator.MaxDiscount = 0 }, true},
		{"top n zero", func(c *Config) { c.Analyzer.TopN = 0 }, true},
		{"dpi too low", func(c *Config) { c.Analyzer.DPI = 10 }, true},
		{"text logs", func(c *Config) { c.Logging.Format = "text" }, true},
		{"unknown log output", func(c *Config) { c.Logging.Output = "syslog" }, true},
		{"unknown trace exporter", func(c *Config) { c.Telemetry.TraceExporter = "otlp" }, true},
		{"customer pool of one", func(c *Config) { c.Generator.CustomerPool = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_FillsFilePaths(t *testing.T) {
	cfg := Default()
	cfg.Logging.FilePath = ""
	cfg.Telemetry.TraceExporter = "file"
	cfg.Telemetry.TracesFile = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
	assert.Equal(t, DefaultTracesFile, cfg.Telemetry.TracesFile)
}

func TestGeneratorConfig_Range(t *testing.T) {
	start, end := Default().Generator.Range()
	assert.Equal(t, 2023, start.Year())
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, 730, int(end.Sub(start).Hours()/24))
}
