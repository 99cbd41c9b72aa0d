package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator" envconfig:"GENERATOR"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer" envconfig:"ANALYZER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// GeneratorConfig controls the synthetic transaction generator
type GeneratorConfig struct {
	Seed               uint64  `yaml:"seed" envconfig:"SEED"`
	StartDate          string  `yaml:"start_date" envconfig:"START_DATE" validate:"required,datetime=2006-01-02"`
	EndDate            string  `yaml:"end_date" envconfig:"END_DATE" validate:"required,datetime=2006-01-02"`
	FirstTransactionID int64   `yaml:"first_transaction_id" envconfig:"FIRST_TRANSACTION_ID" validate:"gte=0"`
	CustomerPool       int     `yaml:"customer_pool" envconfig:"CUSTOMER_POOL" validate:"gt=1"`
	MaxDiscount        float64 `yaml:"max_discount" envconfig:"MAX_DISCOUNT" validate:"gt=0,lte=1"`
	Output             string  `yaml:"output" envconfig:"OUTPUT" validate:"required"`
	Format             string  `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx"`
	ProductCount       int     `yaml:"product_count" envconfig:"PRODUCT_COUNT" validate:"gte=1"`
	ProductsOutput     string  `yaml:"products_output" envconfig:"PRODUCTS_OUTPUT" validate:"required"`
}

// AnalyzerConfig controls the product sales analyzer
type AnalyzerConfig struct {
	Input             string `yaml:"input" envconfig:"INPUT" validate:"required"`
	VisualizationsDir string `yaml:"visualizations_dir" envconfig:"VISUALIZATIONS_DIR" validate:"required"`
	DPI               int    `yaml:"dpi" envconfig:"DPI" validate:"gte=72,lte=600"`
	TopN              int    `yaml:"top_n" envconfig:"TOP_N" validate:"gte=1"`
	Workbook          string `yaml:"workbook" envconfig:"WORKBOOK"`
	RenderWorkers     int    `yaml:"render_workers" envconfig:"RENDER_WORKERS" validate:"gte=1,lte=16"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"eq=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName   string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout file"`
	TracesFile    string  `yaml:"traces_file" envconfig:"TRACES_FILE"`
	MetricsFile   string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// envconfig only touches fields whose variable is set, so file values survive
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	start, end := c.Generator.Range()
	if end.Before(start) {
		return fmt.Errorf("generator end date %s is before start date %s", c.Generator.EndDate, c.Generator.StartDate)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if c.Telemetry.TraceExporter == "file" && c.Telemetry.TracesFile == "" {
		c.Telemetry.TracesFile = DefaultTracesFile
	}

	return nil
}

// Range returns the parsed generation window. Unparseable dates yield the zero time;
// Load rejects them before they get here.
func (g GeneratorConfig) Range() (time.Time, time.Time) {
	start, _ := time.Parse(DateLayout, g.StartDate)
	end, _ := time.Parse(DateLayout, g.EndDate)
	return start, end
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:               DefaultSeed,
			StartDate:          DefaultStartDate,
			EndDate:            DefaultEndDate,
			FirstTransactionID: DefaultFirstTransactionID,
			CustomerPool:       DefaultCustomerPool,
			MaxDiscount:        DefaultMaxDiscount,
			Output:             DefaultTransactionsFile,
			Format:             FormatCSV,
			ProductCount:       DefaultProductCount,
			ProductsOutput:     DefaultProductsFile,
		},
		Analyzer: AnalyzerConfig{
			Input:             DefaultProductsFile,
			VisualizationsDir: DefaultVisualizationsDir,
			DPI:               DefaultChartDPI,
			TopN:              DefaultTopN,
			RenderWorkers:     DefaultRenderWorkers,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Telemetry: TelemetryConfig{
			Enabled:       true,
			ServiceName:   AppName,
			Environment:   "development",
			TraceExporter: "none",
			TracesFile:    DefaultTracesFile,
			MetricsFile:   DefaultMetricsFile,
			SampleRatio:   1.0,
		},
	}
}
