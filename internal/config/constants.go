package config

import "salescli/pkg/contracts"

// Application constants
const (
	AppName    = "salescli"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. SALES_GENERATOR_SEED.
	EnvPrefix = "SALES"
	// ConfigFileEnv points at an explicit YAML configuration file.
	ConfigFileEnv = "SALES_CONFIG_FILE"

	// DateLayout is the layout of every date in configuration and output files.
	DateLayout = "2006-01-02"

	// Directory layout (relative to the base directory)
	DefaultDataDir           = "data"
	DefaultReportsDir        = "data/reports"
	DefaultVisualizationsDir = "visualizations"
	DefaultLogsDir           = "logs"

	// Well-known files
	DefaultTransactionsFile = "ecommerce_transactions.csv"
	DefaultProductsFile     = "product_sales.csv"
	DefaultLogFile          = "salescli.log"
	DefaultMetricsFile      = "metrics.prom"
	DefaultTracesFile       = "traces.json"

	// Generator defaults
	DefaultSeed               = 42
	DefaultStartDate          = "2023-01-01"
	DefaultEndDate            = "2024-12-31"
	DefaultFirstTransactionID = 1000
	DefaultCustomerPool       = 5000
	DefaultMaxDiscount        = 0.40
	DefaultProductCount       = 100

	// Analyzer defaults
	DefaultChartDPI      = 300
	DefaultTopN          = 10
	DefaultRenderWorkers = 3
)

// Output formats accepted by the generator
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)
