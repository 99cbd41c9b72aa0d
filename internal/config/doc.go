// Package config loads the configuration shared by the generator and analyzer
// commands.
//
// # Configuration Sources
//
// Values are resolved in the following order, later sources winning:
//
//	1. Built-in defaults (Default)
//	2. A YAML file: $SALES_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Environment variables with the SALES_ prefix
//
// Nested sections map to underscored names:
//
//	SALES_GENERATOR_SEED=7
//	SALES_GENERATOR_FORMAT=xlsx
//	SALES_ANALYZER_TOP_N=5
//	SALES_LOGGING_LEVEL=debug
//	SALES_TELEMETRY_ENABLED=false
//
// The merged configuration is validated with go-playground/validator struct
// tags before it is returned.
//
// # Path Management
//
// Paths resolves the data, reports, visualizations and logs directories
// against a single base directory (the working directory unless
// paths.base_dir is set):
//
//	paths, err := config.NewPaths(cfg.Paths)
//	out := paths.GetDataPath(cfg.Generator.Output)
package config
