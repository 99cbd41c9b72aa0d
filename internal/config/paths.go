package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file location the commands touch.
type Paths struct {
	BaseDir           string
	DataDir           string
	ReportsDir        string
	VisualizationsDir string
	LogsDir           string
}

// NewPaths resolves the configured directories against the base directory.
// An empty base directory means the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", cfg.BaseDir, err)
	}

	return &Paths{
		BaseDir:           base,
		DataDir:           resolve(base, orDefault(cfg.DataDir, DefaultDataDir)),
		ReportsDir:        resolve(base, orDefault(cfg.ReportsDir, DefaultReportsDir)),
		VisualizationsDir: resolve(base, DefaultVisualizationsDir),
		LogsDir:           resolve(base, orDefault(cfg.LogsDir, DefaultLogsDir)),
	}, nil
}

// WithVisualizationsDir returns a copy of p whose charts go to dir
// (resolved against the base directory when relative).
func (p *Paths) WithVisualizationsDir(dir string) *Paths {
	cp := *p
	if dir != "" {
		cp.VisualizationsDir = resolve(p.BaseDir, dir)
	}
	return &cp
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.VisualizationsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetDataPath returns the path for a data file
func (p *Paths) GetDataPath(filename string) string {
	return resolve(p.DataDir, filename)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return resolve(p.ReportsDir, filename)
}

// GetVisualizationPath returns the path for a chart image
func (p *Paths) GetVisualizationPath(filename string) string {
	return resolve(p.VisualizationsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return resolve(p.LogsDir, filename)
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("visualizations", p.VisualizationsDir),
			slog.String("logs", p.LogsDir),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// resolve joins name onto dir unless name is already absolute
func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
