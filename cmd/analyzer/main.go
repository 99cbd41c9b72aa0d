package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"salescli/internal/app"
	"salescli/internal/charts"
	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	apperrors "salescli/internal/errors"
	"salescli/internal/exporter"
	"salescli/internal/validation"
	"salescli/pkg/contracts"
	"salescli/pkg/contracts/domain"
)

func main() {
	ctx, stop := app.SignalContext()
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Analyzer failed",
			slog.String("type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	input       string
	vizDir      string
	workbook    string
	dpi         int
	topN        int
	workers     int
	showVersion bool
}

func parseFlags(args []string) (*options, map[string]bool, error) {
	opts := &options{}
	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.StringVar(&opts.input, "in", config.DefaultProductsFile, "product table (CSV or XLSX)")
	fs.StringVar(&opts.vizDir, "viz", config.DefaultVisualizationsDir, "directory for the chart images")
	fs.StringVar(&opts.workbook, "xlsx", "", "also write the aggregate tables to this workbook")
	fs.IntVar(&opts.dpi, "dpi", config.DefaultChartDPI, "chart resolution")
	fs.IntVar(&opts.topN, "top", config.DefaultTopN, "number of products in the top products table")
	fs.IntVar(&opts.workers, "workers", config.DefaultRenderWorkers, "charts rendered at once")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, apperrors.NewConfigError("invalid arguments", err)
	}
	if fs.NArg() > 0 {
		return nil, nil, apperrors.NewConfigError(fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")), nil)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

// apply overlays the flags that were set onto cfg
func (o *options) apply(cfg *config.AnalyzerConfig, set map[string]bool) error {
	if set["in"] {
		cfg.Input = o.input
	}
	if set["viz"] {
		cfg.VisualizationsDir = o.vizDir
	}
	if set["xlsx"] {
		cfg.Workbook = o.workbook
	}
	if set["dpi"] {
		if o.dpi < 72 || o.dpi > 600 {
			return apperrors.NewConfigError(fmt.Sprintf("-dpi must be between 72 and 600, got %d", o.dpi), nil)
		}
		cfg.DPI = o.dpi
	}
	if set["top"] {
		if o.topN < 1 {
			return apperrors.NewConfigError(fmt.Sprintf("-top must be positive, got %d", o.topN), nil)
		}
		cfg.TopN = o.topN
	}
	if set["workers"] {
		if o.workers < 1 {
			return apperrors.NewConfigError(fmt.Sprintf("-workers must be positive, got %d", o.workers), nil)
		}
		cfg.RenderWorkers = o.workers
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, set, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString("analyzer"))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}
	if err := opts.apply(&cfg.Analyzer, set); err != nil {
		return err
	}

	ctx, application, err := app.NewApplication(ctx, "analyzer", cfg)
	if err != nil {
		return err
	}
	defer application.Shutdown(ctx)

	return analyze(ctx, application, stdout)
}

func analyze(ctx context.Context, application *app.Application, stdout io.Writer) error {
	cfg := application.Config.Analyzer
	input := inputPath(application.Paths, cfg.Input)

	err := application.RunStage(ctx, "validate_output", func(ctx context.Context) error {
		return validation.NewFileValidator(application.Logger).ValidateOutputDirectory(application.Paths.VisualizationsDir)
	})
	if err != nil {
		return err
	}

	var products []domain.ProductSales
	err = application.RunStage(ctx, "load_products", func(ctx context.Context) error {
		var err error
		products, err = dataprocessing.LoadProducts(ctx, input, application.Logger)
		if err == nil {
			application.Telemetry.Metrics.ProductsLoaded.Add(ctx, int64(len(products)))
		}
		return err
	})
	if err != nil {
		return err
	}

	var analysis *domain.Analysis
	err = application.RunStage(ctx, "analyze", func(ctx context.Context) error {
		var err error
		analysis, err = dataprocessing.NewAnalyzer(application.Logger, dataprocessing.Options{TopN: cfg.TopN}).
			Analyze(ctx, products)
		return err
	})
	if err != nil {
		return err
	}

	err = application.RunStage(ctx, "report", func(ctx context.Context) error {
		if err := dataprocessing.WriteReport(stdout, analysis); err != nil {
			return apperrors.NewStorageError("failed to write report", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var chartPaths []string
	err = application.RunStage(ctx, "render_charts", func(ctx context.Context) error {
		renderer := charts.NewRenderer(charts.Options{
			Dir:     application.Paths.VisualizationsDir,
			DPI:     cfg.DPI,
			Workers: cfg.RenderWorkers,
		}, application.Logger, application.Telemetry.Metrics)

		var err error
		chartPaths, err = renderer.RenderAll(ctx, analysis)
		return err
	})
	if err != nil {
		return err
	}
	for _, path := range chartPaths {
		fmt.Fprintf(stdout, "\n✓ Visualization saved: %s\n", path)
	}

	if cfg.Workbook == "" {
		return nil
	}

	workbook := application.Paths.GetReportPath(cfg.Workbook)
	err = application.RunStage(ctx, "export_workbook", func(ctx context.Context) error {
		return exporter.NewWorkbookExporter(application.Logger).Export(workbook, analysis)
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "\n✓ Workbook saved: %s\n", workbook)
	return err
}

// inputPath uses name as given when it exists, otherwise looks for it in the
// data directory where the generator writes.
func inputPath(paths *config.Paths, name string) string {
	if filepath.IsAbs(name) || config.FileExists(name) {
		return name
	}
	return paths.GetDataPath(name)
}
