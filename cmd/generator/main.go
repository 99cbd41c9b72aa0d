package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"salescli/internal/app"
	"salescli/internal/config"
	apperrors "salescli/internal/errors"
	"salescli/internal/exporter"
	"salescli/internal/generator"
	"salescli/pkg/contracts"
	"salescli/pkg/contracts/domain"
)

// Dataset kinds
const (
	KindTransactions = "transactions"
	KindProducts     = "products"
)

func main() {
	ctx, stop := app.SignalContext()
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Generator failed",
			slog.String("type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// options are the command line flags; a flag left unset keeps the configured value
type options struct {
	kind        string
	seed        uint64
	start       string
	end         string
	output      string
	format      string
	products    int
	showVersion bool
}

func parseFlags(args []string) (*options, map[string]bool, error) {
	opts := &options{}
	fs := flag.NewFlagSet("generator", flag.ContinueOnError)
	fs.StringVar(&opts.kind, "kind", KindTransactions, "dataset to generate: transactions or products")
	fs.Uint64Var(&opts.seed, "seed", config.DefaultSeed, "random seed")
	fs.StringVar(&opts.start, "start", config.DefaultStartDate, "first date (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", config.DefaultEndDate, "last date (YYYY-MM-DD)")
	fs.StringVar(&opts.output, "out", "", "output file (relative paths land in the data directory)")
	fs.StringVar(&opts.format, "format", "", "transaction file format: csv or xlsx (default: from -out extension)")
	fs.IntVar(&opts.products, "products", config.DefaultProductCount, "number of products for -kind products")
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
func (o *options) apply(cfg *config.GeneratorConfig, set map[string]bool) error {
	if set["seed"] {
		cfg.Seed = o.seed
	}
	for name, value := range map[string]string{"start": o.start, "end": o.end} {
		if !set[name] {
			continue
		}
		if _, err := time.Parse(config.DateLayout, value); err != nil {
			return apperrors.NewConfigError(fmt.Sprintf("invalid -%s date %q", name, value), err)
		}
	}
	if set["start"] {
		cfg.StartDate = o.start
	}
	if set["end"] {
		cfg.EndDate = o.end
	}
	if set["products"] {
		cfg.ProductCount = o.products
	}

	if set["out"] {
		if o.kind == KindProducts {
			cfg.ProductsOutput = o.output
		} else {
			cfg.Output = o.output
			cfg.Format = exporter.FormatFromPath(o.output)
		}
	}
	if set["format"] {
		if err := o.applyFormat(cfg, set["out"]); err != nil {
			return err
		}
	}
	return nil
}

// applyFormat sets the transaction format. A configured file name follows the
// format; an explicit -out with a different extension is rejected.
func (o *options) applyFormat(cfg *config.GeneratorConfig, outSet bool) error {
	cfg.Format = o.format
	if o.kind == KindProducts || (o.format != config.FormatCSV && o.format != config.FormatXLSX) {
		return nil
	}

	ext, ok := exporter.ExtensionFormat(cfg.Output)
	if !ok || ext == o.format {
		return nil
	}
	if outSet {
		return apperrors.NewConfigError(
			fmt.Sprintf("-out %s conflicts with -format %s", cfg.Output, o.format), nil)
	}
	cfg.Output = exporter.WithFormatExtension(cfg.Output, o.format)
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, set, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString("generator"))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}
	if err := opts.apply(&cfg.Generator, set); err != nil {
		return err
	}

	ctx, application, err := app.NewApplication(ctx, "generator", cfg)
	if err != nil {
		return err
	}
	defer application.Shutdown(ctx)

	switch opts.kind {
	case KindTransactions:
		return generateTransactions(ctx, application, stdout)
	case KindProducts:
		return generateProducts(ctx, application, stdout)
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown dataset kind %q", opts.kind))
	}
}

func generateTransactions(ctx context.Context, application *app.Application, stdout io.Writer) error {
	cfg := application.Config.Generator

	var (
		summary *generator.Summary
		path    string
	)
	err := application.RunStage(ctx, "generate_transactions", func(ctx context.Context) error {
		gen, err := generator.NewGenerator(generator.OptionsFromConfig(cfg), application.Logger, application.Telemetry.Metrics)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrTypeValidation, "invalid generator settings", err)
		}

		writer, err := exporter.NewTransactionExporter(application.Paths, application.Logger).Open(cfg.Output, cfg.Format)
		if err != nil {
			return err
		}
		path = writer.Path()

		summary, err = gen.Generate(ctx, writer.Write)
		closeErr := writer.Close()
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return apperrors.NewStorageError("failed to write transactions", err).WithContext("path", path)
		}
		return closeErr
	})
	if err != nil {
		return err
	}

	return printTransactionSummary(stdout, summary, path)
}

func generateProducts(ctx context.Context, application *app.Application, stdout io.Writer) error {
	cfg := application.Config.Generator

	var (
		products []domain.ProductSales
		path     string
	)
	err := application.RunStage(ctx, "generate_products", func(ctx context.Context) error {
		gen, err := generator.NewProductSalesGenerator(generator.ProductOptions{
			Count:   cfg.ProductCount,
			Seed:    cfg.Seed,
			Catalog: generator.DefaultCatalog(),
		}, application.Logger)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrTypeValidation, "invalid product settings", err)
		}

		if products, err = gen.Generate(ctx); err != nil {
			return err
		}

		path, err = exporter.NewProductExporter(application.Paths, application.Logger).Export(cfg.ProductsOutput, products)
		return err
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "Generated %s products with %d months of sales\n\nDataset saved to '%s'\n",
		exporter.FormatCount(len(products)), generator.MonthsPerYear, path)
	return err
}

// printTransactionSummary writes the dataset overview shown after generation
func printTransactionSummary(w io.Writer, s *generator.Summary, path string) error {
	volume := s.DailyVolume()
	order := s.OrderValue()

	fmt.Fprintf(w, "Generated %s transactions\n", exporter.FormatCount(s.Transactions))
	fmt.Fprintf(w, "\nDataset Info:\n")
	fmt.Fprintf(w, "Date Range: %s to %s (%d days)\n",
		s.FirstDate.Format(config.DateLayout), s.LastDate.Format(config.DateLayout), s.Days())
	fmt.Fprintf(w, "Total Revenue: %s\n", exporter.FormatMoney(s.Revenue()))
	fmt.Fprintf(w, "Number of Unique Customers: %s\n", exporter.FormatCount(s.UniqueCustomers()))
	fmt.Fprintf(w, "Transactions per Day: min %.0f, median %.0f, p95 %.0f, max %.0f, mean %.1f\n",
		volume.Min, volume.P50, volume.P95, volume.Max, volume.Mean)
	fmt.Fprintf(w, "Order Value: min %s, median %s, p95 %s, max %s, mean %s\n",
		exporter.FormatMoney(order.Min), exporter.FormatMoney(order.P50), exporter.FormatMoney(order.P95),
		exporter.FormatMoney(order.Max), exporter.FormatMoney(order.Mean))

	fmt.Fprintf(w, "\nFirst few rows:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(domain.TransactionColumns, "\t"))
	for _, tx := range s.Head {
		fmt.Fprintln(tw, strings.Join(exporter.TransactionRecord(tx), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nDataset saved to '%s'\n", path)
	return err
}
