package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// DefaultTopN is the size of the top products table when none is configured
const DefaultTopN = 10

// Options configures an analysis
type Options struct {
	TopN int
}

// Analyzer runs the full product sales analysis
type Analyzer struct {
	logger *slog.Logger
	opts   Options
}

// NewAnalyzer creates an analyzer; a non-positive TopN falls back to DefaultTopN
func NewAnalyzer(logger *slog.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &Analyzer{
		logger: logger.With(slog.String("component", "analyzer")),
		opts:   opts,
	}
}

// Analyze derives the product columns and computes every aggregate.
// The input slice is not modified.
func (a *Analyzer) Analyze(ctx context.Context, products []domain.ProductSales) (*domain.Analysis, error) {
	if len(products) == 0 {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyDataset.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	derived := make([]domain.ProductSales, len(products))
	copy(derived, products)
	Derive(derived)

	analysis := &domain.Analysis{
		Products:      derived,
		Metrics:       ComputeKeyMetrics(derived),
		Categories:    CategoryPerformance(derived),
		TopProducts:   TopProducts(derived, a.opts.TopN),
		Monthly:       Monthly(derived),
		Correlations:  Correlations(derived),
		ReviewBins:    ReviewBins(derived),
		CategoryOrder: CategoryOrder(derived),
	}
	analysis.Insights = GenerateInsights(analysis.Categories, analysis.Monthly, analysis.Correlations)

	if !analysis.Correlations.PriceDefined || !analysis.Correlations.ReviewDefined {
		a.logger.WarnContext(ctx, "Correlation undefined, reported as 0",
			slog.Bool("price_defined", analysis.Correlations.PriceDefined),
			slog.Bool("review_defined", analysis.Correlations.ReviewDefined))
	}

	a.logger.InfoContext(ctx, "Analysis complete",
		slog.Int("products", analysis.Metrics.TotalProducts),
		slog.Int("categories", analysis.Metrics.TotalCategories),
		slog.Int("months", len(analysis.Monthly)),
		slog.String("top_category", analysis.Insights.TopCategory),
		slog.Duration("duration", time.Since(started)))

	return analysis, nil
}

// Analyze runs an analysis with the default logger
func Analyze(ctx context.Context, products []domain.ProductSales, opts Options) (*domain.Analysis, error) {
	return NewAnalyzer(nil, opts).Analyze(ctx, products)
}
