package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

// MonthsPerYear is the number of monthly sales columns in a product table
const MonthsPerYear = 12

// ProductOptions configures a ProductSalesGenerator
type ProductOptions struct {
	Count   int
	Seed    uint64
	Catalog Catalog
}

// ProductSalesGenerator synthesizes a product table with a yearly sales profile.
// Demand falls with price within the category's range, rises with the review
// score and follows the same seasonal factors as daily transaction volume.
type ProductSalesGenerator struct {
	opts   ProductOptions
	rng    *rand.Rand
	logger *slog.Logger
}

// NewProductSalesGenerator creates a product table generator
func NewProductSalesGenerator(opts ProductOptions, logger *slog.Logger) (*ProductSalesGenerator, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("product count must be positive, got %d", opts.Count)
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductSalesGenerator{
		opts:   opts,
		rng:    newRand(opts.Seed),
		logger: logger.With(slog.String("component", "product_generator")),
	}, nil
}

// Generate returns Count products with ids "1" ... "Count"
func (g *ProductSalesGenerator) Generate(ctx context.Context) ([]domain.ProductSales, error) {
	products := make([]domain.ProductSales, 0, g.opts.Count)

	for i := 1; i <= g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		products = append(products, g.product(i))
	}

	g.logger.InfoContext(ctx, "Product table generated",
		slog.Int("products", len(products)),
		slog.Uint64("seed", g.opts.Seed))

	return products, nil
}

func (g *ProductSalesGenerator) product(id int) domain.ProductSales {
	r := g.rng

	category := choice(r, g.opts.Catalog.Categories)
	name := choice(r, category.Products)
	price := round(uniform(r, category.MinPrice, category.MaxPrice), 2)
	review := round(uniform(r, 1, 5), 1)

	base := uniform(r, 20, 200)
	priceFactor := 1.25 - 0.5*(price-category.MinPrice)/(category.MaxPrice-category.MinPrice)
	reviewFactor := 1 + 0.15*(review-3)

	months := make([]int, MonthsPerYear)
	for m := range months {
		expected := base * priceFactor * reviewFactor * SeasonalFactor(time.Month(m+1))
		months[m] = int(math.Max(0, math.Round(expected*uniform(r, 0.8, 1.2))))
	}

	return domain.ProductSales{
		ProductID:    strconv.Itoa(id),
		ProductName:  name,
		Category:     category.Name,
		Price:        price,
		ReviewScore:  review,
		MonthlySales: months,
	}
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
