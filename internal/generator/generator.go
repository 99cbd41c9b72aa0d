package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"salescli/internal/config"
	"salescli/internal/infrastructure"
	"salescli/pkg/contracts/domain"
)

var (
	quantities = mustWeighted([]int{1, 2, 3}, []float64{0.7, 0.2, 0.1})
	segments   = mustWeighted(
		[]domain.CustomerSegment{domain.SegmentPremium, domain.SegmentRegular, domain.SegmentBudget},
		[]float64{0.2, 0.5, 0.3},
	)
	payments = mustWeighted(
		[]domain.PaymentMethod{domain.PaymentCreditCard, domain.PaymentDebitCard, domain.PaymentPayPal, domain.PaymentCash},
		[]float64{0.4, 0.3, 0.2, 0.1},
	)
	shipping = mustWeighted(
		[]domain.ShippingMethod{domain.ShippingStandard, domain.ShippingExpress, domain.ShippingNextDay},
		[]float64{0.6, 0.3, 0.1},
	)
	countries = mustWeighted(
		[]domain.Country{domain.CountryUSA, domain.CountryCanada, domain.CountryUK, domain.CountryGermany, domain.CountryFrance},
		[]float64{0.7, 0.1, 0.1, 0.05, 0.05},
	)
)

// Options configures a Generator
type Options struct {
	Start              time.Time
	End                time.Time
	Seed               uint64
	FirstTransactionID int64
	CustomerPool       int
	MaxDiscount        float64
	Catalog            Catalog
}

// DefaultOptions returns the standard two-year window seeded with 42
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Generator)
}

// OptionsFromConfig maps the generator configuration section onto Options
func OptionsFromConfig(cfg config.GeneratorConfig) Options {
	start, end := cfg.Range()
	return Options{
		Start:              start,
		End:                end,
		Seed:               cfg.Seed,
		FirstTransactionID: cfg.FirstTransactionID,
		CustomerPool:       cfg.CustomerPool,
		MaxDiscount:        cfg.MaxDiscount,
		Catalog:            DefaultCatalog(),
	}
}

func (o Options) validate() error {
	if o.Start.IsZero() || o.End.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if o.End.Before(o.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			o.End.Format(config.DateLayout), o.Start.Format(config.DateLayout))
	}
	if o.CustomerPool < 2 {
		return fmt.Errorf("customer pool must hold at least two ids, got %d", o.CustomerPool)
	}
	if o.MaxDiscount <= 0 || o.MaxDiscount > 1 {
		return fmt.Errorf("max discount must be in (0, 1], got %g", o.MaxDiscount)
	}
	return o.Catalog.Validate()
}

// Sink receives each generated transaction in order
type Sink func(domain.Transaction) error

// Generator produces the synthetic transaction stream
type Generator struct {
	opts    Options
	rng     *rand.Rand
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
	nextID  int64

	// maxPercent is MaxDiscount as a percent rounded down to two places
	maxPercent decimal.Decimal
}

// NewGenerator creates a generator. metrics may be nil.
func NewGenerator(opts Options, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		opts:    opts,
		rng:     newRand(opts.Seed),
		logger:  logger.With(slog.String("component", "generator")),
		metrics: metrics,
		nextID:  opts.FirstTransactionID,

		maxPercent: decimal.NewFromFloat(opts.MaxDiscount).Shift(2).RoundFloor(2),
	}, nil
}

// Generate walks every day of [Start, End], passing each transaction to sink.
// It stops at the first sink error or when ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, sink Sink) (*Summary, error) {
	summary := NewSummary()
	start := truncateDay(g.opts.Start)
	end := truncateDay(g.opts.End)

	g.logger.InfoContext(ctx, "Generating transactions",
		slog.String("start", start.Format(config.DateLayout)),
		slog.String("end", end.Format(config.DateLayout)),
		slog.Uint64("seed", g.opts.Seed))

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		lo, hi := DailyVolumeRange(day.Month())
		count := intBetween(g.rng, lo, hi)
		dayRevenue := decimal.Zero

		for i := 0; i < count; i++ {
			tx := g.next(day)
			if err := sink(tx); err != nil {
				return summary, fmt.Errorf("sink rejected transaction %d: %w", tx.TransactionID, err)
			}
			summary.Add(tx)
			dayRevenue = dayRevenue.Add(decimal.NewFromFloat(tx.TotalAmount))
		}

		summary.AddDay(count)
		g.metrics.RecordDay(ctx, count, dayRevenue.InexactFloat64())

		if day.Day() == 1 {
			g.logger.DebugContext(ctx, "Generating month",
				slog.String("month", day.Format("2006-01")),
				slog.Int("transactions_so_far", summary.Transactions))
		}
	}

	g.logger.InfoContext(ctx, "Generation complete",
		slog.Int("transactions", summary.Transactions),
		slog.Int("days", summary.Days()),
		slog.Int("unique_customers", summary.UniqueCustomers()),
		slog.String("total_revenue", summary.TotalRevenue.StringFixed(2)))
	if n := summary.Unrecorded(); n > 0 {
		g.logger.WarnContext(ctx, "Values outside the summary distribution bounds",
			slog.Int("unrecorded", n))
	}

	return summary, nil
}

// GenerateAll collects the whole stream in memory
func (g *Generator) GenerateAll(ctx context.Context) ([]domain.Transaction, *Summary, error) {
	var out []domain.Transaction
	summary, err := g.Generate(ctx, func(tx domain.Transaction) error {
		out = append(out, tx)
		return nil
	})
	return out, summary, err
}

// next draws one transaction for day
func (g *Generator) next(day time.Time) domain.Transaction {
	r := g.rng

	category := choice(r, g.opts.Catalog.Categories)
	product := choice(r, category.Products)
	basePrice := uniform(r, category.MinPrice, category.MaxPrice)
	quantity := quantities.Pick(r)
	segment := segments.Pick(r)
	discount := g.discount(segment, day.Month())

	unitPrice := decimal.NewFromFloat(basePrice)
	total := unitPrice.
		Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount))).
		Mul(decimal.NewFromInt(int64(quantity)))

	tx := domain.Transaction{
		TransactionID:   g.nextID,
		Date:            day,
		CustomerSegment: segment,
		Category:        category.Name,
		ProductName:     product,
		Quantity:        quantity,
		UnitPrice:       unitPrice.Round(2).InexactFloat64(),
		DiscountPercent: g.discountPercent(discount).InexactFloat64(),
		TotalAmount:     total.Round(2).InexactFloat64(),
		PaymentMethod:   payments.Pick(r),
		ShippingMethod:  shipping.Pick(r),
		Country:         countries.Pick(r),
		CustomerID:      intBetween(r, 1, g.opts.CustomerPool),
	}
	g.nextID++

	return tx
}

// discount draws the segment discount, adds the holiday extra and applies the cap
func (g *Generator) discount(segment domain.CustomerSegment, month time.Month) float64 {
	lo, hi := SegmentDiscountRange(segment)
	d := uniform(g.rng, lo, hi)
	if IsHolidayMonth(month) {
		lo, hi = HolidayDiscountRange()
		d += uniform(g.rng, lo, hi)
	}
	return math.Min(d, g.opts.MaxDiscount)
}

// discountPercent rounds a discount fraction to a two-place percent. Rounding
// never lifts it above the cap.
func (g *Generator) discountPercent(discount float64) decimal.Decimal {
	return decimal.Min(decimal.NewFromFloat(discount).Shift(2).Round(2), g.maxPercent)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
