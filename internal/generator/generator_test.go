package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/shared/testutil"
	"salescli/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func optionsFor(start, end time.Time) Options {
	opts := DefaultOptions()
	opts.Start = start
	opts.End = end
	return opts
}

func generate(t *testing.T, opts Options) ([]domain.Transaction, *Summary) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	g, err := NewGenerator(opts, logger, nil)
	require.NoError(t, err)

	txs, summary, err := g.GenerateAll(context.Background())
	require.NoError(t, err)
	return txs, summary
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, date(2023, 1, 1), opts.Start)
	assert.Equal(t, date(2024, 12, 31), opts.End)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, int64(1000), opts.FirstTransactionID)
	assert.Equal(t, 5000, opts.CustomerPool)
	assert.Equal(t, 0.40, opts.MaxDiscount)
	assert.Len(t, opts.Catalog.Categories, 5)
}

func TestNewGenerator_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"end before start", func(o *Options) { o.End = o.Start.AddDate(0, 0, -1) }},
		{"missing start", func(o *Options) { o.Start = time.Time{} }},
		{"tiny customer pool", func(o *Options) { o.CustomerPool = 1 }},
		{"zero discount cap", func(o *Options) { o.MaxDiscount = 0 }},
		{"empty catalog", func(o *Options) { o.Catalog = Catalog{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := NewGenerator(opts, nil, nil)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_RecordBounds(t *testing.T) {
	txs, _ := generate(t, optionsFor(date(2023, 10, 1), date(2024, 1, 31)))
	require.NotEmpty(t, txs)

	validate := validator.New()
	catalog := DefaultCatalog()

	for _, tx := range txs {
		require.NoError(t, validate.Struct(tx), "transaction %d", tx.TransactionID)

		assert.Contains(t, []int{1, 2, 3}, tx.Quantity)
		assert.LessOrEqual(t, tx.DiscountPercent, 40.0, "discount never exceeds the cap")
		assert.GreaterOrEqual(t, tx.DiscountPercent, 0.0)
		assert.Less(t, tx.CustomerID, 5000)
		assert.GreaterOrEqual(t, tx.CustomerID, 1)

		cat, ok := catalog.Find(tx.Category)
		require.True(t, ok, tx.Category)
		assert.Contains(t, cat.Products, tx.ProductName)
		assert.GreaterOrEqual(t, tx.UnitPrice, cat.MinPrice)
		assert.LessOrEqual(t, tx.UnitPrice, cat.MaxPrice)

		expected := tx.UnitPrice * (1 - tx.DiscountPercent/100) * float64(tx.Quantity)
		// inputs are rounded before this recomputation
		tolerance := (0.0001*tx.UnitPrice + 0.01) * float64(tx.Quantity)
		assert.InDelta(t, expected, tx.TotalAmount, tolerance)
	}
}

func TestGenerate_DiscountBySegmentAndSeason(t *testing.T) {
	txs, _ := generate(t, optionsFor(date(2023, 1, 1), date(2023, 12, 31)))

	for _, tx := range txs {
		lo, hi := SegmentDiscountRange(tx.CustomerSegment)
		pct := tx.DiscountPercent / 100
		if IsHolidayMonth(tx.Date.Month()) {
			// segment draw plus the holiday extra of at least 0.05
			assert.GreaterOrEqual(t, pct, lo+0.05-0.0001, "transaction %d", tx.TransactionID)
			assert.LessOrEqual(t, pct, 0.40)
		} else {
			assert.GreaterOrEqual(t, pct, lo-0.0001, "transaction %d", tx.TransactionID)
			assert.LessOrEqual(t, pct, hi+0.0001, "transaction %d", tx.TransactionID)
		}
	}
}

func TestGenerate_DiscountCapBinds(t *testing.T) {
	opts := optionsFor(date(2023, 12, 1), date(2023, 12, 3))
	opts.MaxDiscount = 0.06

	txs, _ := generate(t, opts)
	for _, tx := range txs {
		assert.LessOrEqual(t, tx.DiscountPercent, 6.0)
	}
	// every December discount is at least 0.05 before the cap, most exceed it
	capped := 0
	for _, tx := range txs {
		if tx.DiscountPercent == 6.0 {
			capped++
		}
	}
	assert.Greater(t, capped, len(txs)/2)
}

func TestGenerate_DiscountCapWithFinePrecision(t *testing.T) {
	opts := optionsFor(date(2023, 12, 1), date(2023, 12, 6))
	opts.MaxDiscount = 0.12345
	limit := decimal.NewFromFloat(opts.MaxDiscount).Shift(2)

	txs, _ := generate(t, opts)
	require.NotEmpty(t, txs)

	capped := 0
	for _, tx := range txs {
		pct := decimal.NewFromFloat(tx.DiscountPercent)
		assert.True(t, pct.LessThanOrEqual(limit),
			"transaction %d: discount %s above cap %s", tx.TransactionID, pct, limit)
		if tx.DiscountPercent == 12.34 {
			capped++
		}
	}
	assert.Greater(t, capped, 0, "the cap binds in December")
}

func TestGenerate_DailyVolumeWithinSeasonalRange(t *testing.T) {
	txs, summary := generate(t, optionsFor(date(2023, 1, 1), date(2023, 12, 31)))

	perDay := make(map[time.Time]int)
	for _, tx := range txs {
		perDay[tx.Date]++
	}

	assert.Len(t, perDay, 365, "every day gets transactions")
	assert.Equal(t, 365, summary.Days())

	for day, n := range perDay {
		lo, hi := DailyVolumeRange(day.Month())
		assert.GreaterOrEqual(t, n, lo, day.Format("2006-01-02"))
		assert.Less(t, n, hi, day.Format("2006-01-02"))
	}
}

func TestGenerate_SequentialIDsAndDates(t *testing.T) {
	txs, summary := generate(t, optionsFor(date(2024, 2, 27), date(2024, 3, 1)))

	for i, tx := range txs {
		assert.Equal(t, int64(1000+i), tx.TransactionID)
		if i > 0 {
			assert.False(t, tx.Date.Before(txs[i-1].Date), "dates never go backwards")
		}
	}

	assert.Equal(t, date(2024, 2, 27), summary.FirstDate)
	assert.Equal(t, date(2024, 3, 1), summary.LastDate)
	assert.Equal(t, 4, summary.Days(), "leap day included")
	assert.Equal(t, len(txs), summary.Transactions)
}

func TestGenerate_SingleDay(t *testing.T) {
	txs, summary := generate(t, optionsFor(date(2023, 7, 4), date(2023, 7, 4)))

	assert.GreaterOrEqual(t, len(txs), 120)
	assert.Less(t, len(txs), 180)
	assert.Equal(t, 1, summary.Days())
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := optionsFor(date(2023, 6, 1), date(2023, 6, 10))

	first, _ := generate(t, opts)
	second, _ := generate(t, opts)
	assert.Equal(t, first, second)

	opts.Seed = 7
	third, _ := generate(t, opts)
	assert.NotEqual(t, first, third)
}

func TestGenerate_SummaryTotals(t *testing.T) {
	txs, summary := generate(t, optionsFor(date(2023, 3, 1), date(2023, 3, 31)))

	var revenue float64
	customers := make(map[int]bool)
	for _, tx := range txs {
		revenue += tx.TotalAmount
		customers[tx.CustomerID] = true
	}

	assert.InDelta(t, revenue, summary.Revenue(), 0.01)
	assert.Equal(t, len(customers), summary.UniqueCustomers())
	require.Len(t, summary.Head, HeadSize)
	assert.Equal(t, txs[:HeadSize], summary.Head)

	volume := summary.DailyVolume()
	assert.GreaterOrEqual(t, volume.Min, 80.0, "march draws from [80,140)")
	assert.LessOrEqual(t, volume.Max, 140.0)
	assert.InDelta(t, float64(len(txs))/31, volume.Mean, 1)

	orders := summary.OrderValue()
	assert.Greater(t, orders.Min, 0.0)
	assert.LessOrEqual(t, orders.P50, orders.P95)
	assert.LessOrEqual(t, orders.P95, orders.Max)
}

func TestSummary_EmptyDistributions(t *testing.T) {
	s := NewSummary()
	assert.Equal(t, Distribution{}, s.DailyVolume())
	assert.Equal(t, Distribution{}, s.OrderValue())
	assert.Equal(t, 0, s.Days())
}

func TestSummary_OutOfRangeValues(t *testing.T) {
	s := NewSummary()
	s.Add(domain.Transaction{TransactionID: 1, Date: date(2023, 1, 1), CustomerID: 7, TotalAmount: 25.50})
	s.Add(domain.Transaction{TransactionID: 2, Date: date(2023, 1, 1), CustomerID: 8, TotalAmount: 5e8})
	s.AddDay(2)

	assert.Equal(t, 1, s.Unrecorded())
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, "500000025.50", s.TotalRevenue.StringFixed(2))
	assert.InDelta(t, 25.50, s.OrderValue().Max, 0.05)
}

func TestGenerate_SinkErrorStops(t *testing.T) {
	g, err := NewGenerator(optionsFor(date(2023, 1, 1), date(2023, 1, 31)), nil, nil)
	require.NoError(t, err)

	errFull := errors.New("disk full")
	seen := 0
	summary, err := g.Generate(context.Background(), func(domain.Transaction) error {
		seen++
		if seen == 10 {
			return errFull
		}
		return nil
	})

	require.ErrorIs(t, err, errFull)
	assert.Equal(t, 9, summary.Transactions)
}

func TestGenerate_Cancelled(t *testing.T) {
	g, err := NewGenerator(DefaultOptions(), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := g.Generate(ctx, func(domain.Transaction) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Transactions)
}

func TestGenerate_Distributions(t *testing.T) {
	txs, _ := generate(t, optionsFor(date(2023, 1, 1), date(2023, 6, 30)))
	n := float64(len(txs))

	counts := func(key func(domain.Transaction) string) map[string]float64 {
		out := make(map[string]float64)
		for _, tx := range txs {
			out[key(tx)]++
		}
		for k := range out {
			out[k] /= n
		}
		return out
	}

	quantity := counts(func(tx domain.Transaction) string { return string(rune('0' + tx.Quantity)) })
	assert.InDelta(t, 0.7, quantity["1"], 0.02)
	assert.InDelta(t, 0.2, quantity["2"], 0.02)
	assert.InDelta(t, 0.1, quantity["3"], 0.02)

	segment := counts(func(tx domain.Transaction) string { return string(tx.CustomerSegment) })
	assert.InDelta(t, 0.2, segment["Premium"], 0.02)
	assert.InDelta(t, 0.5, segment["Regular"], 0.02)
	assert.InDelta(t, 0.3, segment["Budget"], 0.02)

	country := counts(func(tx domain.Transaction) string { return string(tx.Country) })
	assert.InDelta(t, 0.7, country["USA"], 0.02)
	assert.InDelta(t, 0.05, country["France"], 0.02)

	category := counts(func(tx domain.Transaction) string { return tx.Category })
	assert.Len(t, category, 5)
	for _, share := range category {
		assert.InDelta(t, 0.2, share, 0.02)
	}
}
