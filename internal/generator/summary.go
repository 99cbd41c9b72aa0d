package generator

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

// HeadSize is how many leading records a Summary keeps for display
const HeadSize = 5

// Summary accumulates the dataset statistics printed after generation
type Summary struct {
	Transactions int
	FirstDate    time.Time
	LastDate     time.Time
	TotalRevenue decimal.Decimal
	Head         []domain.Transaction

	customers   map[int]struct{}
	dailyVolume *hdrhistogram.Histogram
	orderCents  *hdrhistogram.Histogram
	unrecorded  int
}

// Distribution describes the spread of a recorded quantity
type Distribution struct {
	Min  float64
	P50  float64
	P95  float64
	Max  float64
	Mean float64
}

// NewSummary returns an empty summary
func NewSummary() *Summary {
	return &Summary{
		TotalRevenue: decimal.Zero,
		customers:    make(map[int]struct{}),

		// up to 10,000 transactions a day and orders up to 1,000,000.00
		dailyVolume: hdrhistogram.New(1, 10000, 3),
		orderCents:  hdrhistogram.New(1, 100000000, 3),
	}
}

// Add folds one transaction into the summary
func (s *Summary) Add(tx domain.Transaction) {
	if s.Transactions == 0 || tx.Date.Before(s.FirstDate) {
		s.FirstDate = tx.Date
	}
	if tx.Date.After(s.LastDate) {
		s.LastDate = tx.Date
	}

	s.Transactions++
	s.TotalRevenue = s.TotalRevenue.Add(decimal.NewFromFloat(tx.TotalAmount))
	s.customers[tx.CustomerID] = struct{}{}
	s.record(s.orderCents, decimal.NewFromFloat(tx.TotalAmount).Shift(2).Round(0).IntPart())

	if len(s.Head) < HeadSize {
		s.Head = append(s.Head, tx)
	}
}

// UniqueCustomers returns the number of distinct customer ids seen
func (s *Summary) UniqueCustomers() int {
	return len(s.customers)
}

// Revenue returns the total revenue as a float
func (s *Summary) Revenue() float64 {
	return s.TotalRevenue.InexactFloat64()
}

// Days returns the number of calendar days covered, inclusive
func (s *Summary) Days() int {
	if s.Transactions == 0 {
		return 0
	}
	return int(s.LastDate.Sub(s.FirstDate).Hours()/24) + 1
}

// AddDay records the number of transactions drawn for one day
func (s *Summary) AddDay(transactions int) {
	s.record(s.dailyVolume, int64(transactions))
}

func (s *Summary) record(h *hdrhistogram.Histogram, v int64) {
	if err := h.RecordValue(v); err != nil {
		s.unrecorded++
	}
}

// Unrecorded returns how many values fell outside the distribution bounds.
// Those values are counted in the totals but missing from the percentiles.
func (s *Summary) Unrecorded() int {
	return s.unrecorded
}

// DailyVolume returns the distribution of transactions per day
func (s *Summary) DailyVolume() Distribution {
	return distribution(s.dailyVolume, 1)
}

// OrderValue returns the distribution of total_amount, in currency units
func (s *Summary) OrderValue() Distribution {
	return distribution(s.orderCents, 100)
}

func distribution(h *hdrhistogram.Histogram, scale float64) Distribution {
	if h.TotalCount() == 0 {
		return Distribution{}
	}
	return Distribution{
		Min:  float64(h.Min()) / scale,
		P50:  float64(h.ValueAtQuantile(50)) / scale,
		P95:  float64(h.ValueAtQuantile(95)) / scale,
		Max:  float64(h.Max()) / scale,
		Mean: h.Mean() / scale,
	}
}
