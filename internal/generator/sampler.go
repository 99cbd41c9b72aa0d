package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Weighted draws items with probability proportional to their weight
type Weighted[T any] struct {
	items      []T
	cumulative []float64
}

// NewWeighted builds a sampler; weights must be positive and match items one to one
func NewWeighted[T any](items []T, weights []float64) (*Weighted[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("weighted sampler needs at least one item")
	}
	if len(items) != len(weights) {
		return nil, fmt.Errorf("got %d items but %d weights", len(items), len(weights))
	}

	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight %d must be positive, got %g", i, w)
		}
		total += w
		cumulative[i] = total
	}

	return &Weighted[T]{items: items, cumulative: cumulative}, nil
}

// mustWeighted is NewWeighted for the package's fixed distributions
func mustWeighted[T any](items []T, weights []float64) *Weighted[T] {
	w, err := NewWeighted(items, weights)
	if err != nil {
		panic(err)
	}
	return w
}

// Pick draws one item
func (w *Weighted[T]) Pick(r *rand.Rand) T {
	x := r.Float64() * w.cumulative[len(w.cumulative)-1]
	i := sort.Search(len(w.cumulative), func(i int) bool { return w.cumulative[i] > x })
	if i == len(w.items) {
		i--
	}
	return w.items[i]
}

// Items returns the sampled values in declaration order
func (w *Weighted[T]) Items() []T {
	return w.items
}

// uniform draws from [lo, hi)
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// intBetween draws from [lo, hi)
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// choice draws uniformly from items
func choice[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// newRand returns the PCG source every generator draws from
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
