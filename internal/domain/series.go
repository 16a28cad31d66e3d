package domain

import (
	"fmt"
	"sort"
)

// PriceSeries is a date-indexed sequence of daily bars for one symbol.
type PriceSeries struct {
	Symbol string
	Bars   []*Bar
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes extracts the closing prices in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Sorted returns a copy of the series ordered by ascending date.
func (s *PriceSeries) Sorted() *PriceSeries {
	bars := make([]*Bar, len(s.Bars))
	for i, b := range s.Bars {
		copied := *b
		bars[i] = &copied
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return &PriceSeries{Symbol: s.Symbol, Bars: bars}
}

// Validate checks that the series has no nil bars and no duplicate dates.
func (s *PriceSeries) Validate() error {
	seen := make(map[string]struct{}, len(s.Bars))
	for i, b := range s.Bars {
		if b == nil {
			return fmt.Errorf("bar %d is nil", i)
		}
		key := b.Date.Format(DateLayout)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate date %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
