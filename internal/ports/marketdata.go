package ports

import (
	"context"

	"stockSignals/internal/domain"
)

// QuoteClient fetches daily price history from a remote provider.
type QuoteClient interface {
	// FetchDaily issues one request for the symbol and returns the parsed series,
	// sorted by ascending date.
	FetchDaily(ctx context.Context, symbol string, size domain.OutputSize) (*domain.PriceSeries, error)
}

// SeriesCache stores one flat snapshot per symbol.
type SeriesCache interface {
	// Exists reports whether a snapshot for the symbol is present.
	Exists(symbol string) bool
	// Load reads the snapshot for the symbol.
	Load(symbol string) (*domain.PriceSeries, error)
	// Save writes the snapshot for series.Symbol, replacing any existing file.
	Save(series *domain.PriceSeries) error
}
