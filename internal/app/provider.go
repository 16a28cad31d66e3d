package app

import (
	"context"
	"fmt"
	"strings"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

// Provider resolves price series from the local cache, falling back to the
// remote quote client on a miss. Cached snapshots are trusted unconditionally.
type Provider struct {
	client ports.QuoteClient
	cache  ports.SeriesCache
	logger ports.Logger
}

// NewProvider creates a new data provider.
func NewProvider(client ports.QuoteClient, cache ports.SeriesCache, logger ports.Logger) (*Provider, error) {
	if client == nil || cache == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Provider")
	}
	return &Provider{client: client, cache: cache, logger: logger}, nil
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("%w: symbol must not be empty", ports.ErrInvalidInput)
	}
	return s, nil
}

// Fetch returns the series for symbol. A cached snapshot is returned as is,
// without touching the network or the rate limiter. On a miss the series is
// fetched, persisted to the cache, then returned.
func (p *Provider) Fetch(ctx context.Context, symbol string, size domain.OutputSize) (*domain.PriceSeries, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	if p.cache.Exists(sym) {
		series, err := p.cache.Load(sym)
		if err != nil {
			return nil, fmt.Errorf("load cached %s: %w", sym, err)
		}
		p.logger.Debug(ctx, "Cache hit", map[string]interface{}{"symbol": sym, "bars": series.Len()})
		return series, nil
	}

	p.logger.Debug(ctx, "Cache miss, fetching from provider", map[string]interface{}{"symbol": sym, "outputsize": size.String()})
	series, err := p.client.FetchDaily(ctx, sym, size)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", sym, err)
	}
	series.Symbol = sym

	if err := p.cache.Save(series); err != nil {
		return nil, fmt.Errorf("cache %s: %w", sym, err)
	}
	p.logger.Info(ctx, "Fetched and cached series", map[string]interface{}{"symbol": sym, "bars": series.Len()})
	return series, nil
}

// LoadMany resolves each symbol in order. The first failure aborts the batch
// and no partial result is returned. The map is keyed by the normalized
// (trimmed, upper-cased) symbol, so " aapl" is returned under "AAPL".
func (p *Provider) LoadMany(ctx context.Context, symbols []string, size domain.OutputSize) (map[string]*domain.PriceSeries, error) {
	out := make(map[string]*domain.PriceSeries, len(symbols))
	for _, symbol := range symbols {
		p.logger.Info(ctx, "Loading data", map[string]interface{}{"symbol": symbol})
		series, err := p.Fetch(ctx, symbol, size)
		if err != nil {
			p.logger.Error(ctx, err, "Loading data failed, aborting batch", map[string]interface{}{"symbol": symbol})
			return nil, err
		}
		out[series.Symbol] = series
	}
	return out, nil
}
