package app

import (
	"context"
	"fmt"

	"stockSignals/internal/domain"
	"stockSignals/internal/strategy"
)

// SignalService loads price series and evaluates the crossover strategy on them.
type SignalService struct {
	provider *Provider
	strategy *strategy.Strategy
}

// NewSignalService wires a provider and a strategy together.
func NewSignalService(provider *Provider, strat *strategy.Strategy) (*SignalService, error) {
	if provider == nil || strat == nil {
		return nil, fmt.Errorf("missing required dependencies for SignalService")
	}
	return &SignalService{provider: provider, strategy: strat}, nil
}

// Run loads every symbol, then computes signals for each. Any failure aborts the run.
func (s *SignalService) Run(ctx context.Context, symbols []string, size domain.OutputSize) (map[string]*domain.SignalSeries, error) {
	data, err := s.provider.LoadMany(ctx, symbols, size)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*domain.SignalSeries, len(data))
	for sym, series := range data {
		signals, err := s.strategy.Evaluate(ctx, series)
		if err != nil {
			return nil, fmt.Errorf("signals for %s: %w", sym, err)
		}
		out[sym] = signals
	}
	return out, nil
}
