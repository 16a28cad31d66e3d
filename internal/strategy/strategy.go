package strategy

import (
	"context"
	"fmt"
	"math"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
	"stockSignals/internal/strategy/indicators"
)

// Config holds parameters for the EMA crossover strategy.
type Config struct {
	FastPeriod int // e.g., 20
	SlowPeriod int // e.g., 50
}

// Strategy computes EMA crossover signals with a fixed pair of periods.
type Strategy struct {
	cfg    Config
	fast   indicators.Indicator
	slow   indicators.Indicator
	logger ports.Logger
}

// New creates a new Strategy instance.
func New(cfg Config, logger ports.Logger) (*Strategy, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for strategy")
	}
	if cfg.FastPeriod <= 0 || cfg.SlowPeriod <= 0 {
		return nil, fmt.Errorf("%w: strategy periods must be positive", ports.ErrInvalidInput)
	}
	if cfg.FastPeriod >= cfg.SlowPeriod {
		logger.Warn(context.Background(), "Fast EMA period is not shorter than slow period", map[string]interface{}{
			"fast": cfg.FastPeriod, "slow": cfg.SlowPeriod,
		})
	}
	return &Strategy{
		cfg:    cfg,
		fast:   newEMA(cfg.FastPeriod),
		slow:   newEMA(cfg.SlowPeriod),
		logger: logger,
	}, nil
}

func newEMA(period int) *indicators.MovingAverage {
	return indicators.NewMovingAverage(indicators.MovingAverageConfig{
		IndicatorConfig: indicators.IndicatorConfig{Period: period},
		Type:            indicators.ExponentialMovingAverage,
	})
}

// Config returns the periods the strategy was built with.
func (s *Strategy) Config() Config {
	return s.cfg
}

// Evaluate computes the signal series for one price series.
func (s *Strategy) Evaluate(ctx context.Context, series *domain.PriceSeries) (*domain.SignalSeries, error) {
	out, err := computeSignals(series, s.fast, s.slow, s.cfg)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"symbol":     out.Symbol,
		"fast":       s.fast.Name(),
		"slow":       s.slow.Name(),
		"points":     len(out.Points),
		"crossovers": len(out.Crossovers()),
	}
	if n := len(out.Points); n > 0 {
		fields["lastSignal"] = out.Points[n-1].Signal
	}
	s.logger.Debug(ctx, "Signals computed", fields)
	return out, nil
}

// ComputeSignals derives the fast/slow EMAs, the regime signal (1.0 while the
// fast EMA is above the slow EMA) and the position change for every bar.
// Points follow the order of series.Bars; the input is never modified.
func ComputeSignals(series *domain.PriceSeries, fastPeriod, slowPeriod int) (*domain.SignalSeries, error) {
	cfg := Config{FastPeriod: fastPeriod, SlowPeriod: slowPeriod}
	return computeSignals(series, newEMA(fastPeriod), newEMA(slowPeriod), cfg)
}

func computeSignals(series *domain.PriceSeries, fastInd, slowInd indicators.Indicator, cfg Config) (*domain.SignalSeries, error) {
	if series == nil {
		return nil, fmt.Errorf("%w: nil price series", ports.ErrInvalidInput)
	}
	for i, b := range series.Bars {
		if b == nil {
			return nil, fmt.Errorf("%w: %s: bar %d is missing", ports.ErrInvalidInput, series.Symbol, i)
		}
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return nil, fmt.Errorf("%w: %s: close on %s is not a finite number", ports.ErrInvalidInput, series.Symbol, b.Date.Format(domain.DateLayout))
		}
	}

	closes := series.Closes()
	fast, err := fastInd.Series(closes)
	if err != nil {
		return nil, fmt.Errorf("fast %s: %w", fastInd.Name(), err)
	}
	slow, err := slowInd.Series(closes)
	if err != nil {
		return nil, fmt.Errorf("slow %s: %w", slowInd.Name(), err)
	}
	if len(fast) != len(closes) || len(slow) != len(closes) {
		return nil, fmt.Errorf("%w: indicator output length mismatch for %s", ports.ErrInvalidInput, series.Symbol)
	}

	points := make([]*domain.SignalPoint, len(closes))
	prevSignal := 0.0
	for i, b := range series.Bars {
		signal := 0.0
		if fast[i] > slow[i] {
			signal = 1.0
		}

		position := 0.0
		if i > 0 {
			position = signal - prevSignal
		}
		prevSignal = signal

		points[i] = &domain.SignalPoint{
			Date:     b.Date,
			Close:    b.Close,
			EMAFast:  fast[i],
			EMASlow:  slow[i],
			Signal:   signal,
			Position: position,
		}
	}

	return &domain.SignalSeries{
		Symbol:     series.Symbol,
		FastPeriod: cfg.FastPeriod,
		SlowPeriod: cfg.SlowPeriod,
		Points:     points,
	}, nil
}
