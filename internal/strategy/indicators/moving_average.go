package indicators

import (
	"fmt"

	"stockSignals/internal/ports"
)

// MovingAverageType defines the type of moving average
type MovingAverageType string

const (
	// ExponentialMovingAverage represents an exponential moving average
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// MovingAverageConfig holds configuration for moving average indicators
type MovingAverageConfig struct {
	IndicatorConfig
	Type MovingAverageType
}

// MovingAverage computes a moving average series over closing prices.
type MovingAverage struct {
	config MovingAverageConfig
}

var _ Indicator = (*MovingAverage)(nil)

// NewMovingAverage creates a new moving average indicator instance
func NewMovingAverage(config MovingAverageConfig) *MovingAverage {
	if config.Type == "" {
		config.Type = ExponentialMovingAverage
	}
	return &MovingAverage{config: config}
}

// Name returns the name of the indicator, e.g. "EMA(20)".
func (m *MovingAverage) Name() string {
	return fmt.Sprintf("%s(%d)", m.config.Type, m.config.Period)
}

// Series computes the moving average for every input value.
func (m *MovingAverage) Series(values []float64) ([]float64, error) {
	switch m.config.Type {
	case ExponentialMovingAverage:
		return EMASeries(values, m.config.Period)
	default:
		return nil, fmt.Errorf("%w: unsupported moving average type: %s", ports.ErrInvalidInput, m.config.Type)
	}
}

// EMASeries applies the exponential moving average recurrence with span period:
// alpha = 2/(period+1), out[0] = values[0], out[t] = alpha*values[t] + (1-alpha)*out[t-1].
// There is no warm-up window; every input position gets a value.
func EMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: EMA period must be positive, got %d", ports.ErrInvalidInput, period)
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	multiplier := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = multiplier*values[i] + (1-multiplier)*out[i-1]
	}
	return out, nil
}
