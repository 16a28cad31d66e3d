package indicators

// Indicator derives one value per input observation.
type Indicator interface {
	// Series computes the indicator over values, returning a slice of the same length.
	Series(values []float64) ([]float64, error)

	// Name returns the name of the indicator
	Name() string
}

// IndicatorConfig holds common configuration for indicators
type IndicatorConfig struct {
	Period int
}
