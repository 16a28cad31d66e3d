package domain

import "time"

// DateLayout is the calendar date format used by the provider and the cache files.
const DateLayout = "2006-01-02"

// Bar represents a single daily OHLCV record.
type Bar struct {
	Date   time.Time // Trading day (UTC midnight)
	Open   float64   // Opening price
	High   float64   // Highest price
	Low    float64   // Lowest price
	Close  float64   // Closing price
	Volume float64   // Traded volume
}

// OutputSize selects how much history the provider returns.
type OutputSize string

const (
	// Compact returns the most recent ~100 observations.
	Compact OutputSize = "compact"
	// Full returns the entire available history.
	Full OutputSize = "full"
)

// String returns the query value of the output size.
func (s OutputSize) String() string {
	return string(s)
}
