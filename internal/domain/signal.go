package domain

import "time"

// SignalPoint is one row of the crossover output, aligned to an input bar.
type SignalPoint struct {
	Date     time.Time
	Close    float64
	EMAFast  float64
	EMASlow  float64
	Signal   float64 // 1.0 when EMAFast > EMASlow, else 0.0
	Position float64 // Signal change: +1 entry, -1 exit, 0 otherwise
}

// SignalSeries is the crossover output for one price series.
type SignalSeries struct {
	Symbol     string
	FastPeriod int
	SlowPeriod int
	Points     []*SignalPoint
}

// Tail returns the last n points, or all points when n <= 0 or n exceeds the length.
func (s *SignalSeries) Tail(n int) []*SignalPoint {
	if n <= 0 || n >= len(s.Points) {
		return s.Points
	}
	return s.Points[len(s.Points)-n:]
}

// Crossovers returns only the points where the position changed.
func (s *SignalSeries) Crossovers() []*SignalPoint {
	var out []*SignalPoint
	for _, p := range s.Points {
		if p.Position != 0 {
			out = append(out, p)
		}
	}
	return out
}
