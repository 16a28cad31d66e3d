package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockSignals/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, map[string]*domain.PriceSeries{
		"MSFT": {Symbol: "MSFT", Bars: []*domain.Bar{{Date: day(2), Close: 370.87}, {Date: day(3), Close: 370.6}}},
		"AAPL": {Symbol: "AAPL"},
	})

	out := buf.String()
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "370.60")
	assert.Less(t, strings.Index(out, "AAPL"), strings.Index(out, "MSFT"), "rows sorted by symbol")
}

func TestRenderSignals(t *testing.T) {
	series := &domain.SignalSeries{
		Symbol: "AAPL", FastPeriod: 20, SlowPeriod: 50,
		Points: []*domain.SignalPoint{
			{Date: day(2), Close: 10, EMAFast: 10, EMASlow: 10},
			{Date: day(3), Close: 11, EMAFast: 10.6667, EMASlow: 10.5, Signal: 1, Position: 1},
			{Date: day(4), Close: 12, EMAFast: 11.5556, EMASlow: 11.25, Signal: 1},
		},
	}

	var buf bytes.Buffer
	RenderSignals(&buf, series, 2)
	out := buf.String()
	assert.Contains(t, out, "AAPL EMA(20/50)")
	assert.Contains(t, out, "ema_fast_20")
	assert.Contains(t, out, "ema_slow_50")
	assert.NotContains(t, out, "2024-01-02")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "10.6667")

	buf.Reset()
	RenderCrossovers(&buf, series)
	out = buf.String()
	assert.Contains(t, out, "2024-01-03")
	assert.NotContains(t, out, "2024-01-04")
}
