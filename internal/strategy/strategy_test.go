package strategy

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct {
	debugMsgs []string
	warnMsgs  []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func seriesFromCloses(symbol string, closes ...float64) *domain.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]*domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = &domain.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return &domain.PriceSeries{Symbol: symbol, Bars: bars}
}

func column(points []*domain.SignalPoint, f func(*domain.SignalPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

func TestComputeSignals_WorkedExample(t *testing.T) {
	series := seriesFromCloses("AAPL", 10, 11, 12, 20, 21, 22)

	out, err := ComputeSignals(series, 2, 3)
	require.NoError(t, err)
	require.Len(t, out.Points, 6)
	assert.Equal(t, "AAPL", out.Symbol)
	assert.Equal(t, 2, out.FastPeriod)
	assert.Equal(t, 3, out.SlowPeriod)

	assert.InDeltaSlice(t, []float64{10, 10.666667, 11.555556, 17.185185, 19.728395, 21.242798},
		column(out.Points, func(p *domain.SignalPoint) float64 { return p.EMAFast }), 1e-6)
	assert.InDeltaSlice(t, []float64{10, 10.5, 11.25, 15.625, 18.3125, 20.15625},
		column(out.Points, func(p *domain.SignalPoint) float64 { return p.EMASlow }), 1e-9)
	assert.Equal(t, []float64{10, 11, 12, 20, 21, 22},
		column(out.Points, func(p *domain.SignalPoint) float64 { return p.Close }))

	// The fast EMA is above the slow EMA from index 1 onward (10.667 > 10.5).
	assert.Equal(t, []float64{0, 1, 1, 1, 1, 1},
		column(out.Points, func(p *domain.SignalPoint) float64 { return p.Signal }))
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 0},
		column(out.Points, func(p *domain.SignalPoint) float64 { return p.Position }))
	assert.Equal(t, 1.0, out.Points[3].Signal)

	for i, p := range out.Points {
		assert.True(t, p.Date.Equal(series.Bars[i].Date))
	}
}

func TestComputeSignals_SingleUpwardCrossover(t *testing.T) {
	series := seriesFromCloses("MSFT", 10, 9, 8, 7, 12, 14, 16)

	out, err := ComputeSignals(series, 2, 3)
	require.NoError(t, err)

	positions := column(out.Points, func(p *domain.SignalPoint) float64 { return p.Position })
	for i, pos := range positions {
		if i == 4 {
			assert.Equal(t, 1.0, pos, "crossover index")
		} else {
			assert.Equal(t, 0.0, pos, "index %d", i)
		}
	}
	require.Len(t, out.Crossovers(), 1)
	assert.Equal(t, out.Points[4], out.Crossovers()[0])
}

func TestComputeSignals_EntryAndExit(t *testing.T) {
	series := seriesFromCloses("SPY", 10, 12, 14, 16, 10, 6, 4)

	out, err := ComputeSignals(series, 2, 4)
	require.NoError(t, err)

	positions := column(out.Points, func(p *domain.SignalPoint) float64 { return p.Position })
	assert.Equal(t, 1.0, positions[1])
	assert.Contains(t, positions, -1.0)
	for _, pos := range positions {
		assert.Contains(t, []float64{-1, 0, 1}, pos)
	}
}

func TestComputeSignals_Invariants(t *testing.T) {
	inputs := [][]float64{
		{5},
		{100, 100, 100, 100},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		{3, 7, 2, 9, 1, 8, 4, 6},
	}
	periods := [][2]int{{2, 3}, {3, 2}, {20, 50}, {1, 1}}

	for _, closes := range inputs {
		for _, p := range periods {
			out, err := ComputeSignals(seriesFromCloses("X", closes...), p[0], p[1])
			require.NoError(t, err)
			require.Len(t, out.Points, len(closes))

			first := out.Points[0]
			assert.Equal(t, closes[0], first.EMAFast)
			assert.Equal(t, closes[0], first.EMASlow)
			assert.Equal(t, 0.0, first.Position)
			assert.Equal(t, 0.0, first.Signal)

			for i, pt := range out.Points {
				assert.Contains(t, []float64{0, 1}, pt.Signal)
				if i > 0 {
					assert.Equal(t, pt.Signal-out.Points[i-1].Signal, pt.Position)
				}
			}
		}
	}
}

func TestComputeSignals_ConstantSeriesNeverSignals(t *testing.T) {
	out, err := ComputeSignals(seriesFromCloses("FLAT", 50, 50, 50, 50, 50), 2, 5)
	require.NoError(t, err)
	for _, p := range out.Points {
		assert.Equal(t, 0.0, p.Signal)
		assert.Equal(t, 0.0, p.Position)
	}
}

func TestComputeSignals_DoesNotMutateInput(t *testing.T) {
	series := seriesFromCloses("AAPL", 10, 11, 12, 20)
	before := make([]domain.Bar, len(series.Bars))
	for i, b := range series.Bars {
		before[i] = *b
	}

	out, err := ComputeSignals(series, 2, 3)
	require.NoError(t, err)
	out.Points[0].Close = -1

	for i, b := range series.Bars {
		assert.Equal(t, before[i], *b)
	}
}

func TestComputeSignals_Empty(t *testing.T) {
	out, err := ComputeSignals(&domain.PriceSeries{Symbol: "EMPTY"}, 2, 3)
	require.NoError(t, err)
	assert.Empty(t, out.Points)
}

func TestComputeSignals_InvalidInput(t *testing.T) {
	withNaN := seriesFromCloses("NAN", 1, 2, 3)
	withNaN.Bars[1].Close = math.NaN()

	withNil := seriesFromCloses("NIL", 1, 2, 3)
	withNil.Bars[2] = nil

	tests := []struct {
		name   string
		series *domain.PriceSeries
		fast   int
		slow   int
	}{
		{"nil series", nil, 2, 3},
		{"missing bar", withNil, 2, 3},
		{"NaN close", withNaN, 2, 3},
		{"infinite close", seriesFromCloses("INF", 1, math.Inf(1)), 2, 3},
		{"zero fast period", seriesFromCloses("A", 1, 2), 0, 3},
		{"negative slow period", seriesFromCloses("A", 1, 2), 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ComputeSignals(tt.series, tt.fast, tt.slow)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, ports.ErrInvalidInput)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		logger   ports.Logger
		wantErr  bool
		wantWarn bool
	}{
		{"valid config", Config{FastPeriod: 20, SlowPeriod: 50}, &mockLogger{}, false, false},
		{"nil logger", Config{FastPeriod: 20, SlowPeriod: 50}, nil, true, false},
		{"invalid periods", Config{FastPeriod: 0, SlowPeriod: 50}, &mockLogger{}, true, false},
		{"fast not shorter than slow is allowed", Config{FastPeriod: 50, SlowPeriod: 20}, &mockLogger{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg, tt.logger)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg, s.Config())
			if tt.wantWarn {
				assert.NotEmpty(t, tt.logger.(*mockLogger).warnMsgs)
			}
		})
	}
}

func TestStrategy_Evaluate(t *testing.T) {
	log := &mockLogger{}
	s, err := New(Config{FastPeriod: 2, SlowPeriod: 3}, log)
	require.NoError(t, err)

	out, err := s.Evaluate(context.Background(), seriesFromCloses("AAPL", 10, 11, 12, 20, 21, 22))
	require.NoError(t, err)
	assert.Len(t, out.Points, 6)
	assert.Contains(t, log.debugMsgs, "Signals computed")

	_, err = s.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, ports.ErrInvalidInput)
}

// fixedIndicator returns a canned output regardless of input.
type fixedIndicator struct {
	name string
	out  []float64
}

func (f *fixedIndicator) Series(values []float64) ([]float64, error) { return f.out, nil }
func (f *fixedIndicator) Name() string                               { return f.name }

func TestNew_BuildsEMAIndicators(t *testing.T) {
	s, err := New(Config{FastPeriod: 20, SlowPeriod: 50}, &mockLogger{})
	require.NoError(t, err)

	assert.Equal(t, "EMA(20)", s.fast.Name())
	assert.Equal(t, "EMA(50)", s.slow.Name())
}

func TestComputeSignals_UsesIndicatorOutputs(t *testing.T) {
	series := seriesFromCloses("TEST", 1, 1, 1)
	fast := &fixedIndicator{name: "fast", out: []float64{1, 3, 1}}
	slow := &fixedIndicator{name: "slow", out: []float64{2, 2, 2}}

	out, err := computeSignals(series, fast, slow, Config{FastPeriod: 1, SlowPeriod: 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, column(out.Points, func(p *domain.SignalPoint) float64 { return p.Signal }))
	assert.Equal(t, []float64{0, 1, -1}, column(out.Points, func(p *domain.SignalPoint) float64 { return p.Position }))
	assert.Equal(t, []float64{1, 3, 1}, column(out.Points, func(p *domain.SignalPoint) float64 { return p.EMAFast }))
}

func TestComputeSignals_IndicatorLengthMismatch(t *testing.T) {
	series := seriesFromCloses("TEST", 1, 2, 3)
	short := &fixedIndicator{name: "short", out: []float64{1}}
	full := &fixedIndicator{name: "full", out: []float64{1, 2, 3}}

	_, err := computeSignals(series, short, full, Config{FastPeriod: 1, SlowPeriod: 2})
	assert.ErrorIs(t, err, ports.ErrInvalidInput)
}
