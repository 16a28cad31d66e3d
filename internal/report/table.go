package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stockSignals/internal/domain"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)
	return t
}

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// RenderSummary prints one row per loaded series: symbol, rows, first and last date.
func RenderSummary(w io.Writer, data map[string]*domain.PriceSeries) {
	symbols := make([]string, 0, len(data))
	for s := range data {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	t := newTable(w)
	t.AppendHeader(table.Row{"Symbol", "Rows", "From", "To", "Last Close"})
	for _, s := range symbols {
		series := data[s]
		row := table.Row{s, series.Len(), "-", "-", "-"}
		if n := series.Len(); n > 0 {
			row[2] = series.Bars[0].Date.Format(domain.DateLayout)
			row[3] = series.Bars[n-1].Date.Format(domain.DateLayout)
			row[4] = num(series.Bars[n-1].Close, 2)
		}
		t.AppendRow(row)
	}
	t.Render()
}

// RenderSignals prints the last tail points of a signal series (all when tail <= 0).
func RenderSignals(w io.Writer, series *domain.SignalSeries, tail int) {
	renderPoints(w, series, series.Tail(tail))
}

// RenderCrossovers prints only the entry and exit points of a signal series.
func RenderCrossovers(w io.Writer, series *domain.SignalSeries) {
	renderPoints(w, series, series.Crossovers())
}

func renderPoints(w io.Writer, series *domain.SignalSeries, points []*domain.SignalPoint) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s EMA(%d/%d)", series.Symbol, series.FastPeriod, series.SlowPeriod))
	t.AppendHeader(table.Row{
		"Date", "Close",
		fmt.Sprintf("ema_fast_%d", series.FastPeriod),
		fmt.Sprintf("ema_slow_%d", series.SlowPeriod),
		"Signal", "Position",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, p := range points {
		t.AppendRow(table.Row{
			p.Date.Format(domain.DateLayout),
			num(p.Close, 2),
			num(p.EMAFast, 4),
			num(p.EMASlow, 4),
			num(p.Signal, 1),
			num(p.Position, 1),
		})
	}
	t.Render()
}
