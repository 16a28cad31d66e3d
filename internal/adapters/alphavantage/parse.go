package alphavantage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

const timeSeriesKey = "Time Series (Daily)"

// diagnosticKeys are the provider keys that explain a missing time series, in lookup order.
var diagnosticKeys = []string{"Note", "Error Message", "Information"}

// parseDaily converts a TIME_SERIES_DAILY body into a series sorted by date.
func parseDaily(symbol string, body []byte) (*domain.PriceSeries, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, &ports.DataUnavailableError{Symbol: symbol, Note: "malformed JSON: " + err.Error(), Payload: string(body)}
	}

	ts := v.GetObject(timeSeriesKey)
	if ts == nil {
		return nil, &ports.DataUnavailableError{Symbol: symbol, Note: diagnostic(v), Payload: string(body)}
	}

	bars := make([]*domain.Bar, 0, ts.Len())
	var visitErr error
	ts.Visit(func(key []byte, row *fastjson.Value) {
		if visitErr != nil {
			return
		}
		bar, err := parseBar(string(key), row)
		if err != nil {
			visitErr = err
			return
		}
		bars = append(bars, bar)
	})
	if visitErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrDataUnavailable, symbol, visitErr)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	series := &domain.PriceSeries{Symbol: symbol, Bars: bars}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrDataUnavailable, symbol, err)
	}
	return series, nil
}

func diagnostic(v *fastjson.Value) string {
	for _, key := range diagnosticKeys {
		if s := v.GetStringBytes(key); len(s) > 0 {
			return string(s)
		}
	}
	return ""
}

func parseBar(date string, row *fastjson.Value) (*domain.Bar, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	obj, err := row.Object()
	if err != nil {
		return nil, fmt.Errorf("row %s: %w", date, err)
	}

	values := make(map[string]float64, 5)
	var fieldErr error
	obj.Visit(func(label []byte, raw *fastjson.Value) {
		if fieldErr != nil {
			return
		}
		name := fieldName(string(label))
		s, err := raw.StringBytes()
		if err != nil {
			fieldErr = fmt.Errorf("row %s field %q: %w", date, label, err)
			return
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
		if err != nil {
			fieldErr = fmt.Errorf("row %s field %q: %w", date, label, err)
			return
		}
		values[name] = f
	})
	if fieldErr != nil {
		return nil, fieldErr
	}

	for _, name := range []string{"open", "high", "low", "close", "volume"} {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("row %s: missing %s", date, name)
		}
	}

	return &domain.Bar{
		Date:   day,
		Open:   values["open"],
		High:   values["high"],
		Low:    values["low"],
		Close:  values["close"],
		Volume: values["volume"],
	}, nil
}

// fieldName strips the numeric index prefix: "1. open" -> "open".
func fieldName(label string) string {
	if _, name, ok := strings.Cut(label, ". "); ok {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(label)
}
