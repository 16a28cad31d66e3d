package csvcache

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

var header = []string{"date", "open", "high", "low", "close", "volume"}

// Cache implements ports.SeriesCache with one CSV file per symbol.
// Entries are never expired: once written, a snapshot is served until the file is removed.
type Cache struct {
	dir    string
	logger ports.Logger
}

var _ ports.SeriesCache = (*Cache)(nil)

// Config holds configuration for the CSV cache.
type Config struct {
	Dir    string
	Logger ports.Logger
}

// New creates the cache directory if needed and returns a cache rooted at it.
func New(cfg Config) (*Cache, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV cache")
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "data_cache"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory '%s': %w", dir, err)
	}
	cfg.Logger.Debug(context.Background(), "Cache directory checked/created", map[string]interface{}{"path": dir})
	return &Cache{dir: dir, logger: cfg.Logger}, nil
}

// Path returns the snapshot file for symbol.
func (c *Cache) Path(symbol string) string {
	return filepath.Join(c.dir, symbol+".csv")
}

func (c *Cache) lockPath(symbol string) string {
	return filepath.Join(c.dir, "."+symbol+".lock")
}

func checkSymbol(symbol string) error {
	if symbol == "" || strings.ContainsAny(symbol, `/\`) || symbol == "." || symbol == ".." {
		return fmt.Errorf("%w: invalid cache symbol %q", ports.ErrInvalidInput, symbol)
	}
	return nil
}

// Exists reports whether a snapshot file is present for symbol.
func (c *Cache) Exists(symbol string) bool {
	if checkSymbol(symbol) != nil {
		return false
	}
	info, err := os.Stat(c.Path(symbol))
	return err == nil && info.Mode().IsRegular()
}

// Load reads the snapshot for symbol.
func (c *Cache) Load(symbol string) (*domain.PriceSeries, error) {
	if err := checkSymbol(symbol); err != nil {
		return nil, err
	}

	lock := flock.New(c.lockPath(symbol))
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock cache for %s: %w", symbol, err)
	}
	defer lock.Unlock()

	file, err := os.Open(c.Path(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache for %s: %w", symbol, err)
	}
	defer file.Close()

	bars, err := readBars(file)
	if err != nil {
		return nil, fmt.Errorf("%w: cache file %s: %w", ports.ErrDataUnavailable, c.Path(symbol), err)
	}

	series := &domain.PriceSeries{Symbol: symbol, Bars: bars}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: cache file %s: %w", ports.ErrDataUnavailable, c.Path(symbol), err)
	}
	// Hand-edited snapshots may be out of order.
	return series.Sorted(), nil
}

// Save writes the snapshot for series.Symbol, replacing any existing file atomically.
func (c *Cache) Save(series *domain.PriceSeries) error {
	if series == nil {
		return fmt.Errorf("%w: nil series", ports.ErrInvalidInput)
	}
	if err := checkSymbol(series.Symbol); err != nil {
		return err
	}

	lock := flock.New(c.lockPath(series.Symbol))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock cache for %s: %w", series.Symbol, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(c.dir, series.Symbol+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file for %s: %w", series.Symbol, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := writeBars(tmp, series.Bars); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache for %s: %w", series.Symbol, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache for %s: %w", series.Symbol, err)
	}
	if err := os.Rename(tmp.Name(), c.Path(series.Symbol)); err != nil {
		return fmt.Errorf("failed to move cache into place for %s: %w", series.Symbol, err)
	}

	c.logger.Debug(context.Background(), "Series cached", map[string]interface{}{"symbol": series.Symbol, "rows": len(series.Bars), "path": c.Path(series.Symbol)})
	return nil
}

func writeBars(w io.Writer, bars []*domain.Bar) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, b := range bars {
		if b == nil {
			return errors.New("nil bar")
		}
		if err := writer.Write([]string{
			b.Date.Format(domain.DateLayout),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func readBars(r io.Reader) ([]*domain.Bar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	got, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(got[i]) != col {
			return nil, fmt.Errorf("unexpected header %v", got)
		}
	}

	var bars []*domain.Bar
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse(domain.DateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", rec[0], err)
		}
		var vals [5]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %s column %s: %w", rec[0], header[i+1], err)
			}
		}
		bars = append(bars, &domain.Bar{
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
