package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/c9s/requestgen"
	"golang.org/x/time/rate"

	"stockSignals/internal/domain"
	"stockSignals/internal/ports"
)

const (
	DefaultBaseURL     = "https://www.alphavantage.co"
	DefaultMinInterval = 12 * time.Second // free tier allows 5 calls per minute

	functionDaily = "TIME_SERIES_DAILY"
	maxBodyInLog  = 512
)

// Client implements ports.QuoteClient against the Alpha Vantage query endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	limiter    *rate.Limiter
	logger     ports.Logger
}

var _ ports.QuoteClient = (*Client)(nil)

// Config holds configuration specific to the Alpha Vantage adapter.
type Config struct {
	APIKey      string
	BaseURL     string        // Defaults to DefaultBaseURL
	MinInterval time.Duration // Minimum spacing between requests, defaults to DefaultMinInterval
	Timeout     time.Duration // HTTP client timeout, defaults to 30s
	HTTPClient  *http.Client  // Optional, overrides Timeout
	Logger      ports.Logger
}

// New creates a new Alpha Vantage client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Alpha Vantage client")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required for Alpha Vantage client", ports.ErrConfigurationError)
	}

	rawURL := strings.TrimRight(cfg.BaseURL, "/")
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %w", ports.ErrConfigurationError, rawURL, err)
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cfg.Logger.Debug(context.Background(), "Alpha Vantage client configured", map[string]interface{}{
		"baseURL": baseURL.String(), "minInterval": minInterval.String(),
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		logger:     cfg.Logger,
	}, nil
}

// handleError translates transport failures into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation, symbol string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "symbol": symbol}

	var finalErr error
	switch {
	case errors.Is(err, ports.ErrDataUnavailable), errors.Is(err, ports.ErrTransport):
		finalErr = fmt.Errorf("%s %s failed: %w", operation, symbol, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		finalErr = fmt.Errorf("%s %s canceled: %w: %w", operation, symbol, ports.ErrContextCanceled, err)
	default:
		finalErr = fmt.Errorf("%s %s failed: %w: %w", operation, symbol, ports.ErrTransport, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

// FetchDaily requests TIME_SERIES_DAILY for the symbol. It waits on the rate
// limiter first, so consecutive calls are spaced by at least the minimum interval.
func (c *Client) FetchDaily(ctx context.Context, symbol string, size domain.OutputSize) (*domain.PriceSeries, error) {
	op := "FetchDaily"

	if err := c.limiter.Wait(ctx); err != nil {
		err = fmt.Errorf("%s %s: rate limiter wait: %w: %w", op, symbol, ports.ErrContextCanceled, err)
		c.logger.Error(ctx, err, "rate limiter wait aborted", map[string]interface{}{"symbol": symbol})
		return nil, err
	}

	req, err := c.NewRequest(ctx, http.MethodGet, "/query", url.Values{
		"function":   {functionDaily},
		"symbol":     {symbol},
		"outputsize": {size.String()},
		"apikey":     {c.apiKey},
		"datatype":   {"json"},
	})
	if err != nil {
		return nil, c.handleError(ctx, err, op, symbol)
	}

	resp, err := c.SendRequest(req)
	if err != nil {
		return nil, c.handleError(ctx, err, op, symbol)
	}

	series, err := parseDaily(symbol, resp.Body)
	if err != nil {
		return nil, c.handleError(ctx, err, op, symbol)
	}

	c.logger.Debug(ctx, "Fetched daily series", map[string]interface{}{"symbol": symbol, "bars": series.Len(), "outputsize": size.String()})
	return series, nil
}

// NewRequest builds a request for refURL relative to the base URL.
func (c *Client) NewRequest(ctx context.Context, method, refURL string, params url.Values) (*http.Request, error) {
	rel, err := url.Parse(refURL)
	if err != nil {
		return nil, err
	}

	if params != nil {
		rel.RawQuery = params.Encode()
	}

	pathURL := c.baseURL.ResolveReference(rel)
	return http.NewRequestWithContext(ctx, method, pathURL.String(), nil)
}

// SendRequest executes req and reads the whole body. Error statuses are
// returned as ErrTransport with a snippet of the body.
func (c *Client) SendRequest(req *http.Request) (*requestgen.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	response, err := requestgen.NewResponse(resp)
	if err != nil {
		return response, fmt.Errorf("read body: %w", err)
	}

	if response.IsError() {
		return response, fmt.Errorf("%w: status %d, body: %s", ports.ErrTransport, response.StatusCode, truncate(response.Body, maxBodyInLog))
	}

	return response, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
