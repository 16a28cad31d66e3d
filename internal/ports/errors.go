package ports

import (
	"errors"
	"fmt"
)

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	ErrConfigurationError = errors.New("invalid or missing configuration")
	ErrTransport          = errors.New("market data transport failed")
	ErrDataUnavailable    = errors.New("market data unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrContextCanceled    = errors.New("operation canceled via context")
)

// DataUnavailableError is returned when the provider answers with a well-formed
// body that lacks the expected time series.
type DataUnavailableError struct {
	Symbol  string
	Note    string // Provider diagnostic ("Note", "Error Message" or "Information")
	Payload string // Raw response body
}

func (e *DataUnavailableError) Error() string {
	if e.Note != "" {
		return fmt.Sprintf("error fetching %s: %s", e.Symbol, e.Note)
	}
	return fmt.Sprintf("error fetching %s: %s", e.Symbol, e.Payload)
}

// Is makes errors.Is(err, ErrDataUnavailable) match.
func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
