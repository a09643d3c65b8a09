package enrichment

import (
	"errors"
	"fmt"
)

// ErrExchangeRateUnavailable marks a failed exchange-rate lookup. It never
// leaves the package: Fetch degrades to a placeholder string instead.
var ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")

// ConfigurationError reports a missing provider credential. It is fatal and
// cannot be fixed by retrying.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Setting)
}

// EnrichmentError reports a failed weather lookup (network, provider status,
// undecodable body or timeout). It fails the current submission.
type EnrichmentError struct {
	Destination string
	Err         error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment failed for %q: %v", e.Destination, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }
