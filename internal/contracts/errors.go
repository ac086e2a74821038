package contracts

import "errors"

// Provider boundary failures. Callers branch on these instead of catching
// arbitrary upstream errors.
var (
	// ErrUpstreamUnavailable covers network failures, non-200 responses and
	// unparseable or column-empty tables. Data-quality failures fold into
	// it: recovery is the same (serve the newest stored report).
	ErrUpstreamUnavailable = errors.New("upstream source unavailable")

	// ErrNoData means no fresh data and no historical fallback anywhere.
	ErrNoData = errors.New("no data available")
)
