package contracts

import (
	"context"
	"time"
)

// FundamentalsProvider supplies a full-market fundamentals snapshot.
// A call may take minutes for a bulk scan and may fail; callers recover via
// the report store.
type FundamentalsProvider interface {
	Snapshot(ctx context.Context) ([]AssetRecord, error)
}

// FundsProvider supplies the real-estate fund (FII) table.
type FundsProvider interface {
	Snapshot(ctx context.Context) ([]FundRecord, error)
}

// ReportStore persists assembled ranking reports partitioned by calendar
// day, plus the freshness flags that gate expensive recomputation.
type ReportStore interface {
	// GetByDate returns the rows stored for one source and day.
	GetByDate(ctx context.Context, source string, date time.Time) ([]ReportRow, error)

	// SaveReport replaces the stored rows for a source: rows from other
	// dates are purged and the new ones written in chunked batches.
	SaveReport(ctx context.Context, source string, date time.Time, rows []ReportRow) error

	// LatestAny returns the newest stored rows for a source regardless of
	// date, for fallback when the upstream is down.
	LatestAny(ctx context.Context, source string) ([]ReportRow, time.Time, error)

	// GetFlag returns the date a named daily computation last completed.
	GetFlag(ctx context.Context, name string) (time.Time, bool, error)

	// SetFlag records that a named daily computation completed for a day.
	SetFlag(ctx context.Context, name string, date time.Time) error
}

// QuoteProvider supplies candle history for a single symbol.
type QuoteProvider interface {
	History(ctx context.Context, symbol, interval, period string) ([]Candle, error)
}

// CalendarProvider supplies normalized economic-calendar events.
type CalendarProvider interface {
	Events(ctx context.Context, country string) ([]CalendarEvent, error)
}

// CalendarStore persists calendar events by day.
type CalendarStore interface {
	SaveEvents(ctx context.Context, events []CalendarEvent) error
	EventsByCountry(ctx context.Context, country string, from, to time.Time) ([]CalendarEvent, error)
}
