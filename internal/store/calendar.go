package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rfarias/garimpo/internal/contracts"
)

// CalendarRepository persists economic-calendar events.
type CalendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(pool *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{pool: pool}
}

var _ contracts.CalendarStore = (*CalendarRepository)(nil)

// SaveEvents upserts events keyed by (country, event, date, time). Re-syncs
// of the same feed update importance and actual/forecast values in place.
func (r *CalendarRepository) SaveEvents(ctx context.Context, events []contracts.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO calendar.events (
			country, event, event_date, event_time, importance, actual, forecast, previous
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (country, event, event_date, event_time) DO UPDATE SET
			importance = EXCLUDED.importance,
			actual = EXCLUDED.actual,
			forecast = EXCLUDED.forecast,
			previous = EXCLUDED.previous
	`

	batch := &pgx.Batch{}
	for _, ev := range events {
		batch.Queue(query,
			ev.Country, ev.Event, ev.Date, ev.Time,
			ev.Importance, ev.Actual, ev.Forecast, ev.Previous,
		)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save calendar events: %w", err)
	}
	return nil
}

// EventsByCountry returns events for a country inside [from, to] calendar
// days, soonest first.
func (r *CalendarRepository) EventsByCountry(ctx context.Context, country string, from, to time.Time) ([]contracts.CalendarEvent, error) {
	query := `
		SELECT country, event, event_date, event_time, importance, actual, forecast, previous
		FROM calendar.events
		WHERE country = $1 AND event_date BETWEEN $2 AND $3
		ORDER BY event_date ASC, event_time ASC
	`

	rows, err := r.pool.Query(ctx, query,
		country, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	events := make([]contracts.CalendarEvent, 0)
	for rows.Next() {
		var ev contracts.CalendarEvent
		err := rows.Scan(
			&ev.Country, &ev.Event, &ev.Date, &ev.Time,
			&ev.Importance, &ev.Actual, &ev.Forecast, &ev.Previous,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return events, nil
}
