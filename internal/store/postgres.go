// Package store handles ranking report and calendar persistence
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rfarias/garimpo/internal/contracts"
)

// insertChunkSize bounds one batch write. Large markets produce a few
// thousand rows; chunking keeps transactions and round-trips small.
const insertChunkSize = 400

// Repository persists ranking reports partitioned by source and calendar
// day, plus the freshness flags that gate daily recomputation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new report repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.ReportStore = (*Repository)(nil)

// GetByDate returns the rows stored for one source and day, ordered by the
// value-quality rank.
func (r *Repository) GetByDate(ctx context.Context, source string, date time.Time) ([]contracts.ReportRow, error) {
	query := `
		SELECT
			ticker, sector, price, dividend_yield, price_to_book,
			price_to_earnings, liquidity,
			rank_value_quality, rank_intrinsic, rank_yield_ceiling, rank_sector_weighted,
			intrinsic_value, ceiling_price
		FROM ranking.report_rows
		WHERE source = $1 AND report_date = $2
		ORDER BY rank_value_quality ASC, ticker ASC
	`

	rows, err := r.pool.Query(ctx, query, source, dateKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	return scanReportRows(rows)
}

// SaveReport replaces the stored rows for a source: rows from other dates
// are purged and the new ones written in chunked batches, all in one
// transaction so readers never see a half-written report.
func (r *Repository) SaveReport(ctx context.Context, source string, date time.Time, reportRows []contracts.ReportRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Only the current day is kept per source
	_, err = tx.Exec(ctx, "DELETE FROM ranking.report_rows WHERE source = $1", source)
	if err != nil {
		return fmt.Errorf("failed to purge old report rows: %w", err)
	}

	query := `
		INSERT INTO ranking.report_rows (
			source, report_date, ticker, sector, price, dividend_yield,
			price_to_book, price_to_earnings, liquidity,
			rank_value_quality, rank_intrinsic, rank_yield_ceiling, rank_sector_weighted,
			intrinsic_value, ceiling_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for _, chunk := range Chunk(reportRows, insertChunkSize) {
		batch := &pgx.Batch{}
		for _, row := range chunk {
			batch.Queue(query,
				source, dateKey(date), row.Ticker, row.Sector, row.Price,
				row.DividendYield, row.PriceToBook, row.PriceToEarnings, row.Liquidity,
				row.RankValueQuality, row.RankIntrinsic, row.RankYieldCeiling, row.RankSectorWeighted,
				row.IntrinsicValue, row.CeilingPrice,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert report chunk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LatestAny returns the newest stored rows for a source regardless of date.
// Used as fallback when the upstream is down.
func (r *Repository) LatestAny(ctx context.Context, source string) ([]contracts.ReportRow, time.Time, error) {
	var latest *time.Time
	err := r.pool.QueryRow(ctx,
		"SELECT MAX(report_date) FROM ranking.report_rows WHERE source = $1", source,
	).Scan(&latest)
	if err == pgx.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to find latest report date: %w", err)
	}
	if latest == nil {
		// MAX over an empty partition is NULL
		return nil, time.Time{}, nil
	}

	rows, err := r.GetByDate(ctx, source, *latest)
	if err != nil {
		return nil, time.Time{}, err
	}
	return rows, *latest, nil
}

// GetFlag returns the date a named daily computation last completed.
func (r *Repository) GetFlag(ctx context.Context, name string) (time.Time, bool, error) {
	var date time.Time
	err := r.pool.QueryRow(ctx,
		"SELECT flag_date FROM ranking.freshness_flags WHERE name = $1", name,
	).Scan(&date)
	if err == pgx.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get freshness flag: %w", err)
	}
	return date, true, nil
}

// SetFlag records that a named daily computation completed for a day.
func (r *Repository) SetFlag(ctx context.Context, name string, date time.Time) error {
	query := `
		INSERT INTO ranking.freshness_flags (name, flag_date, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET
			flag_date = EXCLUDED.flag_date,
			updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, name, dateKey(date)); err != nil {
		return fmt.Errorf("failed to set freshness flag: %w", err)
	}
	return nil
}

// Chunk splits rows into slices of at most size elements. The last chunk
// may be shorter; empty input yields no chunks.
func Chunk(rows []contracts.ReportRow, size int) [][]contracts.ReportRow {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	chunks := make([][]contracts.ReportRow, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

func scanReportRows(rows pgx.Rows) ([]contracts.ReportRow, error) {
	results := make([]contracts.ReportRow, 0)
	for rows.Next() {
		var row contracts.ReportRow
		err := rows.Scan(
			&row.Ticker, &row.Sector, &row.Price, &row.DividendYield, &row.PriceToBook,
			&row.PriceToEarnings, &row.Liquidity,
			&row.RankValueQuality, &row.RankIntrinsic, &row.RankYieldCeiling, &row.RankSectorWeighted,
			&row.IntrinsicValue, &row.CeilingPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

// dateKey truncates a timestamp to its calendar day, the partition key.
func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
