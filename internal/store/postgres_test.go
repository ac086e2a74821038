package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/internal/contracts"
)

func makeRows(n int) []contracts.ReportRow {
	rows := make([]contracts.ReportRow, n)
	for i := range rows {
		rows[i] = contracts.ReportRow{Ticker: fmt.Sprintf("TICK%d", i)}
	}
	return rows
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantLens  []int
	}{
		{"empty", 0, 400, nil},
		{"single partial", 10, 400, []int{10}},
		{"exact boundary", 800, 400, []int{400, 400}},
		{"remainder", 1001, 400, []int{400, 400, 201}},
		{"size one", 3, 1, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(makeRows(tt.total), tt.size)
			require.Len(t, chunks, len(tt.wantLens))

			seen := 0
			for i, chunk := range chunks {
				assert.Len(t, chunk, tt.wantLens[i])
				for _, row := range chunk {
					assert.Equal(t, fmt.Sprintf("TICK%d", seen), row.Ticker, "order preserved")
					seen++
				}
			}
			assert.Equal(t, tt.total, seen, "no row lost or duplicated")
		})
	}
}

func TestChunk_InvalidSize(t *testing.T) {
	assert.Nil(t, Chunk(makeRows(5), 0))
	assert.Nil(t, Chunk(makeRows(5), -1))
}
