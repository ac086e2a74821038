package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "200000", 200000},
		{"en-US decimal", "1234.56", 1234.56},
		{"pt-BR decimal", "12,34", 12.34},
		{"pt-BR thousands", "1.234.567", 1234567},
		{"pt-BR single group", "640.000", 640000},
		{"pt-BR liquidity", "1.523.440.000", 1523440000},
		{"negative grouped", "-1.234.567", -1234567},
		{"pt-BR full", "1.234,56", 1234.56},
		{"percent suffix", "8,45%", 8.45},
		{"negative percent", "-3,20%", -3.2},
		{"currency prefix", "R$ 25,90", 25.9},
		{"dollar prefix", "$10.50", 10.5},
		{"empty", "", 0},
		{"dash placeholder", "-", 0},
		{"nan literal", "nan", 0},
		{"infinity literal", "Inf", 0},
		{"negative infinity", "-Infinity", 0},
		{"garbage", "abc", 0},
		{"whitespace", "  42,0  ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Parse(tt.input), 1e-9)
		})
	}
}

func TestParsePercent(t *testing.T) {
	assert.InDelta(t, 6.5, ParsePercent("6,5%"), 1e-9)
	assert.Zero(t, ParsePercent("n/a"))
}
