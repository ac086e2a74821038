package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"ITUB4", "Financeiro"},
		{"itub4", "Financeiro"}, // case-insensitive lookup
		{"TAEE11", "Energia"},
		{"SAPR4", "Saneamento"},
		{"VIVT3", "Telecomunicações"},
		{"PSSA3", "Seguros"},
		{"VALE3", "Mineração"},
		{"XXXX9", Other},
		{"", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.ticker), "ticker %s", tt.ticker)
	}
}

func TestIsPreferred(t *testing.T) {
	assert.True(t, IsPreferred("Financeiro"))
	assert.True(t, IsPreferred("Saneamento"))
	assert.True(t, IsPreferred("Telecomunicações"))
	// US provider strings match by substring
	assert.True(t, IsPreferred("Financial Services"))
	assert.True(t, IsPreferred("Communication Services"))
	assert.False(t, IsPreferred("Varejo"))
	assert.False(t, IsPreferred("Technology"))
	assert.False(t, IsPreferred(Other))
}

func TestIsValueQualityExcluded(t *testing.T) {
	// The value-quality exclusions intentionally overlap the preferred set
	assert.True(t, IsValueQualityExcluded("Financeiro"))
	assert.True(t, IsValueQualityExcluded("Seguros"))
	assert.True(t, IsValueQualityExcluded("Utilities"))
	assert.False(t, IsValueQualityExcluded("Mineração"))
	assert.False(t, IsValueQualityExcluded(Other))
}
