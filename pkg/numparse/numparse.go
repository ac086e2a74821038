// Package numparse converts localized numeric strings from upstream market
// data sources into float64 values.
//
// Fundamentus and other Brazilian sources format numbers as "1.234,56" with
// optional "%" and "R$" decorations. Anything that cannot be parsed becomes
// 0 so that downstream ranking code never sees NaN.
package numparse

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts a localized numeric string to float64.
//
// Rules:
//   - currency prefixes ("R$", "$", "US$") and "%" suffixes are stripped
//   - pt-BR separators are normalized: "." thousands, "," decimal
//   - dot-grouped integers without a decimal comma ("1.523.440.000",
//     "640.000") are read as pt-BR thousands, not en-US decimals
//   - plain en-US numbers ("1234.56") parse unchanged
//   - empty, "-", "nan", infinities and otherwise unparseable input
//     return 0
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	s = strings.TrimSuffix(s, "%")
	for _, prefix := range []string{"R$", "US$", "$"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	if lower == "nan" || lower == "n/a" || lower == "nd" {
		return 0
	}

	if strings.Contains(s, ",") {
		// pt-BR: "1.234,56" -> "1234.56"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if dotGroupedInt(s) {
		// pt-BR integer: "1.523.440.000" -> "1523440000"
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// dotGroupedInt reports whether s is an integer written with "." thousands
// separators and no decimal part, like "640.000" or "1.523.440.000".
func dotGroupedInt(s string) bool {
	s = strings.TrimPrefix(s, "-")
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for i, part := range parts {
		if i > 0 && len(part) != 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// ParsePercent parses a localized percentage string ("12,5%") into its
// numeric percent value (12.5). Identical to Parse; kept as a separate name
// so call sites document the unit they expect.
func ParsePercent(s string) float64 {
	return Parse(s)
}
