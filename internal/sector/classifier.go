// Package sector maps tickers to sector labels and defines the sector sets
// the scoring formulas treat specially.
//
// The Brazilian fundamentals table carries no sector column, so B3 tickers
// are classified from a static map. US records arrive with a sector string
// from the provider and are matched by substring.
package sector

import "strings"

// Other is the fallback bucket for unmapped tickers.
const Other = "Outros"

// b3Sectors maps B3 tickers to sector labels.
var b3Sectors = map[string]string{
	// Financeiro
	"ABCB4": "Financeiro", "BBAS3": "Financeiro", "BBDC3": "Financeiro", "BBDC4": "Financeiro",
	"BMEB3": "Financeiro", "BMEB4": "Financeiro", "BMGB4": "Financeiro", "BPAC11": "Financeiro",
	"BPAN4": "Financeiro", "BRSR6": "Financeiro", "ITUB3": "Financeiro", "ITUB4": "Financeiro",
	"ITSA3": "Financeiro", "ITSA4": "Financeiro", "SANB11": "Financeiro", "SANB3": "Financeiro",
	"SANB4": "Financeiro",
	// Seguros
	"BBSE3": "Seguros", "CXSE3": "Seguros", "PSSA3": "Seguros", "SULA11": "Seguros",
	"IRBR3": "Seguros",
	// Energia
	"AESB3": "Energia", "ALUP11": "Energia", "AURE3": "Energia", "CMIG3": "Energia",
	"CMIG4": "Energia", "CPFE3": "Energia", "CPLE3": "Energia", "CPLE6": "Energia",
	"EGIE3": "Energia", "ELET3": "Energia", "ELET6": "Energia", "ENBR3": "Energia",
	"ENGI11": "Energia", "EQTL3": "Energia", "LIGT3": "Energia", "NEOE3": "Energia",
	"TAEE11": "Energia", "TAEE3": "Energia", "TAEE4": "Energia", "TRPL4": "Energia",
	// Saneamento
	"CSMG3": "Saneamento", "SAPR11": "Saneamento", "SAPR3": "Saneamento", "SAPR4": "Saneamento",
	"SBSP3": "Saneamento", "AMBP3": "Saneamento",
	// Telecomunicações
	"VIVT3": "Telecomunicações", "TIMS3": "Telecomunicações", "OIBR3": "Telecomunicações",
	"OIBR4": "Telecomunicações", "TELB3": "Telecomunicações", "TELB4": "Telecomunicações",
	// Demais setores
	"BRAP3": "Materiais Básicos", "BRAP4": "Materiais Básicos",
	"VALE3": "Mineração", "PETR3": "Petróleo", "PETR4": "Petróleo", "WEGE3": "Indústria",
	"MGLU3": "Varejo", "VIIA3": "Varejo", "LREN3": "Varejo",
	"JBSS3": "Alimentos", "MRFG3": "Alimentos", "BEEF3": "Alimentos",
	"CSNA3": "Siderurgia", "GGBR4": "Siderurgia", "GOAU4": "Siderurgia", "USIM5": "Siderurgia",
	"SUZB3": "Papel e Celulose", "KLBN11": "Papel e Celulose",
	"RAIL3": "Logística", "CCRO3": "Logística", "ECOR3": "Logística", "RENT3": "Logística",
	"HAPV3": "Saúde", "RDOR3": "Saúde", "FLRY3": "Saúde", "RADL3": "Saúde",
	"CYRE3": "Construção", "EZTC3": "Construção", "MRVE3": "Construção", "JHSF3": "Imobiliário",
}

// preferred holds the sector labels favored by the sector-weighted
// (buy-and-hold income) formula: banks, energy/utilities, sanitation,
// insurance and telecom.
var preferred = map[string]bool{
	"Bancário":          true,
	"Financeiro":        true,
	"Energia":           true,
	"Utilidade Pública": true,
	"Petróleo":          true,
	"Saneamento":        true,
	"Água":              true,
	"Seguros":           true,
	"Previdência":       true,
	"Telecomunicações":  true,
	"Telecom":           true,
}

// preferredUS holds substrings matched against the free-form sector strings
// US providers return.
var preferredUS = []string{
	"Financial", "Utilities", "Energy", "Insurance", "Communication",
}

// valueQualityExcluded holds the sectors the value-quality formula pushes to
// the bottom: earnings-yield multiples are not comparable for financials,
// insurers and regulated utilities. Deliberately overlaps the preferred set;
// the two strategies disagree on these sectors.
var valueQualityExcluded = map[string]bool{
	"Financeiro": true,
	"Bancário":   true,
	"Seguros":    true,
	"Energia":    true,
	"Saneamento": true,
}

// Classify returns the sector label for a B3 ticker, or Other when the
// ticker is unmapped.
func Classify(ticker string) string {
	if s, ok := b3Sectors[strings.ToUpper(ticker)]; ok {
		return s
	}
	return Other
}

// IsPreferred reports whether a sector label belongs to the set rewarded by
// the sector-weighted formula. Exact label match for B3 sectors, substring
// match for US provider strings.
func IsPreferred(sectorLabel string) bool {
	if preferred[sectorLabel] {
		return true
	}
	for _, s := range preferredUS {
		if strings.Contains(sectorLabel, s) {
			return true
		}
	}
	return false
}

// IsValueQualityExcluded reports whether the value-quality formula should
// penalize a sector instead of ranking it on earnings yield.
func IsValueQualityExcluded(sectorLabel string) bool {
	if valueQualityExcluded[sectorLabel] {
		return true
	}
	for _, s := range []string{"Financial", "Insurance", "Utilities"} {
		if strings.Contains(sectorLabel, s) {
			return true
		}
	}
	return false
}
