package fundamentus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stocksFixture = `
<html><body>
<table id="resultado">
<thead><tr>
<th>Papel</th><th>Cotação</th><th>P/L</th><th>P/VP</th><th>PSR</th>
<th>Div.Yield</th><th>P/Ativo</th><th>EV/EBIT</th><th>Mrg. Líq.</th>
<th>ROIC</th><th>ROE</th><th>Liq.2meses</th><th>Dív.Brut/ Patrim.</th>
<th>Cresc. Rec.5a</th>
</tr></thead>
<tbody>
<tr>
<td>PETR4</td><td>38,50</td><td>3,85</td><td>1,10</td><td>0,95</td>
<td>18,40%</td><td>0,55</td><td>2,90</td><td>24,30%</td>
<td>21,50%</td><td>28,60%</td><td>1.523.440.000</td><td>0,75</td>
<td>12,40%</td>
</tr>
<tr>
<td>VALE3</td><td>61,20</td><td>5,10</td><td>1,45</td><td>1,80</td>
<td>9,80%</td><td>0,70</td><td>4,20</td><td>30,10%</td>
<td>18,20%</td><td>22,40%</td><td>1.102.300.000</td><td>0,42</td>
<td>5,60%</td>
</tr>
<tr>
<td>BADD3</td><td>-</td><td></td><td>-</td><td></td>
<td>-</td><td></td><td>-</td><td></td>
<td>-</td><td>-</td><td>-</td><td>-</td>
<td>-</td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseStocksTable(t *testing.T) {
	records, err := parseStocksTable(stocksFixture)
	require.NoError(t, err)
	require.Len(t, records, 3)

	petr := records[0]
	assert.Equal(t, "PETR4", petr.Ticker)
	assert.Equal(t, "Petróleo", petr.Sector)
	assert.InDelta(t, 38.50, petr.Price, 1e-9)
	assert.InDelta(t, 3.85, petr.PriceToEarnings, 1e-9)
	assert.InDelta(t, 1.10, petr.PriceToBook, 1e-9)
	assert.InDelta(t, 18.40, petr.DividendYield, 1e-9)
	assert.InDelta(t, 2.90, petr.EVToEBIT, 1e-9)
	assert.InDelta(t, 24.30, petr.NetMargin, 1e-9)
	assert.InDelta(t, 21.50, petr.ReturnOnCapital, 1e-9)
	assert.InDelta(t, 28.60, petr.ReturnOnEquity, 1e-9)
	assert.InDelta(t, 1523440000, petr.Liquidity, 1e-3)
	assert.InDelta(t, 0.75, petr.DebtToEquity, 1e-9)
	assert.InDelta(t, 12.40, petr.FiveYearGrowth, 1e-9)
	// EPS derived from price and P/E
	assert.InDelta(t, 38.50/3.85, petr.EarningsPerShare, 1e-9)

	// Unparseable cells coerce to zero instead of failing the snapshot
	bad := records[2]
	assert.Equal(t, "BADD3", bad.Ticker)
	assert.Zero(t, bad.Price)
	assert.Zero(t, bad.DividendYield)
	assert.Zero(t, bad.EarningsPerShare)
}

func TestParseStocksTable_ReorderedColumns(t *testing.T) {
	// Same data with Papel and Cotação swapped: header-indexed lookup must
	// still resolve the right values.
	fixture := `
<table id="resultado">
<thead><tr><th>Cotação</th><th>Papel</th><th>Div.Yield</th></tr></thead>
<tbody><tr><td>10,00</td><td>ABCD3</td><td>5,00%</td></tr></tbody>
</table>`

	records, err := parseStocksTable(fixture)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ABCD3", records[0].Ticker)
	assert.InDelta(t, 10.0, records[0].Price, 1e-9)
	assert.InDelta(t, 5.0, records[0].DividendYield, 1e-9)
}

func TestParseStocksTable_MissingTable(t *testing.T) {
	_, err := parseStocksTable("<html><body><p>maintenance</p></body></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "results table not found")
}

func TestParseFundsTable(t *testing.T) {
	fixture := `
<table id="tabelaResultado">
<thead><tr>
<th>Papel</th><th>Segmento</th><th>Cotação</th><th>FFO Yield</th>
<th>Dividend Yield</th><th>P/VP</th><th>Liquidez</th>
</tr></thead>
<tbody>
<tr><td>HGLG11</td><td>Logística</td><td>160,20</td><td>8,1%</td><td>8,70%</td><td>0,95</td><td>2.400.000</td></tr>
<tr><td>XPDV11</td><td>Desenvolvimento Imobiliário</td><td>80,00</td><td>0,0%</td><td>0,00%</td><td>1,10</td><td>300.000</td></tr>
</tbody>
</table>`

	records, err := parseFundsTable(fixture)
	require.NoError(t, err)
	require.Len(t, records, 2)

	hglg := records[0]
	assert.Equal(t, "HGLG11", hglg.Ticker)
	assert.Equal(t, "Logística", hglg.Sector)
	assert.InDelta(t, 160.20, hglg.Price, 1e-9)
	assert.InDelta(t, 8.70, hglg.DividendYield, 1e-9)
	assert.InDelta(t, 0.95, hglg.PriceToBook, 1e-9)
	assert.InDelta(t, 2400000, hglg.Liquidity, 1e-3)
}
