package importer

import (
	"testing"

	"SalesOpsHub/api/sales/regionconfig"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds one sheet row of the given width with values at specific
// column indices.
func row(width int, cells map[int]string) []string {
	r := make([]string, width)
	for col, v := range cells {
		r[col] = v
	}
	return r
}

const pnlWidth = 43

func pnlGrid(rows ...[]string) *Grid {
	all := [][]string{
		row(pnlWidth, nil),
		row(pnlWidth, map[int]string{2: "1350"}), // rate cell
		row(pnlWidth, nil),
		row(pnlWidth, nil),
		row(pnlWidth, nil),
	}
	all = append(all, rows...)
	return NewGrid("손익관리_3월", all)
}

func TestParseMonthToken(t *testing.T) {
	m, ok := ParseMonthToken("3월")
	assert.True(t, ok)
	assert.Equal(t, 3, m)

	m, ok = ParseMonthToken(" 12월 ")
	assert.True(t, ok)
	assert.Equal(t, 12, m)

	for _, bad := range []string{"13월", "0월", "3", "삼월", ""} {
		_, ok := ParseMonthToken(bad)
		assert.False(t, ok, "token %q", bad)
	}
}

// The global workbook mixes its own "손익관리 전체_" sheets with plain
// "손익관리_" ones; both must resolve to a month token.
func TestPnLSheetToken(t *testing.T) {
	global := regionconfig.Get(regionconfig.RegionGlobal)

	token, ok := PnLSheetToken("손익관리 전체_3월", global)
	require.True(t, ok)
	assert.Equal(t, "3월", token)

	token, ok = PnLSheetToken("손익관리_4월", global)
	require.True(t, ok)
	assert.Equal(t, "4월", token)

	us := regionconfig.Get(regionconfig.RegionUS)
	token, ok = PnLSheetToken("손익관리_12월", us)
	require.True(t, ok)
	assert.Equal(t, "12월", token)

	_, ok = PnLSheetToken("브랜드별 매출", us)
	assert.False(t, ok)
}

func TestExtractPnL(t *testing.T) {
	g := pnlGrid(
		row(pnlWidth, map[int]string{
			1:  "2026-03-01",
			2:  "1,000.50", // gmv
			3:  "900",      // gsv
			11: "120",      // operating profit
			12: "0.12",     // operating margin
			15: "50",       // b2b sales total
			25: "800",      // b2c total
			26: "500",      // shopify sales
			27: "200",      // amazon sales
			28: "100",      // tiktok sales
			29: "5",        // shopify refund
			32: "15",       // b2c refund total
		}),
		row(pnlWidth, map[int]string{1: "합계", 2: "99999"}),
		row(pnlWidth, map[int]string{1: "2026-03-02", 2: "777"}), // after totals, never read
	)

	res, err := ExtractPnL(g, regionconfig.Get(regionconfig.RegionUS), 2026, 3)
	require.NoError(t, err)

	assert.True(t, res.Rate.Rate.Equal(decimal.NewFromInt(1350)))
	assert.Equal(t, 2026, res.Rate.Year)
	assert.Equal(t, 3, res.Rate.Month)

	require.Len(t, res.Totals, 1)
	require.Len(t, res.B2B, 1)
	require.Len(t, res.B2C, 1)

	total := res.Totals[0]
	assert.Equal(t, "2026-03-01", total.Date.Format("2006-01-02"))
	assert.True(t, total.GMV.Equal(decimal.RequireFromString("1000.50")))
	assert.True(t, total.OperatingProfit.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, total.OperatingMargin)
	assert.True(t, total.OperatingMargin.Equal(decimal.RequireFromString("0.12")))

	assert.True(t, res.B2B[0].SalesTotal.Equal(decimal.NewFromInt(50)))

	b2c := res.B2C[0]
	assert.True(t, b2c.B2CTotal.Equal(decimal.NewFromInt(800)))
	assert.True(t, b2c.RefundTotal.Equal(decimal.NewFromInt(15)))
	require.Len(t, b2c.Channels, 3)
	assert.Equal(t, "shopify", b2c.Channels[0].Channel)
	assert.True(t, b2c.Channels[0].Sales.Equal(decimal.NewFromInt(500)))
	assert.True(t, b2c.Channels[0].Refund.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "amazon", b2c.Channels[1].Channel)
	assert.True(t, b2c.Channels[1].Sales.Equal(decimal.NewFromInt(200)))
}

func TestExtractPnLSkipsBadDates(t *testing.T) {
	g := pnlGrid(
		row(pnlWidth, map[int]string{1: "not a date", 2: "10"}),
		row(pnlWidth, map[int]string{1: "2026-03-02", 2: "20"}),
	)
	res, err := ExtractPnL(g, regionconfig.Get(regionconfig.RegionUS), 2026, 3)
	require.NoError(t, err)
	assert.Len(t, res.Totals, 1)
	assert.Equal(t, 1, res.Skips.Count)
}

func TestExtractPnLDefaultRate(t *testing.T) {
	all := [][]string{
		row(pnlWidth, nil),
		row(pnlWidth, nil), // blank rate cell
		row(pnlWidth, nil),
		row(pnlWidth, nil),
		row(pnlWidth, nil),
	}
	g := NewGrid("손익관리_4월", all)
	res, err := ExtractPnL(g, regionconfig.Get(regionconfig.RegionUS), 2026, 4)
	require.NoError(t, err)
	assert.True(t, res.Rate.Rate.Equal(decimal.NewFromInt(1446)))
}

func TestExtractPnLNarrowSheet(t *testing.T) {
	g := NewGrid("손익관리_3월", [][]string{row(10, nil)})
	_, err := ExtractPnL(g, regionconfig.Get(regionconfig.RegionUS), 2026, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestExtractPnLChannelColumnsMissing(t *testing.T) {
	// Wide enough for the Total/B2B/B2C block starts but not for the US
	// channel columns at 26..28.
	g := NewGrid("손익관리_3월", [][]string{row(26, nil)})
	_, err := ExtractPnL(g, regionconfig.Get(regionconfig.RegionUS), 2026, 3)
	require.Error(t, err)
}
