package importer

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorkbook feeds literal grids through the GridSource interface.
type fakeWorkbook struct {
	order  []string
	sheets map[string]*Grid
}

func (f *fakeWorkbook) SheetNames() []string { return f.order }

func (f *fakeWorkbook) Grid(name string) (*Grid, error) {
	g, ok := f.sheets[name]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", name)
	}
	return g, nil
}

func shopeeStatsWorkbook() *fakeWorkbook {
	placed := NewGrid("Placed Order", [][]string{
		{"Date", "Sales", "x", "Orders", "x", "x", "Visitors", "x", "x", "x", "x", "Refunds"},
		{"14-03-2026", "1500.50", "", "30", "", "", "420", "", "", "", "", "25"},
	})
	contrib := NewGrid("Product Contribution (placed)", [][]string{
		{"header"},
		{},
		{},
		{"Item ID", "Product", "", "", "Sales", "", "", "", "Units"},
		{"123456", "Dr.Blet Patch 10ea", "", "", "800", "", "", "", "16"},
		{"789012.0", "Dr.Blet Patch 30ea", "", "", "700", "", "", "", "7"},
		{"Total", "", "", "", "1500", "", "", "", "23"},
	})
	return &fakeWorkbook{
		order: []string{"Placed Order", "Product Contribution (placed)"},
		sheets: map[string]*Grid{
			"Placed Order":                  placed,
			"Product Contribution (placed)": contrib,
		},
	}
}

func TestExtractShopeeStats(t *testing.T) {
	orders, date, skips, err := ExtractShopeeStats(shopeeStatsWorkbook(),
		"shop-stats_drblet.sg.shopee_20260314.xlsx")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2026-03-14", date.Format("2006-01-02"))

	// One daily summary plus two product rows; the "Total" row is not a
	// numeric item id and lands in the skip log.
	require.Len(t, orders, 3)
	assert.Equal(t, 1, skips.Count)

	daily := orders[0]
	assert.Equal(t, "DAILY-2026-03-14", daily.OrderID)
	assert.Equal(t, "Daily Summary", daily.OrderStatus)
	assert.Equal(t, "닥터블릿", daily.Brand)
	assert.Equal(t, 30, daily.Quantity)
	require.NotNil(t, daily.FinalAmount)
	assert.True(t, daily.FinalAmount.Equal(decimal.RequireFromString("1500.50")))
	require.NotNil(t, daily.RefundAmount)
	assert.True(t, daily.RefundAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "SG", daily.BuyerCountry)

	product := orders[1]
	assert.Equal(t, "123456", product.OrderID)
	assert.Equal(t, "Placed", product.OrderStatus)
	assert.Equal(t, "Dr.Blet Patch 10ea", product.ProductName)
	assert.Equal(t, 16, product.Quantity)

	// Locale-formatted ids like "789012.0" still count as numeric.
	assert.Equal(t, "789012.0", orders[2].OrderID)
}

// Without a filename date the Placed Order sheet's own date text is the
// fallback.
func TestExtractShopeeStatsDateFromSheet(t *testing.T) {
	orders, date, _, err := ExtractShopeeStats(shopeeStatsWorkbook(),
		"shop-stats_drblet.sg.shopee.xlsx")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2026-03-14", date.Format("2006-01-02"))
	require.NotEmpty(t, orders)
}

func TestExtractShopeeStatsEmptyWorkbook(t *testing.T) {
	wb := &fakeWorkbook{order: []string{"Other"}, sheets: map[string]*Grid{
		"Other": NewGrid("Other", nil),
	}}
	orders, date, _, err := ExtractShopeeStats(wb, "shop-stats_drblet.sg.shopee_20260314.xlsx")
	require.NoError(t, err)
	assert.Empty(t, orders)
	require.NotNil(t, date) // filename date still parsed
}

func TestNumericID(t *testing.T) {
	assert.True(t, numericID("123456"))
	assert.True(t, numericID("123456.0"))
	assert.False(t, numericID("Total"))
	assert.False(t, numericID(""))
	assert.False(t, numericID("12a3"))
}
