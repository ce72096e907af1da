package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRawSheetShopify(t *testing.T) {
	const width = 47
	g := NewGrid("쇼피파이 매출_RAW", [][]string{
		row(width, nil),
		row(width, nil),
		row(width, nil),
		row(width, map[int]string{
			1:  "닥터블릿",
			2:  "99.99",
			3:  "2026-03-02",
			4:  "#1001",
			5:  "a@b.com",
			6:  "paid",
			15: "99.99",
			20: "2",
			21: "Dr.Blet Patch",
			45: "CA",
			46: "US",
		}),
		row(width, map[int]string{1: "없음", 2: "10", 3: "2026-03-02"}),
		row(width, map[int]string{1: "", 2: "10", 3: "2026-03-02"}),
		row(width, map[int]string{1: "Calo", 2: "5", 3: "bad date"}),
	})

	orders, skips, err := ExtractRawSheet(g, "us", "shopify")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 3, skips.Count)

	o := orders[0]
	assert.Equal(t, "us", o.Region)
	assert.Equal(t, "닥터블릿", o.Brand)
	require.NotNil(t, o.FinalAmount)
	assert.True(t, o.FinalAmount.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, "#1001", o.OrderID)
	assert.Equal(t, "a@b.com", o.Email)
	assert.Equal(t, "paid", o.FinancialStatus)
	assert.Equal(t, 2, o.LineitemQuantity)
	assert.Equal(t, "Dr.Blet Patch", o.LineitemName)
	assert.Equal(t, "CA", o.ShippingProvince)
	assert.Equal(t, "US", o.ShippingCountry)
}

// The amount cell is nullable: absence stays distinct from zero.
func TestExtractRawSheetNilAmount(t *testing.T) {
	const width = 11
	g := NewGrid("큐텐 매출_RAW", [][]string{
		row(width, nil),
		row(width, nil),
		row(width, nil),
		row(width, map[int]string{1: "낫띵베럴", 3: "2026-03-05", 4: "Q-1", 8: "3"}),
	})

	orders, _, err := ExtractRawSheet(g, "jp", "qoo10")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].FinalAmount)
	assert.Equal(t, "Q-1", orders[0].OrderID)
	assert.Equal(t, 3, orders[0].Quantity)
}

func TestExtractRawSheetUnknownPlatform(t *testing.T) {
	g := NewGrid("수기 매출_RAW", [][]string{row(5, nil)})
	_, _, err := ExtractRawSheet(g, "us", "amazon")
	require.Error(t, err)
}
