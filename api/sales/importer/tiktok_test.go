package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTiktokRow(t *testing.T) {
	o, reason := ExtractTiktokRow(Record{
		"Order ID":                    "576000001",
		"Created Time":                "03/01/2026 10:30:00",
		"Order Status":                "Completed",
		"Seller SKU":                  "DR-PATCH-10",
		"Product Name":                "Dr.Blet Trouble Patch",
		"Quantity":                    "1",
		"SKU Subtotal After Discount": "19.99",
		"Order Amount":                "24.99",
	})
	require.NotNil(t, o, reason)
	assert.Equal(t, "576000001", o.OrderID)
	assert.Equal(t, "2026-03-01", o.OrderDate.Format("2006-01-02"))
	assert.Equal(t, "닥터블릿", o.Brand)
	require.NotNil(t, o.FinalAmount)
	assert.True(t, o.FinalAmount.Equal(decimal.RequireFromString("19.99")))
	require.NotNil(t, o.OrderAmount)
	assert.True(t, o.OrderAmount.Equal(decimal.RequireFromString("24.99")))
}

func TestTiktokBrandDetection(t *testing.T) {
	cases := []struct {
		sku, product, want string
	}{
		{"DR-PATCH-10", "", "닥터블릿"},
		{"dr-patch-10", "", "닥터블릿"}, // SKU match is case-insensitive
		{"", "Dr.Blet Pimple Patch", "닥터블릿"},
		{"", "Pooeng Cleanser", "닥터블릿"},
		{"CALO-JELLY", "", "Calo"},
		{"", "CALO Apple Jelly", "Calo"},
		{"X-123", "Mystery Item", ""},
	}
	for _, tc := range cases {
		got := detectTiktokBrand(Record{"Seller SKU": tc.sku, "Product Name": tc.product})
		assert.Equal(t, tc.want, got, "sku=%q product=%q", tc.sku, tc.product)
	}
}

func TestExtractTiktokRowFallbackDate(t *testing.T) {
	o, reason := ExtractTiktokRow(Record{
		"Order ID":  "576000002",
		"Paid Time": "03/02/2026 11:00:00",
	})
	require.NotNil(t, o, reason)
	assert.Equal(t, "2026-03-02", o.OrderDate.Format("2006-01-02"))
	assert.Nil(t, o.FinalAmount)
	assert.Equal(t, "", o.Brand) // unattributed rows still load
}

func TestExtractTiktokRowSkips(t *testing.T) {
	o, reason := ExtractTiktokRow(Record{"Order ID": "1"})
	assert.Nil(t, o)
	assert.Equal(t, "unparseable date", reason)

	o, reason = ExtractTiktokRow(Record{"Created Time": "03/01/2026 10:30:00"})
	assert.Nil(t, o)
	assert.Equal(t, "missing order id", reason)
}
