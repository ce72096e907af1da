package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractShopifyRow(t *testing.T) {
	rec := Record{
		"Name":              "#1001",
		"Vendor":            "Dr.Blet",
		"Created at":        "2026-03-01 10:00:00 +0900",
		"Paid at":           "2026-03-02 08:15:00 +0900",
		"Total":             "120.00",
		"Subtotal":          "110.00",
		"Financial Status":  "paid",
		"Lineitem quantity": "2",
		"Lineitem name":     "Patch 10ea",
		"Shipping Province": "CA",
	}
	o, reason := ExtractShopifyRow(rec)
	require.NotNil(t, o, reason)
	assert.Equal(t, "2026-03-02", o.OrderDate.Format("2006-01-02")) // paid wins over created
	assert.Equal(t, "#1001", o.OrderID)
	assert.Equal(t, "Dr.Blet", o.Brand)
	require.NotNil(t, o.FinalAmount)
	assert.True(t, o.FinalAmount.Equal(decimal.RequireFromString("120.00")))
	assert.Equal(t, 2, o.LineitemQuantity)
	assert.Equal(t, "CA", o.ShippingProvince)
}

// Every line-item row is its own record; two rows sharing an order name
// must both survive.
func TestExtractShopifyRowPerLineItem(t *testing.T) {
	base := Record{
		"Name":       "#1002",
		"Vendor":     "Calo",
		"Created at": "2026-03-03 09:00:00",
	}
	first := Record{}
	second := Record{}
	for k, v := range base {
		first[k] = v
		second[k] = v
	}
	first["Lineitem name"] = "Calo Jelly"
	second["Lineitem name"] = "Calo Drink"

	o1, _ := ExtractShopifyRow(first)
	o2, _ := ExtractShopifyRow(second)
	require.NotNil(t, o1)
	require.NotNil(t, o2)
	assert.Equal(t, o1.OrderID, o2.OrderID)
	assert.NotEqual(t, o1.LineitemName, o2.LineitemName)
}

func TestExtractShopifyRowFallbacks(t *testing.T) {
	// No paid time: creation time applies. No total: subtotal applies.
	// Old exports name the province column differently.
	o, reason := ExtractShopifyRow(Record{
		"Name":                   "#1003",
		"Created at":             "2026-03-04",
		"Subtotal":               "55",
		"Shipping Province Name": "Texas",
	})
	require.NotNil(t, o, reason)
	assert.Equal(t, "2026-03-04", o.OrderDate.Format("2006-01-02"))
	require.NotNil(t, o.FinalAmount)
	assert.True(t, o.FinalAmount.Equal(decimal.NewFromInt(55)))
	assert.Nil(t, o.Total)
	assert.Equal(t, "Texas", o.ShippingProvince)
}

func TestExtractShopifyRowSkips(t *testing.T) {
	o, reason := ExtractShopifyRow(Record{"Name": "#1", "Vendor": "x"})
	assert.Nil(t, o)
	assert.Equal(t, "unparseable date", reason)

	o, reason = ExtractShopifyRow(Record{"Created at": "2026-03-01"})
	assert.Nil(t, o)
	assert.Equal(t, "no order name or vendor", reason)
}
