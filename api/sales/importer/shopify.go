package importer

import (
	"time"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// Shopify orders_export CSVs repeat the order-level columns on every
// line-item row; each CSV line becomes one order record, deliberately
// without line-item collapsing.

// ShopifyRowDate is the date used both for the range scan and the
// record: paid time when present, else creation time.
func ShopifyRowDate(rec Record) *time.Time {
	return coerce.Date(rec.Get("Paid at", "Created at"))
}

// ExtractShopifyRow turns one CSV row into an order record. A non-empty
// second return is the skip reason.
func ExtractShopifyRow(rec Record) (*models.Order, string) {
	date := ShopifyRowDate(rec)
	if date == nil {
		return nil, "unparseable date"
	}

	brand := coerce.String(rec.Get("Vendor"), "")
	name := coerce.String(rec.Get("Name"), "")
	if name == "" && brand == "" {
		return nil, "no order name or vendor"
	}

	total := coerce.Decimal(rec.Get("Total"), nil)
	subtotal := coerce.Decimal(rec.Get("Subtotal"), nil)
	final := total
	if final == nil {
		final = subtotal
	}

	return &models.Order{
		Region:           regionconfig.RegionUS,
		Brand:            brand,
		FinalAmount:      final,
		OrderDate:        *date,
		OrderID:          name,
		Email:            coerce.String(rec.Get("Email"), ""),
		FinancialStatus:  coerce.String(rec.Get("Financial Status"), ""),
		Subtotal:         subtotal,
		ShippingCost:     coerce.Decimal(rec.Get("Shipping"), nil),
		Taxes:            coerce.Decimal(rec.Get("Taxes"), nil),
		Total:            total,
		DiscountCode:     coerce.String(rec.Get("Discount Code"), ""),
		DiscountAmount:   coerce.Decimal(rec.Get("Discount Amount"), nil),
		LineitemQuantity: coerce.Int(rec.Get("Lineitem quantity"), 0),
		LineitemName:     coerce.String(rec.Get("Lineitem name"), ""),
		LineitemPrice:    coerce.Decimal(rec.Get("Lineitem price"), nil),
		LineitemSKU:      coerce.String(rec.Get("Lineitem sku"), ""),
		ShippingCity:     coerce.String(rec.Get("Shipping City"), ""),
		ShippingProvince: coerce.String(rec.Get("Shipping Province", "Shipping Province Name"), ""),
		ShippingCountry:  coerce.String(rec.Get("Shipping Country"), ""),
		ShippingZip:      coerce.String(rec.Get("Shipping Zip"), ""),
	}, ""
}
