package importer

import (
	"strings"
	"time"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// TiktokRowDate is creation time, else paid time.
func TiktokRowDate(rec Record) *time.Time {
	return coerce.Date(rec.Get("Created Time", "Paid Time"))
}

// detectTiktokBrand attributes a TikTok row to a brand from the seller
// SKU prefix, falling back to product-name substrings. Returns "" when
// nothing matches; an empty brand is valid, the row is still loaded.
func detectTiktokBrand(rec Record) string {
	sku := strings.ToUpper(coerce.String(rec.Get("Seller SKU"), ""))
	product := strings.ToLower(coerce.String(rec.Get("Product Name"), ""))
	switch {
	case strings.HasPrefix(sku, "DR-"), strings.Contains(product, "dr.blet"), strings.Contains(product, "pooeng"):
		return "닥터블릿"
	case strings.HasPrefix(sku, "CALO-"), strings.Contains(product, "calo"):
		return "Calo"
	}
	return ""
}

// ExtractTiktokRow turns one "All order" CSV row into an order record.
func ExtractTiktokRow(rec Record) (*models.Order, string) {
	date := TiktokRowDate(rec)
	if date == nil {
		return nil, "unparseable date"
	}
	orderID := coerce.String(rec.Get("Order ID"), "")
	if orderID == "" {
		return nil, "missing order id"
	}

	skuSubtotal := coerce.Decimal(rec.Get("SKU Subtotal After Discount"), nil)
	orderAmount := coerce.Decimal(rec.Get("Order Amount"), nil)
	final := skuSubtotal
	if final == nil {
		final = orderAmount
	}

	return &models.Order{
		Region:          regionconfig.RegionUS,
		Brand:           detectTiktokBrand(rec),
		FinalAmount:     final,
		OrderDate:       *date,
		CancelDate:      coerce.Date(rec.Get("Cancelled Time")),
		OrderID:         orderID,
		OrderStatus:     coerce.String(rec.Get("Order Status"), ""),
		SellerSKU:       coerce.String(rec.Get("Seller SKU"), ""),
		ProductName:     coerce.String(rec.Get("Product Name"), ""),
		Quantity:        coerce.Int(rec.Get("Quantity"), 0),
		UnitPrice:       coerce.Decimal(rec.Get("SKU Unit Original Price"), nil),
		OrderAmount:     orderAmount,
		RefundAmount:    coerce.Decimal(rec.Get("Order Refund Amount"), nil),
		ShippingState:   coerce.String(rec.Get("State"), ""),
		ShippingCity:    coerce.String(rec.Get("City"), ""),
		ShippingCountry: coerce.String(rec.Get("Country"), ""),
	}, ""
}
