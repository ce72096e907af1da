package importer

import (
	"fmt"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// noneBrandMarker is the literal the workbook maintainers type into the
// brand column for rows they could not attribute.
const noneBrandMarker = "없음"

// ExtractRawSheet walks a workbook-embedded raw order sheet (쇼피파이
// 매출_RAW and friends). Addressing is positional; brand, final amount
// and date share positions across platforms, the remaining fields come
// from the platform's layout.
func ExtractRawSheet(g *Grid, region, platform string) ([]models.Order, SkipLog, error) {
	layout, ok := regionconfig.RawSheetLayouts[platform]
	if !ok {
		return nil, SkipLog{}, fmt.Errorf("sheet %s: no raw layout for platform %q", g.Name, platform)
	}
	var skips SkipLog
	var out []models.Order

	for i := layout.SkipRows; i < g.RowCount(); i++ {
		brand := coerce.String(g.Cell(i, layout.BrandCol), "")
		if brand == "" || brand == noneBrandMarker {
			skips.Add("%s row %d: no brand", g.Name, i+1)
			continue
		}
		date := coerce.Date(g.Cell(i, layout.DateCol))
		if date == nil {
			skips.Add("%s row %d: unparseable date %q", g.Name, i+1, g.Cell(i, layout.DateCol))
			continue
		}

		o := models.Order{
			Region:      region,
			Brand:       brand,
			FinalAmount: coerce.Decimal(g.Cell(i, layout.AmountCol), nil),
			OrderDate:   *date,
		}
		f := layout.Fields
		switch platform {
		case "shopify":
			o.OrderID = coerce.String(g.Cell(i, f["order_name"]), "")
			o.Email = coerce.String(g.Cell(i, f["email"]), "")
			o.FinancialStatus = coerce.String(g.Cell(i, f["financial_status"]), "")
			o.Subtotal = coerce.Decimal(g.Cell(i, f["subtotal"]), nil)
			o.ShippingCost = coerce.Decimal(g.Cell(i, f["shipping_cost"]), nil)
			o.Taxes = coerce.Decimal(g.Cell(i, f["taxes"]), nil)
			o.Total = coerce.Decimal(g.Cell(i, f["total"]), nil)
			o.DiscountCode = coerce.String(g.Cell(i, f["discount_code"]), "")
			o.DiscountAmount = coerce.Decimal(g.Cell(i, f["discount_amount"]), nil)
			o.LineitemQuantity = coerce.Int(g.Cell(i, f["lineitem_quantity"]), 0)
			o.LineitemName = coerce.String(g.Cell(i, f["lineitem_name"]), "")
			o.LineitemPrice = coerce.Decimal(g.Cell(i, f["lineitem_price"]), nil)
			o.LineitemSKU = coerce.String(g.Cell(i, f["lineitem_sku"]), "")
			o.ShippingCity = coerce.String(g.Cell(i, f["shipping_city"]), "")
			o.ShippingZip = coerce.String(g.Cell(i, f["shipping_zip"]), "")
			o.ShippingProvince = coerce.String(g.Cell(i, f["shipping_province"]), "")
			o.ShippingCountry = coerce.String(g.Cell(i, f["shipping_country"]), "")
		case "tiktok":
			o.CancelDate = coerce.Date(g.Cell(i, f["cancel_date"]))
			o.OrderID = coerce.String(g.Cell(i, f["order_id"]), "")
			o.OrderStatus = coerce.String(g.Cell(i, f["order_status"]), "")
			o.SellerSKU = coerce.String(g.Cell(i, f["seller_sku"]), "")
			o.ProductName = coerce.String(g.Cell(i, f["product_name"]), "")
			o.Quantity = coerce.Int(g.Cell(i, f["quantity"]), 0)
			o.UnitPrice = coerce.Decimal(g.Cell(i, f["unit_price"]), nil)
			o.OrderAmount = coerce.Decimal(g.Cell(i, f["order_amount"]), nil)
			o.RefundAmount = coerce.Decimal(g.Cell(i, f["refund_amount"]), nil)
			o.ShippingCountry = coerce.String(g.Cell(i, f["shipping_country"]), "")
			o.ShippingState = coerce.String(g.Cell(i, f["shipping_state"]), "")
			o.ShippingCity = coerce.String(g.Cell(i, f["shipping_city"]), "")
		default: // shopee and qoo10 share one shape
			o.OrderID = coerce.String(g.Cell(i, f["order_id"]), "")
			o.OrderStatus = coerce.String(g.Cell(i, f["order_status"]), "")
			o.ProductName = coerce.String(g.Cell(i, f["product_name"]), "")
			o.SellerSKU = coerce.String(g.Cell(i, f["seller_sku"]), "")
			o.Quantity = coerce.Int(g.Cell(i, f["quantity"]), 0)
			o.UnitPrice = coerce.Decimal(g.Cell(i, f["unit_price"]), nil)
			o.OrderAmount = coerce.Decimal(g.Cell(i, f["order_amount"]), nil)
		}
		out = append(out, o)
	}
	return out, skips, nil
}
