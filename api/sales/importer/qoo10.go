package importer

import (
	"strings"
	"time"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/detect"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// Qoo10 transaction workbooks carry their rows on a sheet named "data"
// with Korean header names.
const qoo10DataSheet = "data"

// ExtractQoo10Row turns one transaction row into an order record. The
// order date comes from the filename (the rows themselves carry none).
func ExtractQoo10Row(rec Record, orderDate time.Time) (*models.Order, string) {
	productID := coerce.String(rec.Get("상품번호"), "")
	if productID == "" {
		return nil, "missing product id"
	}

	brandRaw := coerce.String(rec.Get("브랜드명"), "")
	brand := ""
	if brandRaw != "" {
		// The cell reads like "drblet/ドクターブレット"; only the first
		// segment is the brand token.
		token := strings.TrimSpace(strings.SplitN(brandRaw, "/", 2)[0])
		if mapped, ok := detect.Qoo10BrandAlias(token); ok {
			brand = mapped
		} else {
			brand = token
		}
	}

	return &models.Order{
		Region:       regionconfig.RegionJP,
		Brand:        brand,
		FinalAmount:  coerce.Decimal(rec.Get("취소분반영 거래금액"), nil),
		OrderDate:    orderDate,
		OrderID:      productID,
		OrderStatus:  "Transaction",
		ProductName:  coerce.String(rec.Get("상품명"), ""),
		SellerSKU:    coerce.String(rec.Get("판매자상품코드"), ""),
		Quantity:     coerce.Int(rec.Get("취소분반영 거래상품수량"), 0),
		OrderAmount:  coerce.Decimal(rec.Get("거래금액"), nil),
		RefundAmount: coerce.Decimal(rec.Get("거래취소금액"), nil),
	}, ""
}
