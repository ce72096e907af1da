package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/detect"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// GridSource is a workbook seen as named positional sheets. Workbook
// implements it; the tests feed literal grids.
type GridSource interface {
	SheetNames() []string
	Grid(name string) (*Grid, error)
}

const (
	shopeePlacedOrderSheet = "Placed Order"
	shopeeDailySummaryID   = "DAILY"
)

// Product Contribution sheet names get truncated by Excel's 31-char
// sheet-name limit, so they are matched by prefix.
var shopeeContributionPrefixes = []string{
	"Product Contribution (place",
	"Product Contribution (paid",
}

var ddmmyyyy = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)

// numericID matches Shopee item ids, which arrive as "123456" or
// "123456.0" depending on the exporting locale.
func numericID(s string) bool {
	cleaned := strings.ReplaceAll(s, ".", "")
	if cleaned == "" {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExtractShopeeStats reads a Shopee shop-stats workbook: a daily summary
// record from the Placed Order sheet plus per-product records from the
// Product Contribution sheets. The report date and brand come from the
// filename; when the filename carries no date, the Placed Order sheet's
// own date text is the fallback.
func ExtractShopeeStats(src GridSource, filename string) ([]models.Order, *time.Time, SkipLog, error) {
	var skips SkipLog
	orderDate := detect.DateFromFilename(filename)
	brand := detect.BrandFromShopeeFilename(filename)

	sheets := src.SheetNames()
	hasSheet := func(name string) bool {
		for _, s := range sheets {
			if s == name {
				return true
			}
		}
		return false
	}

	var out []models.Order

	if hasSheet(shopeePlacedOrderSheet) {
		g, err := src.Grid(shopeePlacedOrderSheet)
		if err != nil {
			return nil, nil, skips, err
		}
		if orderDate == nil {
			if m := ddmmyyyy.FindStringSubmatch(g.Cell(1, 0)); m != nil {
				t, err := time.Parse("02-01-2006", m[0])
				if err == nil {
					orderDate = &t
				}
			}
		}

		dailySales := coerce.DecimalOrZero(g.Cell(1, 1))
		dailyOrders := coerce.Int(g.Cell(1, 3), 0)
		dailyVisitors := coerce.Int(g.Cell(1, 6), 0)
		refundedSales := coerce.DecimalOrZero(g.Cell(1, 11))

		if orderDate != nil && (!dailySales.IsZero() || dailyOrders != 0) {
			sales := dailySales
			refunded := refundedSales
			out = append(out, models.Order{
				Region:       regionconfig.RegionCN,
				Brand:        brand,
				FinalAmount:  &sales,
				OrderDate:    *orderDate,
				OrderID:      fmt.Sprintf("%s-%s", shopeeDailySummaryID, orderDate.Format("2006-01-02")),
				OrderStatus:  "Daily Summary",
				ProductName:  fmt.Sprintf("일별 집계 (주문 %d건, 방문자 %d명)", dailyOrders, dailyVisitors),
				Quantity:     dailyOrders,
				OrderAmount:  &sales,
				RefundAmount: &refunded,
				BuyerCountry: "SG",
			})
		}
	}

	for _, prefix := range shopeeContributionPrefixes {
		var target string
		for _, name := range sheets {
			if strings.HasPrefix(name, prefix) {
				target = name
				break
			}
		}
		if target == "" {
			continue
		}
		g, err := src.Grid(target)
		if err != nil {
			return nil, nil, skips, err
		}
		orderType := "Paid"
		if strings.Contains(strings.ToLower(target), "place") {
			orderType = "Placed"
		}

		for i := 4; i < g.RowCount(); i++ {
			itemID := coerce.String(g.Cell(i, 0), "")
			product := coerce.String(g.Cell(i, 1), "")
			if !numericID(itemID) {
				skips.Add("%s row %d: non-numeric item id %q", target, i+1, itemID)
				continue
			}
			if orderDate == nil || product == "" {
				skips.Add("%s row %d: missing date or product", target, i+1)
				continue
			}
			sales := coerce.DecimalOrZero(g.Cell(i, 4))
			units := coerce.Int(g.Cell(i, 8), 0)
			amount := sales
			out = append(out, models.Order{
				Region:       regionconfig.RegionCN,
				Brand:        brand,
				FinalAmount:  &amount,
				OrderDate:    *orderDate,
				OrderID:      itemID,
				OrderStatus:  orderType,
				ProductName:  product,
				Quantity:     units,
				OrderAmount:  &amount,
				BuyerCountry: "SG",
			})
		}
	}

	return out, orderDate, skips, nil
}
