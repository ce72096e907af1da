package regionconfig

import "fmt"

// ColumnMap binds logical field names to 0-based column indices of a
// positional (headerless) sheet. The workbook layout is a hand-maintained
// grid, so every map is validated against the sheet's actual width before
// any row is read; a short sheet fails the file instead of silently
// truncating.
type ColumnMap map[string]int

// Max returns the highest column index the map addresses.
func (m ColumnMap) Max() int {
	max := 0
	for _, idx := range m {
		if idx > max {
			max = idx
		}
	}
	return max
}

// Validate checks the map fits a sheet of the given width.
func (m ColumnMap) Validate(sheetName string, width int) error {
	if max := m.Max(); max >= width {
		return fmt.Errorf("sheet %s: expected at least %d columns, got %d", sheetName, max+1, width)
	}
	return nil
}

// PnLLayout is the fixed grid of a 손익관리 sheet. Three record sets come
// from disjoint column ranges of the same row.
type PnLLayout struct {
	SkipRows int // header/metadata rows before data
	DateCol  int
	RateRow  int // exchange rate cell
	RateCol  int

	Total ColumnMap
	B2B   ColumnMap
	B2C   ColumnMap // region-independent part; channels come from Config.Channels
}

// PnL is the workbook layout shared by every region; only the B2C channel
// columns differ, and those live on Config.Channels.
var PnL = PnLLayout{
	SkipRows: 5,
	DateCol:  1,
	RateRow:  1,
	RateCol:  2,
	Total: ColumnMap{
		"gmv":              2,
		"gsv":              3,
		"cogs":             4,
		"total_expense":    5,
		"performance_ad":   6,
		"influencer_ad":    7,
		"sales_commission": 8,
		"shipping":         9,
		"tax":              10,
		"operating_profit": 11,
		"operating_margin": 12,
	},
	B2B: ColumnMap{
		"sales_total":      15,
		"sales_us":         16,
		"cogs":             17,
		"total_expense":    18,
		"shipping":         19,
		"tax":              20,
		"operating_profit": 21,
	},
	B2C: ColumnMap{
		"b2c_total":        25,
		"refund_total":     32,
		"gsv":              33,
		"cogs":             34,
		"total_expense":    35,
		"performance_ad":   36,
		"influencer_ad":    37,
		"sales_commission": 38,
		"shipping":         39,
		"tax":              40,
		"operating_profit": 41,
		"operating_margin": 42,
	},
}

// BrandSalesLayout is the fixed grid of a brand-sales sheet.
type BrandSalesLayout struct {
	SkipRows int
	DateCol  int
	BrandCol int
	Common   ColumnMap // channel columns come from Config.Channels
}

var BrandSales = BrandSalesLayout{
	SkipRows: 3,
	DateCol:  1,
	BrandCol: 2,
	Common: ColumnMap{
		"b2c_total":    6,
		"refund_total": 10,
		"gsv":          11,
		"b2b_us":       15,
		"b2b_total":    16,
		"total_gsv":    17,
	},
}

// RawSheetLayout maps the columns of a workbook-embedded raw order sheet.
// Brand, amount and date occupy the same positions on every platform's
// sheet; the remaining columns differ per platform.
type RawSheetLayout struct {
	SkipRows  int
	BrandCol  int
	AmountCol int
	DateCol   int
	Fields    ColumnMap
}

var RawSheetLayouts = map[string]RawSheetLayout{
	"shopify": {
		SkipRows: 3, BrandCol: 1, AmountCol: 2, DateCol: 3,
		Fields: ColumnMap{
			"order_name":        4,
			"email":             5,
			"financial_status":  6,
			"subtotal":          12,
			"shipping_cost":     13,
			"taxes":             14,
			"total":             15,
			"discount_code":     16,
			"discount_amount":   17,
			"lineitem_quantity": 20,
			"lineitem_name":     21,
			"lineitem_price":    22,
			"lineitem_sku":      23,
			"shipping_city":     43,
			"shipping_zip":      44,
			"shipping_province": 45,
			"shipping_country":  46,
		},
	},
	"tiktok": {
		SkipRows: 3, BrandCol: 1, AmountCol: 2, DateCol: 3,
		Fields: ColumnMap{
			"cancel_date":      4,
			"order_id":         5,
			"order_status":     6,
			"seller_sku":       11,
			"product_name":     12,
			"quantity":         14,
			"unit_price":       16,
			"order_amount":     28,
			"refund_amount":    29,
			"shipping_country": 50,
			"shipping_state":   51,
			"shipping_city":    52,
		},
	},
	"shopee": {
		SkipRows: 3, BrandCol: 1, AmountCol: 2, DateCol: 3,
		Fields: ColumnMap{
			"order_id":     4,
			"order_status": 5,
			"product_name": 6,
			"seller_sku":   7,
			"quantity":     8,
			"unit_price":   9,
			"order_amount": 10,
		},
	},
	"qoo10": {
		SkipRows: 3, BrandCol: 1, AmountCol: 2, DateCol: 3,
		Fields: ColumnMap{
			"order_id":     4,
			"order_status": 5,
			"product_name": 6,
			"seller_sku":   7,
			"quantity":     8,
			"unit_price":   9,
			"order_amount": 10,
		},
	},
}

// TaxLayout describes the tax-by-state sheet: a header row of month dates
// starting at a fixed column, then one row per state.
type TaxLayout struct {
	HeaderRow     int // row carrying the month dates
	FirstDataRow  int
	StateCol      int
	FirstMonthCol int
}

var Tax = TaxLayout{
	HeaderRow:     2,
	FirstDataRow:  3,
	StateCol:      1,
	FirstMonthCol: 2,
}
