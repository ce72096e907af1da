// Package models holds the normalized records produced by the importers
// and persisted by the loader. Monetary facts default to zero; fields
// where the source may legitimately be absent are pointers so "not
// reported" stays distinct from zero.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExchangeRate struct {
	Region string          `db:"region"`
	Year   int             `db:"year"`
	Month  int             `db:"month"`
	Rate   decimal.Decimal `db:"rate"`
}

type Brand struct {
	Region string `db:"region"`
	Code   string `db:"code"`
	Name   string `db:"name"`
	NameKR string `db:"name_kr"`
}

// DailySalesTotal is one row per (region, date) of overall P&L facts.
type DailySalesTotal struct {
	Region string    `db:"region"`
	Date   time.Time `db:"date"`
	Year   int       `db:"year"`
	Month  int       `db:"month"`

	GMV             decimal.Decimal `db:"gmv"`
	GSV             decimal.Decimal `db:"gsv"`
	COGS            decimal.Decimal `db:"cogs"`
	TotalExpense    decimal.Decimal `db:"total_expense"`
	PerformanceAd   decimal.Decimal `db:"performance_ad"`
	InfluencerAd    decimal.Decimal `db:"influencer_ad"`
	SalesCommission decimal.Decimal `db:"sales_commission"`
	Shipping        decimal.Decimal `db:"shipping"`
	Tax             decimal.Decimal `db:"tax"`
	OperatingProfit decimal.Decimal `db:"operating_profit"`

	// OperatingMargin is nil when the sheet does not report it; it is
	// never derived and never defaulted to zero.
	OperatingMargin *decimal.Decimal `db:"operating_margin"`
}

type DailySalesB2B struct {
	Region string    `db:"region"`
	Date   time.Time `db:"date"`
	Year   int       `db:"year"`
	Month  int       `db:"month"`

	SalesTotal      decimal.Decimal `db:"sales_total"`
	SalesUS         decimal.Decimal `db:"sales_us"`
	COGS            decimal.Decimal `db:"cogs"`
	TotalExpense    decimal.Decimal `db:"total_expense"`
	Shipping        decimal.Decimal `db:"shipping"`
	Tax             decimal.Decimal `db:"tax"`
	OperatingProfit decimal.Decimal `db:"operating_profit"`
}

// ChannelAmount is one B2C channel's sales/refund pair. Which channels a
// record carries is decided by the region configuration, never hardcoded
// by an extractor.
type ChannelAmount struct {
	Channel string
	Sales   decimal.Decimal
	Refund  decimal.Decimal
}

type DailySalesB2C struct {
	Region string    `db:"region"`
	Date   time.Time `db:"date"`
	Year   int       `db:"year"`
	Month  int       `db:"month"`

	B2CTotal decimal.Decimal `db:"b2c_total"`
	Channels []ChannelAmount

	RefundTotal     decimal.Decimal  `db:"refund_total"`
	GSV             decimal.Decimal  `db:"gsv"`
	COGS            decimal.Decimal  `db:"cogs"`
	TotalExpense    decimal.Decimal  `db:"total_expense"`
	PerformanceAd   decimal.Decimal  `db:"performance_ad"`
	InfluencerAd    decimal.Decimal  `db:"influencer_ad"`
	SalesCommission decimal.Decimal  `db:"sales_commission"`
	Shipping        decimal.Decimal  `db:"shipping"`
	Tax             decimal.Decimal  `db:"tax"`
	OperatingProfit decimal.Decimal  `db:"operating_profit"`
	OperatingMargin *decimal.Decimal `db:"operating_margin"`
}

// BrandChannelAmount extends ChannelAmount with the per-channel ad spend
// tracked on brand-sales sheets.
type BrandChannelAmount struct {
	Channel string
	Sales   decimal.Decimal
	Refund  decimal.Decimal
	Ad      decimal.Decimal
}

// BrandDailySales is one row per (region, date, brand).
type BrandDailySales struct {
	Region    string    `db:"region"`
	Date      time.Time `db:"date"`
	Year      int       `db:"year"`
	Month     int       `db:"month"`
	BrandCode string    `db:"brand_code"`

	B2CTotal    decimal.Decimal `db:"b2c_total"`
	Channels    []BrandChannelAmount
	RefundTotal decimal.Decimal `db:"refund_total"`
	GSV         decimal.Decimal `db:"gsv"`
	B2BUS       decimal.Decimal `db:"b2b_us"`
	B2BTotal    decimal.Decimal `db:"b2b_total"`
	TotalGSV    decimal.Decimal `db:"total_gsv"`
}

// Order is a raw order/line-item/transaction row from a platform export.
// There is no natural key: the same order id may appear once per line
// item, and summary exports fabricate ids. Loading is range-replace, not
// upsert. Brand is free text and may be empty when undetermined.
type Order struct {
	Region string `db:"region"`
	Brand  string `db:"brand"`

	// FinalAmount is the per-platform fallback chain result (primary
	// total, else subtotal-like field). Nil when neither was reported.
	FinalAmount *decimal.Decimal `db:"final_amount"`

	OrderDate  time.Time  `db:"order_date"`
	CancelDate *time.Time `db:"cancel_date"`

	OrderID         string `db:"order_id"`
	OrderStatus     string `db:"order_status"`
	Email           string `db:"email"`
	FinancialStatus string `db:"financial_status"`

	SellerSKU   string `db:"seller_sku"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`

	UnitPrice      *decimal.Decimal `db:"unit_price"`
	Subtotal       *decimal.Decimal `db:"subtotal"`
	ShippingCost   *decimal.Decimal `db:"shipping_cost"`
	Taxes          *decimal.Decimal `db:"taxes"`
	Total          *decimal.Decimal `db:"total"`
	DiscountCode   string           `db:"discount_code"`
	DiscountAmount *decimal.Decimal `db:"discount_amount"`
	OrderAmount    *decimal.Decimal `db:"order_amount"`
	RefundAmount   *decimal.Decimal `db:"refund_amount"`

	LineitemQuantity int              `db:"lineitem_quantity"`
	LineitemName     string           `db:"lineitem_name"`
	LineitemPrice    *decimal.Decimal `db:"lineitem_price"`
	LineitemSKU      string           `db:"lineitem_sku"`

	ShippingCity     string `db:"shipping_city"`
	ShippingProvince string `db:"shipping_province"`
	ShippingState    string `db:"shipping_state"`
	ShippingCountry  string `db:"shipping_country"`
	ShippingZip      string `db:"shipping_zip"`
	BuyerCountry     string `db:"buyer_country"`
}

type TaxByState struct {
	Region    string          `db:"region"`
	StateCode string          `db:"state_code"`
	Year      int             `db:"year"`
	Month     int             `db:"month"`
	Amount    decimal.Decimal `db:"amount"`
}
