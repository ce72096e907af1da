// Package query is the read side of the sales schema. It never writes;
// all mutation goes through the importer.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/config"

	"github.com/shopspring/decimal"
)

type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// dec parses a numeric column scanned as text. NULL and empty scan to
// zero; the caller decides whether that distinction matters and uses
// decPtr when it does.
func dec(s sql.NullString) decimal.Decimal {
	if !s.Valid || s.String == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decPtr(s sql.NullString) *decimal.Decimal {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil
	}
	return &d
}

type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// AvailableMonths lists the (year, month) pairs the region has P&L data
// for, newest first.
func (s *Service) AvailableMonths(ctx context.Context, region string) ([]Month, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT year, month
		FROM daily_sales_total
		WHERE region = $1
		ORDER BY year DESC, month DESC`, region)
	if err != nil {
		return nil, fmt.Errorf("available months: %w", err)
	}
	defer rows.Close()

	var months []Month
	for rows.Next() {
		var m Month
		if err := rows.Scan(&m.Year, &m.Month); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

type ChannelSummary struct {
	Channel string          `json:"channel"`
	Display string          `json:"display"`
	Sales   decimal.Decimal `json:"sales"`
	Refund  decimal.Decimal `json:"refund"`
}

type BrandSummary struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	B2CTotal    decimal.Decimal `json:"b2c_total"`
	RefundTotal decimal.Decimal `json:"refund_total"`
	GSV         decimal.Decimal `json:"gsv"`
	TotalGSV    decimal.Decimal `json:"total_gsv"`
}

type DashboardSummary struct {
	Region   string `json:"region"`
	Currency string `json:"currency"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`

	ExchangeRate decimal.Decimal `json:"exchange_rate"`

	GMV             decimal.Decimal `json:"gmv"`
	GSV             decimal.Decimal `json:"gsv"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`

	B2CTotal    decimal.Decimal `json:"b2c_total"`
	B2BTotal    decimal.Decimal `json:"b2b_total"`
	RefundTotal decimal.Decimal `json:"refund_total"`

	Channels []ChannelSummary `json:"channels"`
	Brands   []BrandSummary   `json:"brands"`
}

// DashboardSummary aggregates one region month: headline totals, the
// per-channel breakdown and the per-brand rollup.
func (s *Service) DashboardSummary(ctx context.Context, region string, year, month int) (*DashboardSummary, error) {
	cfg := regionconfig.Get(region)
	out := &DashboardSummary{
		Region:       cfg.Code,
		Currency:     cfg.Currency,
		Year:         year,
		Month:        month,
		ExchangeRate: decimal.Zero,
	}

	var rate sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT rate FROM exchange_rates
		WHERE region = $1 AND year = $2 AND month = $3`,
		cfg.Code, year, month).Scan(&rate)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard rate: %w", err)
	}
	out.ExchangeRate = dec(rate)

	var gmv, gsv, op sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(gmv), 0), COALESCE(SUM(gsv), 0), COALESCE(SUM(operating_profit), 0)
		FROM daily_sales_total
		WHERE region = $1 AND year = $2 AND month = $3`,
		cfg.Code, year, month).Scan(&gmv, &gsv, &op)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	out.GMV, out.GSV, out.OperatingProfit = dec(gmv), dec(gsv), dec(op)

	var b2b sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(sales_total), 0)
		FROM daily_sales_b2b
		WHERE region = $1 AND year = $2 AND month = $3`,
		cfg.Code, year, month).Scan(&b2b)
	if err != nil {
		return nil, fmt.Errorf("dashboard b2b: %w", err)
	}
	out.B2BTotal = dec(b2b)

	var b2c, refund sql.NullString
	channelSales := map[string]sql.NullString{}
	channelRefunds := map[string]sql.NullString{}
	var shopifyS, amazonS, tiktokS, shopeeS, qoo10S sql.NullString
	var shopifyR, amazonR, tiktokR, shopeeR, qoo10R sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(b2c_total), 0), COALESCE(SUM(refund_total), 0),
			COALESCE(SUM(shopify), 0), COALESCE(SUM(amazon), 0), COALESCE(SUM(tiktok), 0),
			COALESCE(SUM(shopee), 0), COALESCE(SUM(qoo10), 0),
			COALESCE(SUM(refund_shopify), 0), COALESCE(SUM(refund_amazon), 0),
			COALESCE(SUM(refund_tiktok), 0), COALESCE(SUM(refund_shopee), 0),
			COALESCE(SUM(refund_qoo10), 0)
		FROM daily_sales_b2c
		WHERE region = $1 AND year = $2 AND month = $3`,
		cfg.Code, year, month).Scan(&b2c, &refund,
		&shopifyS, &amazonS, &tiktokS, &shopeeS, &qoo10S,
		&shopifyR, &amazonR, &tiktokR, &shopeeR, &qoo10R)
	if err != nil {
		return nil, fmt.Errorf("dashboard b2c: %w", err)
	}
	out.B2CTotal, out.RefundTotal = dec(b2c), dec(refund)
	channelSales["shopify"], channelSales["amazon"], channelSales["tiktok"] = shopifyS, amazonS, tiktokS
	channelSales["shopee"], channelSales["qoo10"] = shopeeS, qoo10S
	channelRefunds["shopify"], channelRefunds["amazon"], channelRefunds["tiktok"] = shopifyR, amazonR, tiktokR
	channelRefunds["shopee"], channelRefunds["qoo10"] = shopeeR, qoo10R

	// Only the region's configured channels show up; the other columns
	// are structurally zero anyway.
	for _, ch := range cfg.Channels {
		out.Channels = append(out.Channels, ChannelSummary{
			Channel: ch.Code,
			Display: ch.Display,
			Sales:   dec(channelSales[ch.Code]),
			Refund:  dec(channelRefunds[ch.Code]),
		})
	}

	brandRows, err := s.db.QueryContext(ctx, `
		SELECT bds.brand_code, COALESCE(b.name, bds.brand_code),
			COALESCE(SUM(bds.b2c_total), 0), COALESCE(SUM(bds.refund_total), 0),
			COALESCE(SUM(bds.gsv), 0), COALESCE(SUM(bds.total_gsv), 0)
		FROM brand_daily_sales bds
		LEFT JOIN brands b ON b.region = bds.region AND b.code = bds.brand_code
		WHERE bds.region = $1 AND bds.year = $2 AND bds.month = $3
		GROUP BY bds.brand_code, b.name
		ORDER BY 6 DESC`,
		cfg.Code, year, month)
	if err != nil {
		return nil, fmt.Errorf("dashboard brands: %w", err)
	}
	defer brandRows.Close()
	for brandRows.Next() {
		var br BrandSummary
		var b2cTotal, refundTotal, gsvS, totalGSV sql.NullString
		if err := brandRows.Scan(&br.Code, &br.Name, &b2cTotal, &refundTotal, &gsvS, &totalGSV); err != nil {
			return nil, err
		}
		br.B2CTotal, br.RefundTotal = dec(b2cTotal), dec(refundTotal)
		br.GSV, br.TotalGSV = dec(gsvS), dec(totalGSV)
		out.Brands = append(out.Brands, br)
	}
	return out, brandRows.Err()
}

type PnLDay struct {
	Date time.Time `json:"date"`

	GMV             decimal.Decimal  `json:"gmv"`
	GSV             decimal.Decimal  `json:"gsv"`
	COGS            decimal.Decimal  `json:"cogs"`
	TotalExpense    decimal.Decimal  `json:"total_expense"`
	OperatingProfit decimal.Decimal  `json:"operating_profit"`
	OperatingMargin *decimal.Decimal `json:"operating_margin,omitempty"`

	B2CTotal decimal.Decimal `json:"b2c_total"`
	B2BTotal decimal.Decimal `json:"b2b_total"`
}

// MonthlyPnL returns the region month's daily P&L series, total joined
// with the B2C and B2B splits.
func (s *Service) MonthlyPnL(ctx context.Context, region string, year, month int) ([]PnLDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.date, t.gmv, t.gsv, t.cogs, t.total_expense,
			t.operating_profit, t.operating_margin,
			COALESCE(c.b2c_total, 0), COALESCE(b.sales_total, 0)
		FROM daily_sales_total t
		LEFT JOIN daily_sales_b2c c ON c.region = t.region AND c.date = t.date
		LEFT JOIN daily_sales_b2b b ON b.region = t.region AND b.date = t.date
		WHERE t.region = $1 AND t.year = $2 AND t.month = $3
		ORDER BY t.date`,
		region, year, month)
	if err != nil {
		return nil, fmt.Errorf("monthly pnl: %w", err)
	}
	defer rows.Close()

	var days []PnLDay
	for rows.Next() {
		var d PnLDay
		var gmv, gsv, cogs, expense, op, margin, b2c, b2b sql.NullString
		if err := rows.Scan(&d.Date, &gmv, &gsv, &cogs, &expense, &op, &margin, &b2c, &b2b); err != nil {
			return nil, err
		}
		d.GMV, d.GSV, d.COGS = dec(gmv), dec(gsv), dec(cogs)
		d.TotalExpense, d.OperatingProfit = dec(expense), dec(op)
		d.OperatingMargin = decPtr(margin)
		d.B2CTotal, d.B2BTotal = dec(b2c), dec(b2b)
		days = append(days, d)
	}
	return days, rows.Err()
}

type BrandDay struct {
	Date        time.Time       `json:"date"`
	B2CTotal    decimal.Decimal `json:"b2c_total"`
	RefundTotal decimal.Decimal `json:"refund_total"`
	GSV         decimal.Decimal `json:"gsv"`
	B2BTotal    decimal.Decimal `json:"b2b_total"`
	TotalGSV    decimal.Decimal `json:"total_gsv"`
}

type BrandDetail struct {
	Code   string     `json:"code"`
	Name   string     `json:"name"`
	NameKR string     `json:"name_kr"`
	Days   []BrandDay `json:"days"`
}

// BrandDetail returns one brand's daily series for a region month.
func (s *Service) BrandDetail(ctx context.Context, region, code string, year, month int) (*BrandDetail, error) {
	out := &BrandDetail{Code: code, Name: code}
	err := s.db.QueryRowContext(ctx, `
		SELECT name, name_kr FROM brands WHERE region = $1 AND code = $2`,
		region, code).Scan(&out.Name, &out.NameKR)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("brand lookup: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, b2c_total, refund_total, gsv, b2b_total, total_gsv
		FROM brand_daily_sales
		WHERE region = $1 AND brand_code = $2 AND year = $3 AND month = $4
		ORDER BY date`,
		region, code, year, month)
	if err != nil {
		return nil, fmt.Errorf("brand days: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d BrandDay
		var b2c, refund, gsvS, b2b, total sql.NullString
		if err := rows.Scan(&d.Date, &b2c, &refund, &gsvS, &b2b, &total); err != nil {
			return nil, err
		}
		d.B2CTotal, d.RefundTotal, d.GSV = dec(b2c), dec(refund), dec(gsvS)
		d.B2BTotal, d.TotalGSV = dec(b2b), dec(total)
		out.Days = append(out.Days, d)
	}
	return out, rows.Err()
}

type OrderRow struct {
	OrderDate   time.Time        `json:"order_date"`
	OrderID     string           `json:"order_id"`
	Brand       string           `json:"brand"`
	ProductName string           `json:"product_name,omitempty"`
	Status      string           `json:"status,omitempty"`
	Quantity    int              `json:"quantity"`
	FinalAmount *decimal.Decimal `json:"final_amount"`
}

var orderListings = map[string]string{
	"shopify": `SELECT order_date, order_name, brand, lineitem_name, financial_status,
			lineitem_quantity, final_amount
		FROM shopify_orders`,
	"tiktok": `SELECT order_date, order_id, brand, product_name, order_status,
			quantity, final_amount
		FROM tiktok_orders`,
	"shopee": `SELECT order_date, order_id, brand, product_name, order_status,
			quantity, final_amount
		FROM shopee_orders`,
	"qoo10": `SELECT order_date, order_id, brand, product_name, order_status,
			quantity, final_amount
		FROM qoo10_orders`,
}

// Orders lists raw platform rows for a region, newest first, optionally
// narrowed to a brand and date window. The result is capped; raw order
// browsing is a spot-check surface, not an export.
func (s *Service) Orders(ctx context.Context, region, platform, brand string, from, to *time.Time) ([]OrderRow, error) {
	base, ok := orderListings[platform]
	if !ok {
		return nil, fmt.Errorf("unknown order platform %q", platform)
	}
	q := base + ` WHERE region = $1`
	args := []interface{}{region}
	if brand != "" {
		args = append(args, brand)
		q += fmt.Sprintf(" AND brand = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		q += fmt.Sprintf(" AND order_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		q += fmt.Sprintf(" AND order_date <= $%d", len(args))
	}
	args = append(args, config.OrderListingCap)
	q += fmt.Sprintf(" ORDER BY order_date DESC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("order listing: %w", err)
	}
	defer rows.Close()

	var out []OrderRow
	for rows.Next() {
		var r OrderRow
		var amount sql.NullString
		if err := rows.Scan(&r.OrderDate, &r.OrderID, &r.Brand, &r.ProductName,
			&r.Status, &r.Quantity, &amount); err != nil {
			return nil, err
		}
		r.FinalAmount = decPtr(amount)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Brands lists the region's brand roster.
func (s *Service) Brands(ctx context.Context, region string) ([]regionconfig.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, name_kr FROM brands WHERE region = $1 ORDER BY code`,
		region)
	if err != nil {
		return nil, fmt.Errorf("brand listing: %w", err)
	}
	defer rows.Close()

	var out []regionconfig.Brand
	for rows.Next() {
		var b regionconfig.Brand
		if err := rows.Scan(&b.Code, &b.Name, &b.NameKR); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
