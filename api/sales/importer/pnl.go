package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"

	"github.com/shopspring/decimal"
)

// totalsMarker is the label of the running-total row that closes every
// workbook sheet's data region. Rows at and after it are never read.
const totalsMarker = "합계"

// defaultExchangeRate is used when the rate cell of a P&L sheet is blank
// or unparseable (KRW/USD, matching the workbook's own fallback).
var defaultExchangeRate = decimal.NewFromInt(1446)

// SkipLog aggregates row-level skips. Skips are counted, optionally with
// a reason, and never abort an import.
type SkipLog struct {
	Count   int
	Reasons []string
}

func (s *SkipLog) Add(format string, args ...interface{}) {
	s.Count++
	s.Reasons = append(s.Reasons, fmt.Sprintf(format, args...))
}

func (s *SkipLog) Merge(other SkipLog) {
	s.Count += other.Count
	s.Reasons = append(s.Reasons, other.Reasons...)
}

// PnLResult is everything one 손익관리 sheet produces: the month's
// exchange rate plus three parallel record sets derived from disjoint
// column ranges of each data row.
type PnLResult struct {
	Rate   models.ExchangeRate
	Totals []models.DailySalesTotal
	B2B    []models.DailySalesB2B
	B2C    []models.DailySalesB2C
	Skips  SkipLog
}

// PnLSheetToken matches a sheet name against the region's P&L prefix and
// returns the trailing month token. The global roll-up workbook carries
// both "손익관리 전체_" and plain "손익관리_" sheets, so the default
// prefix is always accepted alongside the region's own.
func PnLSheetToken(sheet string, cfg *regionconfig.Config) (string, bool) {
	for _, prefix := range []string{cfg.PnLPrefix(), regionconfig.DefaultPnLSheetPrefix} {
		if strings.HasPrefix(sheet, prefix) {
			return strings.TrimPrefix(sheet, prefix), true
		}
	}
	return "", false
}

// ParseMonthToken parses the Korean month token of a P&L sheet name
// ("3월" → 3).
func ParseMonthToken(token string) (int, bool) {
	n := strings.TrimSuffix(strings.TrimSpace(token), "월")
	if n == token {
		return 0, false
	}
	m, err := strconv.Atoi(n)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

// ExtractPnL walks one P&L sheet. The layout is positional; the sheet is
// validated against the column maps before any row is read. The B2C
// channel columns come from the region configuration.
func ExtractPnL(g *Grid, cfg *regionconfig.Config, year, month int) (*PnLResult, error) {
	layout := regionconfig.PnL
	if err := validatePnLWidth(g, cfg); err != nil {
		return nil, err
	}

	res := &PnLResult{
		Rate: models.ExchangeRate{
			Region: cfg.Code,
			Year:   year,
			Month:  month,
			Rate:   *coerce.Decimal(g.Cell(layout.RateRow, layout.RateCol), &defaultExchangeRate),
		},
	}

	for i := layout.SkipRows; i < g.RowCount(); i++ {
		dateCell := g.Cell(i, layout.DateCol)
		if strings.Contains(dateCell, totalsMarker) {
			break
		}
		date := coerce.Date(dateCell)
		if date == nil {
			res.Skips.Add("%s row %d: unparseable date %q", g.Name, i+1, dateCell)
			continue
		}

		res.Totals = append(res.Totals, extractDailyTotal(g, i, *date, cfg.Code, layout.Total))
		res.B2B = append(res.B2B, extractDailyB2B(g, i, *date, cfg.Code, layout.B2B))
		res.B2C = append(res.B2C, extractDailyB2C(g, i, *date, cfg, layout.B2C))
	}
	return res, nil
}

func validatePnLWidth(g *Grid, cfg *regionconfig.Config) error {
	layout := regionconfig.PnL
	width := g.Width()
	if err := layout.Total.Validate(g.Name, width); err != nil {
		return err
	}
	if err := layout.B2B.Validate(g.Name, width); err != nil {
		return err
	}
	// The B2C tail columns and channel columns may be absent on older
	// sheets; only the block start is required.
	if start := layout.B2C["b2c_total"]; start >= width {
		return fmt.Errorf("sheet %s: B2C block missing, expected at least %d columns, got %d", g.Name, start+1, width)
	}
	for _, ch := range cfg.Channels {
		if ch.PnLSalesCol >= width {
			return fmt.Errorf("sheet %s: channel %s column %d missing (sheet has %d)", g.Name, ch.Code, ch.PnLSalesCol+1, width)
		}
	}
	return nil
}

func cellDecimal(g *Grid, row int, cols regionconfig.ColumnMap, field string) decimal.Decimal {
	return coerce.DecimalOrZero(g.Cell(row, cols[field]))
}

func extractDailyTotal(g *Grid, row int, date time.Time, region string, cols regionconfig.ColumnMap) models.DailySalesTotal {
	return models.DailySalesTotal{
		Region:          region,
		Date:            date,
		Year:            date.Year(),
		Month:           int(date.Month()),
		GMV:             cellDecimal(g, row, cols, "gmv"),
		GSV:             cellDecimal(g, row, cols, "gsv"),
		COGS:            cellDecimal(g, row, cols, "cogs"),
		TotalExpense:    cellDecimal(g, row, cols, "total_expense"),
		PerformanceAd:   cellDecimal(g, row, cols, "performance_ad"),
		InfluencerAd:    cellDecimal(g, row, cols, "influencer_ad"),
		SalesCommission: cellDecimal(g, row, cols, "sales_commission"),
		Shipping:        cellDecimal(g, row, cols, "shipping"),
		Tax:             cellDecimal(g, row, cols, "tax"),
		OperatingProfit: cellDecimal(g, row, cols, "operating_profit"),
		OperatingMargin: coerce.Decimal(g.Cell(row, cols["operating_margin"]), nil),
	}
}

func extractDailyB2B(g *Grid, row int, date time.Time, region string, cols regionconfig.ColumnMap) models.DailySalesB2B {
	return models.DailySalesB2B{
		Region:          region,
		Date:            date,
		Year:            date.Year(),
		Month:           int(date.Month()),
		SalesTotal:      cellDecimal(g, row, cols, "sales_total"),
		SalesUS:         cellDecimal(g, row, cols, "sales_us"),
		COGS:            cellDecimal(g, row, cols, "cogs"),
		TotalExpense:    cellDecimal(g, row, cols, "total_expense"),
		Shipping:        cellDecimal(g, row, cols, "shipping"),
		Tax:             cellDecimal(g, row, cols, "tax"),
		OperatingProfit: cellDecimal(g, row, cols, "operating_profit"),
	}
}

func extractDailyB2C(g *Grid, row int, date time.Time, cfg *regionconfig.Config, cols regionconfig.ColumnMap) models.DailySalesB2C {
	rec := models.DailySalesB2C{
		Region:          cfg.Code,
		Date:            date,
		Year:            date.Year(),
		Month:           int(date.Month()),
		B2CTotal:        cellDecimal(g, row, cols, "b2c_total"),
		RefundTotal:     cellDecimal(g, row, cols, "refund_total"),
		GSV:             cellDecimal(g, row, cols, "gsv"),
		COGS:            cellDecimal(g, row, cols, "cogs"),
		TotalExpense:    cellDecimal(g, row, cols, "total_expense"),
		PerformanceAd:   cellDecimal(g, row, cols, "performance_ad"),
		InfluencerAd:    cellDecimal(g, row, cols, "influencer_ad"),
		SalesCommission: cellDecimal(g, row, cols, "sales_commission"),
		Shipping:        cellDecimal(g, row, cols, "shipping"),
		Tax:             cellDecimal(g, row, cols, "tax"),
		OperatingProfit: cellDecimal(g, row, cols, "operating_profit"),
		OperatingMargin: coerce.Decimal(g.Cell(row, cols["operating_margin"]), nil),
	}
	for _, ch := range cfg.Channels {
		rec.Channels = append(rec.Channels, models.ChannelAmount{
			Channel: ch.Code,
			Sales:   coerce.DecimalOrZero(g.Cell(row, ch.PnLSalesCol)),
			Refund:  coerce.DecimalOrZero(g.Cell(row, ch.PnLRefundCol)),
		})
	}
	return rec
}
