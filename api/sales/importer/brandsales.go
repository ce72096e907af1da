package importer

import (
	"strings"

	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// IsBrandSalesSheet reports whether a sheet name follows the brand-sales
// naming convention for the region: a "매출_" fragment plus one of the
// region's brand keywords.
func IsBrandSalesSheet(name string, cfg *regionconfig.Config) bool {
	if !strings.Contains(name, "매출_") {
		return false
	}
	for _, kw := range cfg.BrandKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// ExtractBrandSales walks one brand-sales sheet. The brand name cell is
// mapped through the region's brand_map; rows with unmapped brands are
// skipped, not errors.
func ExtractBrandSales(g *Grid, cfg *regionconfig.Config) ([]models.BrandDailySales, SkipLog, error) {
	layout := regionconfig.BrandSales
	var skips SkipLog

	if start := layout.Common["b2c_total"]; start >= g.Width() {
		// Brand sheets are narrower than P&L sheets but still must reach
		// the B2C total column.
		return nil, skips, regionconfig.ColumnMap{"b2c_total": start}.Validate(g.Name, g.Width())
	}

	var out []models.BrandDailySales
	for i := layout.SkipRows; i < g.RowCount(); i++ {
		dateCell := g.Cell(i, layout.DateCol)
		if strings.Contains(dateCell, totalsMarker) {
			break
		}
		date := coerce.Date(dateCell)
		if date == nil {
			skips.Add("%s row %d: unparseable date %q", g.Name, i+1, dateCell)
			continue
		}

		brandName := coerce.String(g.Cell(i, layout.BrandCol), "")
		brandCode, ok := cfg.BrandMap[brandName]
		if !ok {
			skips.Add("%s row %d: unmapped brand %q", g.Name, i+1, brandName)
			continue
		}

		rec := models.BrandDailySales{
			Region:      cfg.Code,
			Date:        *date,
			Year:        date.Year(),
			Month:       int(date.Month()),
			BrandCode:   brandCode,
			B2CTotal:    coerce.DecimalOrZero(g.Cell(i, layout.Common["b2c_total"])),
			RefundTotal: coerce.DecimalOrZero(g.Cell(i, layout.Common["refund_total"])),
			GSV:         coerce.DecimalOrZero(g.Cell(i, layout.Common["gsv"])),
			B2BUS:       coerce.DecimalOrZero(g.Cell(i, layout.Common["b2b_us"])),
			B2BTotal:    coerce.DecimalOrZero(g.Cell(i, layout.Common["b2b_total"])),
			TotalGSV:    coerce.DecimalOrZero(g.Cell(i, layout.Common["total_gsv"])),
		}
		for _, ch := range cfg.Channels {
			rec.Channels = append(rec.Channels, models.BrandChannelAmount{
				Channel: ch.Code,
				Sales:   coerce.DecimalOrZero(g.Cell(i, ch.BrandSalesCol)),
				Refund:  coerce.DecimalOrZero(g.Cell(i, ch.BrandRefundCol)),
				Ad:      coerce.DecimalOrZero(g.Cell(i, ch.BrandAdCol)),
			})
		}
		out = append(out, rec)
	}
	return out, skips, nil
}
