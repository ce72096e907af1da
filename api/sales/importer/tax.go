package importer

import (
	"SalesOpsHub/api/sales/coerce"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
)

// ExtractTax walks the tax-by-state sheet in two passes: first the header
// row's date cells yield the (column, year, month) pairs, then each state
// row emits one fact per non-zero amount. Zero cells mean "no data", not
// zero tax, and produce nothing.
func ExtractTax(g *Grid, region string) ([]models.TaxByState, SkipLog) {
	layout := regionconfig.Tax
	var skips SkipLog

	type monthCol struct {
		col         int
		year, month int
	}
	var months []monthCol
	for col := layout.FirstMonthCol; col < g.Width(); col++ {
		if d := coerce.Date(g.Cell(layout.HeaderRow, col)); d != nil {
			months = append(months, monthCol{col: col, year: d.Year(), month: int(d.Month())})
		}
	}

	var out []models.TaxByState
	for i := layout.FirstDataRow; i < g.RowCount(); i++ {
		state := coerce.String(g.Cell(i, layout.StateCol), "")
		if state == "" {
			skips.Add("%s row %d: no state code", g.Name, i+1)
			continue
		}
		for _, mc := range months {
			amt := coerce.DecimalOrZero(g.Cell(i, mc.col))
			if amt.IsZero() {
				continue
			}
			out = append(out, models.TaxByState{
				Region:    region,
				StateCode: state,
				Year:      mc.year,
				Month:     mc.month,
				Amount:    amt,
			})
		}
	}
	return out, skips
}
