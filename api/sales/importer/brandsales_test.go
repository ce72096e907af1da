package importer

import (
	"testing"

	"SalesOpsHub/api/sales/regionconfig"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brandSalesWidth = 22

func TestIsBrandSalesSheet(t *testing.T) {
	us := regionconfig.Get(regionconfig.RegionUS)
	assert.True(t, IsBrandSalesSheet("매출_닥터블릿", us))
	assert.True(t, IsBrandSalesSheet("3월 매출_Calo", us))
	assert.False(t, IsBrandSalesSheet("매출_테트라큐어", us)) // cn brand, not us
	assert.False(t, IsBrandSalesSheet("닥터블릿 현황", us))
	assert.False(t, IsBrandSalesSheet("손익관리_3월", us))
}

func TestExtractBrandSales(t *testing.T) {
	g := NewGrid("매출_닥터블릿", [][]string{
		row(brandSalesWidth, nil),
		row(brandSalesWidth, nil),
		row(brandSalesWidth, nil),
		row(brandSalesWidth, map[int]string{
			1:  "2026-03-01",
			2:  "닥터블릿",
			3:  "100", // shopify sales
			4:  "40",  // amazon sales
			6:  "150", // b2c total
			7:  "3",   // shopify refund
			10: "5",   // refund total
			17: "160", // total gsv
			19: "12",  // shopify ad
		}),
		row(brandSalesWidth, map[int]string{1: "2026-03-01", 2: "미지의브랜드", 6: "999"}),
		row(brandSalesWidth, map[int]string{1: "합계", 6: "99999"}),
	})

	recs, skips, err := ExtractBrandSales(g, regionconfig.Get(regionconfig.RegionUS))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, skips.Count) // the unmapped brand row

	rec := recs[0]
	assert.Equal(t, "doctorblet", rec.BrandCode)
	assert.Equal(t, "2026-03-01", rec.Date.Format("2006-01-02"))
	assert.True(t, rec.B2CTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, rec.RefundTotal.Equal(decimal.NewFromInt(5)))
	assert.True(t, rec.TotalGSV.Equal(decimal.NewFromInt(160)))

	require.Len(t, rec.Channels, 3)
	assert.Equal(t, "shopify", rec.Channels[0].Channel)
	assert.True(t, rec.Channels[0].Sales.Equal(decimal.NewFromInt(100)))
	assert.True(t, rec.Channels[0].Refund.Equal(decimal.NewFromInt(3)))
	assert.True(t, rec.Channels[0].Ad.Equal(decimal.NewFromInt(12)))
	assert.True(t, rec.Channels[1].Sales.Equal(decimal.NewFromInt(40)))
}

func TestExtractBrandSalesNarrowSheet(t *testing.T) {
	g := NewGrid("매출_닥터블릿", [][]string{row(5, nil)})
	_, _, err := ExtractBrandSales(g, regionconfig.Get(regionconfig.RegionUS))
	require.Error(t, err)
}
