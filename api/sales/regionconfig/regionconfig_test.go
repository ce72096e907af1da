package regionconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallsBackToUS(t *testing.T) {
	assert.Equal(t, RegionUS, Get("nope").Code)
	assert.Equal(t, RegionJP, Get(RegionJP).Code)
}

func TestIsValidRegion(t *testing.T) {
	for _, r := range AllRegions {
		assert.True(t, IsValidRegion(r))
	}
	assert.False(t, IsValidRegion(""))
	assert.False(t, IsValidRegion("kr"))
}

func TestPnLPrefix(t *testing.T) {
	assert.Equal(t, "손익관리_", Get(RegionUS).PnLPrefix())
	assert.Equal(t, "손익관리 전체_", Get(RegionGlobal).PnLPrefix())
}

func TestChannelsPerRegion(t *testing.T) {
	us := Get(RegionUS)
	require.Len(t, us.Channels, 3)
	assert.Equal(t, "shopify", us.Channels[0].Code)
	assert.Equal(t, 26, us.Channels[0].PnLSalesCol)
	assert.Equal(t, 29, us.Channels[0].PnLRefundCol)

	cn := Get(RegionCN)
	require.Len(t, cn.Channels, 1)
	assert.Equal(t, "shopee", cn.Channels[0].Code)

	jp := Get(RegionJP)
	require.Len(t, jp.Channels, 1)
	assert.Equal(t, "qoo10", jp.Channels[0].Code)
}

func TestColumnMapValidate(t *testing.T) {
	m := ColumnMap{"a": 2, "b": 10}
	assert.Equal(t, 10, m.Max())
	assert.NoError(t, m.Validate("sheet", 11))
	err := m.Validate("sheet", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected at least 11 columns")
}

func TestLoadOverridesMissingFile(t *testing.T) {
	assert.NoError(t, LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadOverridesUnknownRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions:\n  kr:\n    tax_sheet: Tax_KR\n"), 0644))
	err := LoadOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown region "kr"`)
}

func TestLoadOverridesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	data := `
regions:
  jp:
    brand_map:
      뉴브랜드: newbrand
    raw_sheets:
      라쿠텐 매출_RAW: qoo10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	require.NoError(t, LoadOverrides(path))

	jp := Get(RegionJP)
	assert.Equal(t, "newbrand", jp.BrandMap["뉴브랜드"])
	// Builtin entries survive a merge.
	assert.Equal(t, "doctorblet", jp.BrandMap["닥터블릿"])
	assert.Equal(t, "qoo10", jp.RawSheets["라쿠텐 매출_RAW"])
}
