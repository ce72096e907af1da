package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFilename(t *testing.T) {
	cases := map[string]Platform{
		"orders_export_20260314.csv":              PlatformShopify,
		"쇼피파이 매출 3월.xlsx":                   PlatformShopify,
		"All Order 2026-03-01.csv":                PlatformTiktok,
		"틱톡샵_정산.xlsx":                         PlatformTiktok,
		"shop-stats_drblet.sg.shopee_20260314.xlsx": PlatformShopee,
		"쇼피 매출.xlsx":                           PlatformShopee,
		"Qoo10_transaction_20260314.xlsx":         PlatformQoo10,
		"random_notes.txt":                        PlatformNone,
	}
	for name, want := range cases {
		assert.Equal(t, want, FromFilename(name), "filename %q", name)
	}
}

// 쇼피 is a prefix of 쇼피파이, so Shopify filenames must never be
// claimed by the Shopee rule.
func TestFromFilenameShopifyBeforeShopee(t *testing.T) {
	assert.Equal(t, PlatformShopify, FromFilename("쇼피파이 3월 매출.xlsx"))
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform(" TikTok ")
	assert.True(t, ok)
	assert.Equal(t, PlatformTiktok, p)

	p, ok = ParsePlatform("amazon")
	assert.False(t, ok)
	assert.Equal(t, PlatformNone, p)

	_, ok = ParsePlatform("")
	assert.False(t, ok)
}

func TestDateFromFilename(t *testing.T) {
	d := DateFromFilename("Qoo10_transaction_20260314.xlsx")
	require.NotNil(t, d)
	assert.Equal(t, "2026-03-14", d.Format("2006-01-02"))

	assert.Nil(t, DateFromFilename("orders_export.csv"))
	assert.Nil(t, DateFromFilename("stats_99999999.xlsx"))
}

func TestBrandFromShopeeFilename(t *testing.T) {
	assert.Equal(t, "닥터블릿", BrandFromShopeeFilename("shop-stats_drblet.sg.shopee_20260314.xlsx"))
	assert.Equal(t, "EOA", BrandFromShopeeFilename("shop-stats_eoa.sg.shopee_20260314.xlsx"))
	// Unknown tokens pass through so the operator sees the raw value.
	assert.Equal(t, "newshop", BrandFromShopeeFilename("shop-stats_newshop.sg.shopee_20260314.xlsx"))
	assert.Equal(t, "", BrandFromShopeeFilename("orders_export.csv"))
}

func TestQoo10BrandAlias(t *testing.T) {
	got, ok := Qoo10BrandAlias("DrBlet")
	assert.True(t, ok)
	assert.Equal(t, "닥터블릿", got)

	got, ok = Qoo10BrandAlias("nothingbetter")
	assert.True(t, ok)
	assert.Equal(t, "낫띵베럴", got)

	_, ok = Qoo10BrandAlias("unknown")
	assert.False(t, ok)
}

// The Qoo10 column map is narrower than the Shopee filename map: tokens
// like "eoa" resolve only on the Shopee side and pass through untouched
// on Qoo10.
func TestBrandAliasTablesAreSeparate(t *testing.T) {
	assert.Equal(t, "EOA", BrandFromShopeeFilename("shop-stats_eoa.sg.shopee_20260314.xlsx"))
	_, ok := Qoo10BrandAlias("eoa")
	assert.False(t, ok)

	got, ok := Qoo10BrandAlias("dr.blet")
	assert.True(t, ok)
	assert.Equal(t, "닥터블릿", got)
}
