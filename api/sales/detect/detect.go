package detect

import (
	"regexp"
	"strings"
	"time"
)

// Platform is the source e-commerce platform of a raw export file.
type Platform string

const (
	PlatformShopify Platform = "shopify"
	PlatformTiktok  Platform = "tiktok"
	PlatformShopee  Platform = "shopee"
	PlatformQoo10   Platform = "qoo10"
	// PlatformNone means the filename matched no known export naming
	// convention. Callers decide whether to fail or ask for an override;
	// detection never guesses.
	PlatformNone Platform = ""
)

// ParsePlatform validates an operator-supplied platform override.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformShopify:
		return PlatformShopify, true
	case PlatformTiktok:
		return PlatformTiktok, true
	case PlatformShopee:
		return PlatformShopee, true
	case PlatformQoo10:
		return PlatformQoo10, true
	}
	return PlatformNone, false
}

// fragments per platform, checked in order. The order matters: a TikTok
// "all order" dump must not fall through to the Qoo10 "transaction" rule,
// and Shopee's "쇼피" fragment is a prefix of Shopify's "쇼피파이", so
// Shopify is always tested first.
var platformFragments = []struct {
	platform  Platform
	fragments []string
}{
	{PlatformShopify, []string{"orders_export", "쇼피파이", "shopify"}},
	{PlatformTiktok, []string{"all order", "all_order", "틱톡", "tiktok"}},
	{PlatformShopee, []string{"shopee", "shop-stats", "쇼피"}},
	{PlatformQoo10, []string{"qoo10", "transaction", "큐텐"}},
}

// FromFilename infers the platform from an export filename by
// case-insensitive substring match. Returns PlatformNone when nothing
// matches.
func FromFilename(filename string) Platform {
	fname := strings.ToLower(filename)
	for _, entry := range platformFragments {
		for _, frag := range entry.fragments {
			if strings.Contains(fname, frag) {
				return entry.platform
			}
		}
	}
	return PlatformNone
}

var yyyymmdd = regexp.MustCompile(`(\d{8})`)

// DateFromFilename finds the first 8-digit run in the filename and parses
// it as YYYYMMDD. Shopee and Qoo10 exports carry the report date only in
// the filename.
func DateFromFilename(filename string) *time.Time {
	m := yyyymmdd.FindString(filename)
	if m == "" {
		return nil
	}
	t, err := time.Parse("20060102", m)
	if err != nil {
		return nil
	}
	return &t
}

// shopeeBrandToken captures the shop token in filenames like
// "shop-stats_drblet.sg.shopee_20260314.xlsx".
var shopeeBrandToken = regexp.MustCompile(`_([a-zA-Z]+)\.\w+\.shopee`)

// The filename and 브랜드명 alias tables are deliberately separate: the
// Shopee shop tokens cover every brand trading there, while the Qoo10
// column only ever spells the two brands sold on Qoo10. A token outside
// its own table passes through verbatim.
var shopeeBrandAliases = map[string]string{
	"drblet":        "닥터블릿",
	"doctorblet":    "닥터블릿",
	"eoa":           "EOA",
	"nothingviral":  "낫띵베럴",
	"nothingbetter": "낫띵베럴",
	"tetracure":     "테트라큐어",
	"calo":          "Calo",
}

var qoo10BrandAliases = map[string]string{
	"nothingbetter": "낫띵베럴",
	"nothingviral":  "낫띵베럴",
	"drblet":        "닥터블릿",
	"doctorblet":    "닥터블릿",
	"dr.blet":       "닥터블릿",
}

// BrandFromShopeeFilename extracts the shop token from a Shopee shop-stats
// filename and maps it through the alias table. Unknown tokens pass
// through verbatim so the operator can see what was on the file.
func BrandFromShopeeFilename(filename string) string {
	m := shopeeBrandToken.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	if mapped, ok := shopeeBrandAliases[strings.ToLower(m[1])]; ok {
		return mapped
	}
	return m[1]
}

// Qoo10BrandAlias resolves a lowercased brand token from the 브랜드명
// column.
func Qoo10BrandAlias(token string) (string, bool) {
	mapped, ok := qoo10BrandAliases[strings.ToLower(strings.TrimSpace(token))]
	return mapped, ok
}
