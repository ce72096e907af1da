// Package regionconfig holds the static per-region metadata the importers
// and detectors consult: brand lists, sales channels, workbook sheet
// naming conventions and the positional column maps for the
// human-maintained P&L workbook layout.
package regionconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Region codes. Unknown codes fall back to RegionUS everywhere.
const (
	RegionUS     = "us"
	RegionCN     = "cn"
	RegionJP     = "jp"
	RegionGlobal = "global"
)

var AllRegions = []string{RegionUS, RegionCN, RegionJP, RegionGlobal}

// IsValidRegion reports whether code is one of the known region codes.
func IsValidRegion(code string) bool {
	for _, r := range AllRegions {
		if r == code {
			return true
		}
	}
	return false
}

type Brand struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	NameKR string `yaml:"name_kr"`
}

// Channel describes one B2C sales channel of a region together with the
// column positions its figures occupy in the P&L and brand-sales sheets.
type Channel struct {
	Code    string
	Display string

	// 손익관리 sheet, B2C block.
	PnLSalesCol  int
	PnLRefundCol int

	// brand-sales sheet.
	BrandSalesCol  int
	BrandRefundCol int
	BrandAdCol     int
}

// Config is the full per-region configuration table.
type Config struct {
	Code     string
	Name     string
	NameEN   string
	Currency string

	Brands   []Brand
	Channels []Channel

	// RawSheets maps workbook-embedded raw sheet names to their platform
	// code (shopify/tiktok/shopee/qoo10).
	RawSheets map[string]string

	// TaxSheet is the exact tax-by-state sheet name, empty when the
	// region has none.
	TaxSheet string

	// BrandKeywords are the tokens that identify a brand-sales sheet
	// name; BrandMap maps the brand name cell to a brand code.
	BrandKeywords []string
	BrandMap      map[string]string

	// PnLSheetPrefix for regions whose P&L sheets are not named with the
	// default "손익관리_" prefix (the global roll-up workbook).
	PnLSheetPrefix string
}

const DefaultPnLSheetPrefix = "손익관리_"

// PnLPrefix returns the region's P&L sheet prefix.
func (c *Config) PnLPrefix() string {
	if c.PnLSheetPrefix != "" {
		return c.PnLSheetPrefix
	}
	return DefaultPnLSheetPrefix
}

// BrandByCode looks a brand up in the region's brand list.
func (c *Config) BrandByCode(code string) (Brand, bool) {
	for _, b := range c.Brands {
		if b.Code == code {
			return b, true
		}
	}
	return Brand{}, false
}

var usChannels = []Channel{
	{Code: "shopify", Display: "Shopify", PnLSalesCol: 26, PnLRefundCol: 29, BrandSalesCol: 3, BrandRefundCol: 7, BrandAdCol: 19},
	{Code: "amazon", Display: "Amazon", PnLSalesCol: 27, PnLRefundCol: 30, BrandSalesCol: 4, BrandRefundCol: 8, BrandAdCol: 20},
	{Code: "tiktok", Display: "TikTok", PnLSalesCol: 28, PnLRefundCol: 31, BrandSalesCol: 5, BrandRefundCol: 9, BrandAdCol: 21},
}

var configs = map[string]*Config{
	RegionUS: {
		Code:     RegionUS,
		Name:     "미국",
		NameEN:   "US",
		Currency: "USD",
		Brands: []Brand{
			{Code: "doctorblet", Name: "Dr.Blet", NameKR: "닥터블릿"},
			{Code: "calo", Name: "Calo", NameKR: "Calo"},
		},
		Channels: usChannels,
		RawSheets: map[string]string{
			"쇼피파이 매출_RAW": "shopify",
			"틱톡샵 매출_RAW":  "tiktok",
		},
		TaxSheet:      "Tax_TT",
		BrandKeywords: []string{"닥터블릿", "Calo"},
		BrandMap: map[string]string{
			"닥터블릿": "doctorblet",
			"Calo": "calo",
		},
	},
	RegionCN: {
		Code:     RegionCN,
		Name:     "중국",
		NameEN:   "China",
		Currency: "CNY",
		Brands: []Brand{
			{Code: "doctorblet", Name: "Dr.Blet", NameKR: "닥터블릿"},
			{Code: "eoa", Name: "EOA", NameKR: "EOA"},
			{Code: "nothingviral", Name: "Nothing Viral", NameKR: "낫띵베럴"},
			{Code: "tetracure", Name: "Tetracure", NameKR: "테트라큐어"},
		},
		Channels: []Channel{
			{Code: "shopee", Display: "Shopee", PnLSalesCol: 26, PnLRefundCol: 29, BrandSalesCol: 3, BrandRefundCol: 7, BrandAdCol: 19},
		},
		RawSheets: map[string]string{
			"쇼피 매출_RAW": "shopee",
		},
		BrandKeywords: []string{"닥터블릿", "EOA", "낫띵베럴", "테트라큐어"},
		BrandMap: map[string]string{
			"닥터블릿": "doctorblet",
			"EOA":  "eoa",
			"낫띵베럴": "nothingviral",
			"테트라큐어": "tetracure",
		},
	},
	RegionJP: {
		Code:     RegionJP,
		Name:     "일본",
		NameEN:   "Japan",
		Currency: "JPY",
		Brands: []Brand{
			{Code: "doctorblet", Name: "Dr.Blet", NameKR: "닥터블릿"},
			{Code: "nothingviral", Name: "Nothing Viral", NameKR: "낫띵베럴"},
		},
		Channels: []Channel{
			{Code: "qoo10", Display: "Qoo10", PnLSalesCol: 26, PnLRefundCol: 29, BrandSalesCol: 3, BrandRefundCol: 7, BrandAdCol: 19},
		},
		RawSheets: map[string]string{
			"큐텐 매출_RAW": "qoo10",
		},
		BrandKeywords: []string{"닥터블릿", "낫띵베럴"},
		BrandMap: map[string]string{
			"닥터블릿": "doctorblet",
			"낫띵베럴": "nothingviral",
		},
	},
	RegionGlobal: {
		Code:           RegionGlobal,
		Name:           "전체",
		NameEN:         "Global",
		Currency:       "USD",
		RawSheets:      map[string]string{},
		BrandMap:       map[string]string{},
		PnLSheetPrefix: "손익관리 전체_",
	},
}

// Get returns the configuration for a region code, falling back to the US
// configuration for unknown codes.
func Get(region string) *Config {
	if cfg, ok := configs[region]; ok {
		return cfg
	}
	return configs[RegionUS]
}

// AllBrandCodes returns the distinct brand codes across every region.
func AllBrandCodes() []string {
	seen := map[string]bool{}
	var codes []string
	for _, region := range AllRegions {
		for _, b := range configs[region].Brands {
			if !seen[b.Code] {
				seen[b.Code] = true
				codes = append(codes, b.Code)
			}
		}
	}
	return codes
}

// overrideFile is the YAML shape accepted by LoadOverrides. Only the
// pieces that actually churn (brand roster and sheet naming) are
// overridable; column maps stay in code.
type overrideFile struct {
	Regions map[string]struct {
		Brands        []Brand           `yaml:"brands"`
		BrandKeywords []string          `yaml:"brand_keywords"`
		BrandMap      map[string]string `yaml:"brand_map"`
		RawSheets     map[string]string `yaml:"raw_sheets"`
		TaxSheet      *string           `yaml:"tax_sheet"`
	} `yaml:"regions"`
}

// LoadOverrides merges region overrides from a YAML file over the builtin
// table. Missing file is not an error; a malformed one is.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("region overrides %s: %w", path, err)
	}
	for code, ov := range f.Regions {
		cfg, ok := configs[code]
		if !ok {
			return fmt.Errorf("region overrides %s: unknown region %q", path, code)
		}
		if len(ov.Brands) > 0 {
			cfg.Brands = ov.Brands
		}
		if len(ov.BrandKeywords) > 0 {
			cfg.BrandKeywords = ov.BrandKeywords
		}
		for name, c := range ov.BrandMap {
			cfg.BrandMap[name] = c
		}
		for sheet, platform := range ov.RawSheets {
			cfg.RawSheets[sheet] = platform
		}
		if ov.TaxSheet != nil {
			cfg.TaxSheet = *ov.TaxSheet
		}
	}
	return nil
}
