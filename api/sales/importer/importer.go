package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"SalesOpsHub/api/sales/detect"
	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Importer ties the sheet extractors to the loader. One call imports one
// file inside one transaction; a failed call writes nothing.
type Importer struct {
	loader *Loader
}

func New(pool *pgxpool.Pool) *Importer {
	return &Importer{loader: NewLoader(pool)}
}

// Result is what an import call reports back to the caller.
type Result struct {
	BatchID  uuid.UUID      `json:"batch_id"`
	Region   string         `json:"region"`
	Source   string         `json:"source"`
	FileName string         `json:"file_name"`
	Written  map[string]int `json:"written"`
	Skipped  int            `json:"skipped"`
	Reasons  []string       `json:"skip_reasons,omitempty"`
}

func newResult(region, source, fileName string) *Result {
	return &Result{
		BatchID:  uuid.New(),
		Region:   region,
		Source:   source,
		FileName: fileName,
		Written:  map[string]int{},
	}
}

func (r *Result) add(category string, n int) {
	if n != 0 {
		r.Written[category] += n
	}
}

func (r *Result) addSkips(s SkipLog) {
	r.Skipped += s.Count
	r.Reasons = append(r.Reasons, s.Reasons...)
}

func (r *Result) totalWritten() int {
	total := 0
	for _, n := range r.Written {
		total += n
	}
	return total
}

// ImportWorkbook ingests one monthly management workbook for a region:
// P&L sheets, brand-sales sheets, embedded raw platform sheets and the
// tax sheet, whichever of those the workbook carries. When clear is set
// the region's imported tables are wiped first, inside the same
// transaction.
func (imp *Importer) ImportWorkbook(ctx context.Context, path, region string, year int, clear bool) (*Result, error) {
	cfg := regionconfig.Get(region)
	if year == 0 {
		year = config.PnLYear
	}

	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	tx, err := imp.loader.Begin(ctx, cfg.Code)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if clear {
		if err := tx.ClearRegion(ctx); err != nil {
			return nil, err
		}
	}
	for _, b := range cfg.Brands {
		brand := models.Brand{Region: cfg.Code, Code: b.Code, Name: b.Name, NameKR: b.NameKR}
		if err := tx.EnsureBrand(ctx, brand); err != nil {
			return nil, err
		}
	}

	res := newResult(cfg.Code, "workbook", filepath.Base(path))
	for _, sheet := range wb.SheetNames() {
		if err := imp.importSheet(ctx, tx, wb, sheet, cfg, year, res); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	if err := tx.RecordBatch(ctx, res.BatchID, res.Source, res.FileName, res.totalWritten(), res.Skipped); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	log.Printf("sales: workbook %s region=%s written=%d skipped=%d", res.FileName, cfg.Code, res.totalWritten(), res.Skipped)
	return res, nil
}

func (imp *Importer) importSheet(ctx context.Context, tx *LoadTx, wb *Workbook, sheet string, cfg *regionconfig.Config, year int, res *Result) error {
	if token, ok := PnLSheetToken(sheet, cfg); ok {
		month, ok := ParseMonthToken(token)
		if !ok {
			log.Printf("sales: workbook sheet %q has no month token, skipping", sheet)
			return nil
		}
		g, err := wb.Grid(sheet)
		if err != nil {
			return err
		}
		return imp.importPnL(ctx, tx, g, cfg, year, month, res)
	}

	switch {
	case IsBrandSalesSheet(sheet, cfg):
		g, err := wb.Grid(sheet)
		if err != nil {
			return err
		}
		rows, skips, err := ExtractBrandSales(g, cfg)
		if err != nil {
			return err
		}
		for i := range rows {
			if err := tx.UpsertBrandDaily(ctx, rows[i]); err != nil {
				return err
			}
		}
		res.add("brand_daily_sales", len(rows))
		res.addSkips(skips)
		return nil

	case cfg.RawSheets[sheet] != "":
		g, err := wb.Grid(sheet)
		if err != nil {
			return err
		}
		platform := cfg.RawSheets[sheet]
		orders, skips, err := ExtractRawSheet(g, cfg.Code, platform)
		if err != nil {
			return err
		}
		res.addSkips(skips)
		return imp.replaceOrders(ctx, tx, platform, orders, true, res)

	case cfg.TaxSheet != "" && sheet == cfg.TaxSheet:
		g, err := wb.Grid(sheet)
		if err != nil {
			return err
		}
		rows, skips := ExtractTax(g, cfg.Code)
		for i := range rows {
			if err := tx.UpsertTaxByState(ctx, rows[i]); err != nil {
				return err
			}
		}
		res.add("tax_by_state", len(rows))
		res.addSkips(skips)
		return nil

	default:
		return nil
	}
}

func (imp *Importer) importPnL(ctx context.Context, tx *LoadTx, g *Grid, cfg *regionconfig.Config, year, month int, res *Result) error {
	parsed, err := ExtractPnL(g, cfg, year, month)
	if err != nil {
		return err
	}
	if err := tx.UpsertExchangeRate(ctx, parsed.Rate); err != nil {
		return err
	}
	for i := range parsed.Totals {
		if err := tx.UpsertDailyTotal(ctx, parsed.Totals[i]); err != nil {
			return err
		}
	}
	for i := range parsed.B2B {
		if err := tx.UpsertDailyB2B(ctx, parsed.B2B[i]); err != nil {
			return err
		}
	}
	for i := range parsed.B2C {
		if err := tx.UpsertDailyB2C(ctx, parsed.B2C[i]); err != nil {
			return err
		}
	}
	res.add("exchange_rates", 1)
	res.add("daily_sales_total", len(parsed.Totals))
	res.add("daily_sales_b2b", len(parsed.B2B))
	res.add("daily_sales_b2c", len(parsed.B2C))
	res.addSkips(parsed.Skips)
	return nil
}

// replaceOrders is the range-replace load for materialized rows
// (workbook-embedded raw sheets and the Shopee stats workbook): delete
// the span of order dates the rows cover, then bulk-insert. With
// clearRange false it only appends.
func (imp *Importer) replaceOrders(ctx context.Context, tx *LoadTx, platform string, orders []models.Order, clearRange bool, res *Result) error {
	if len(orders) == 0 {
		return nil
	}
	if clearRange {
		min, max := orderDateSpan(orders)
		if err := clearOrderSpan(ctx, tx, platform, min, max); err != nil {
			return err
		}
	}
	n, err := tx.InsertOrders(ctx, platform, orders)
	if err != nil {
		return err
	}
	res.add(platform+"_orders", n)
	return nil
}

func clearOrderSpan(ctx context.Context, tx *LoadTx, platform string, min, max time.Time) error {
	deleted, err := tx.DeleteOrderRange(ctx, platform, min, max)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("sales: %s replaced %d rows in %s..%s", platform, deleted,
			min.Format("2006-01-02"), max.Format("2006-01-02"))
	}
	return nil
}

// rawDeleteSpan picks the delete window of a standalone raw import. A
// file that carries its report date in the name replaces that day even
// when it holds no rows; otherwise the scanned row span applies.
func rawDeleteSpan(fileDate *time.Time, min, max time.Time, haveRows bool) (time.Time, time.Time, bool) {
	if fileDate != nil {
		return *fileDate, *fileDate, true
	}
	return min, max, haveRows
}

func orderDateSpan(orders []models.Order) (min, max time.Time) {
	min, max = orders[0].OrderDate, orders[0].OrderDate
	for _, o := range orders[1:] {
		if o.OrderDate.Before(min) {
			min = o.OrderDate
		}
		if o.OrderDate.After(max) {
			max = o.OrderDate
		}
	}
	return min, max
}

// platformRegions is where each platform's standalone exports land when
// the caller does not say otherwise.
var platformRegions = map[detect.Platform]string{
	detect.PlatformShopify: regionconfig.RegionUS,
	detect.PlatformTiktok:  regionconfig.RegionUS,
	detect.PlatformShopee:  regionconfig.RegionCN,
	detect.PlatformQoo10:   regionconfig.RegionJP,
}

// orderStream reads a flat export one row at a time and can re-open it
// per pass: a dates-only scan for range-replace, then the write pass
// that feeds CopyFrom. No pass ever holds the whole file.
type orderStream struct {
	open    func() (RowReader, error)
	extract func(Record) (*models.Order, string)
	region  string
}

func flatOrderStream(path, region string, extract func(Record) (*models.Order, string)) *orderStream {
	return &orderStream{
		open:    func() (RowReader, error) { return OpenRows(path) },
		extract: extract,
		region:  region,
	}
}

// dateSpan is the dates-only first pass. Skip reasons are counted by
// the write pass, not here.
func (s *orderStream) dateSpan() (min, max time.Time, found bool, err error) {
	rows, err := s.open()
	if err != nil {
		return min, max, false, err
	}
	defer rows.Close()
	for {
		rec, e := rows.Next()
		if e == io.EOF {
			return min, max, found, nil
		}
		if e != nil {
			return min, max, false, e
		}
		o, _ := s.extract(rec)
		if o == nil {
			continue
		}
		if !found || o.OrderDate.Before(min) {
			min = o.OrderDate
		}
		if !found || o.OrderDate.After(max) {
			max = o.OrderDate
		}
		found = true
	}
}

// copyInto is the write pass: rows stream straight from the reader into
// the transaction's CopyFrom.
func (s *orderStream) copyInto(ctx context.Context, tx *LoadTx, platform string, skips *SkipLog) (int, error) {
	rows, err := s.open()
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	next := func() (*models.Order, error) {
		for {
			rec, err := rows.Next()
			if err != nil {
				return nil, err
			}
			o, reason := s.extract(rec)
			if o == nil {
				if reason != "" {
					skips.Add("%s", reason)
				}
				continue
			}
			o.Region = s.region
			return o, nil
		}
	}
	return tx.CopyOrders(ctx, platform, next)
}

// ImportRawFile ingests one standalone platform export. platform may be
// empty, in which case it is detected from originalName; region may be
// empty, in which case the platform's home region applies. clearRange
// controls whether the file's date span is deleted before insert.
func (imp *Importer) ImportRawFile(ctx context.Context, path, originalName string, platform detect.Platform, region string, clearRange bool) (*Result, error) {
	if originalName == "" {
		originalName = filepath.Base(path)
	}
	if platform == detect.PlatformNone {
		platform = detect.FromFilename(originalName)
	}
	if platform == detect.PlatformNone {
		return nil, fmt.Errorf("cannot determine platform from file name %q", originalName)
	}
	if region == "" {
		region = platformRegions[platform]
	}
	cfg := regionconfig.Get(region)

	var stream *orderStream
	var fileDate *time.Time
	switch platform {
	case detect.PlatformShopify:
		stream = flatOrderStream(path, cfg.Code, ExtractShopifyRow)
	case detect.PlatformTiktok:
		stream = flatOrderStream(path, cfg.Code, ExtractTiktokRow)
	case detect.PlatformQoo10:
		date := detect.DateFromFilename(originalName)
		if date == nil {
			return nil, fmt.Errorf("qoo10 file %q carries no YYYYMMDD date in its name", originalName)
		}
		fileDate = date
		stream = &orderStream{
			open:    func() (RowReader, error) { return openXLSXSheetRows(path, qoo10DataSheet) },
			extract: func(rec Record) (*models.Order, string) { return ExtractQoo10Row(rec, *date) },
			region:  cfg.Code,
		}
	case detect.PlatformShopee:
		// summary workbook, handled below
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}

	tx, err := imp.loader.Begin(ctx, cfg.Code)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	res := newResult(cfg.Code, string(platform), originalName)

	if platform == detect.PlatformShopee {
		err = imp.importShopeeStats(ctx, tx, path, originalName, cfg.Code, clearRange, res)
	} else {
		err = imp.importStreamed(ctx, tx, stream, string(platform), fileDate, clearRange, res)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.RecordBatch(ctx, res.BatchID, res.Source, res.FileName, res.totalWritten(), res.Skipped); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	log.Printf("sales: %s file %s region=%s written=%d skipped=%d", platform, originalName, cfg.Code, res.totalWritten(), res.Skipped)
	return res, nil
}

func (imp *Importer) importStreamed(ctx context.Context, tx *LoadTx, stream *orderStream, platform string, fileDate *time.Time, clearRange bool, res *Result) error {
	if clearRange {
		var sMin, sMax time.Time
		var sFound bool
		if fileDate == nil {
			var err error
			sMin, sMax, sFound, err = stream.dateSpan()
			if err != nil {
				return err
			}
		}
		if min, max, ok := rawDeleteSpan(fileDate, sMin, sMax, sFound); ok {
			if err := clearOrderSpan(ctx, tx, platform, min, max); err != nil {
				return err
			}
		}
	}
	var skips SkipLog
	written, err := stream.copyInto(ctx, tx, platform, &skips)
	if err != nil {
		return err
	}
	res.addSkips(skips)
	res.add(platform+"_orders", written)
	return nil
}

// importShopeeStats materializes the stats workbook: it holds one daily
// summary row plus a page of product contributions, never a bulk dump.
func (imp *Importer) importShopeeStats(ctx context.Context, tx *LoadTx, path, originalName, region string, clearRange bool, res *Result) error {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	orders, fileDate, skips, err := ExtractShopeeStats(wb, originalName)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Region = region
	}
	res.addSkips(skips)

	if clearRange {
		var oMin, oMax time.Time
		if len(orders) > 0 {
			oMin, oMax = orderDateSpan(orders)
		}
		if min, max, ok := rawDeleteSpan(fileDate, oMin, oMax, len(orders) > 0); ok {
			if err := clearOrderSpan(ctx, tx, "shopee", min, max); err != nil {
				return err
			}
		}
	}
	n, err := tx.InsertOrders(ctx, "shopee", orders)
	if err != nil {
		return err
	}
	res.add("shopee_orders", n)
	return nil
}
