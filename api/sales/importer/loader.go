package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"SalesOpsHub/api/sales/models"
	"SalesOpsHub/internal/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Loader is the only writer of the normalized tables. All writes for one
// input file happen inside a single transaction, so a mid-file failure
// leaves prior state unchanged.
type Loader struct {
	pool *pgxpool.Pool
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// LoadTx is one file's transaction. Natural-key upserts are queued on a
// pgx.Batch and flushed every config.BatchSize statements to bound round
// trips and memory.
type LoadTx struct {
	tx     pgx.Tx
	batch  *pgx.Batch
	region string
}

// Begin opens the import transaction and takes a per-region advisory
// lock, serializing overlapping imports for the same region. The lock
// releases with the transaction.
func (l *Loader) Begin(ctx context.Context, region string) (*LoadTx, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import tx: %w", err)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('sales_import'), hashtext($1))`, region); err != nil {
		tx.Rollback(ctx)
		return nil, fmt.Errorf("acquire region lock for %s: %w", region, err)
	}
	return &LoadTx{tx: tx, batch: &pgx.Batch{}, region: region}, nil
}

func (t *LoadTx) queue(ctx context.Context, sql string, args ...interface{}) error {
	t.batch.Queue(sql, args...)
	if t.batch.Len() >= config.BatchSize {
		return t.Flush(ctx)
	}
	return nil
}

// Flush sends the pending batch.
func (t *LoadTx) Flush(ctx context.Context) error {
	if t.batch.Len() == 0 {
		return nil
	}
	br := t.tx.SendBatch(ctx, t.batch)
	var firstErr error
	for i := 0; i < t.batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := br.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	t.batch = &pgx.Batch{}
	return firstErr
}

func (t *LoadTx) Commit(ctx context.Context) error {
	if err := t.Flush(ctx); err != nil {
		t.tx.Rollback(ctx)
		return err
	}
	return t.tx.Commit(ctx)
}

func (t *LoadTx) Rollback(ctx context.Context) {
	t.tx.Rollback(ctx)
}

// decArg renders a nullable decimal for a numeric column; nil stays NULL.
func decArg(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func (t *LoadTx) UpsertExchangeRate(ctx context.Context, r models.ExchangeRate) error {
	return t.queue(ctx, `
		INSERT INTO exchange_rates (region, year, month, rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (region, year, month) DO UPDATE SET rate = EXCLUDED.rate`,
		r.Region, r.Year, r.Month, r.Rate.String())
}

// EnsureBrand is get-or-create: imports never rename or delete brands.
func (t *LoadTx) EnsureBrand(ctx context.Context, b models.Brand) error {
	return t.queue(ctx, `
		INSERT INTO brands (region, code, name, name_kr)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (region, code) DO NOTHING`,
		b.Region, b.Code, b.Name, b.NameKR)
}

func (t *LoadTx) UpsertDailyTotal(ctx context.Context, r models.DailySalesTotal) error {
	return t.queue(ctx, `
		INSERT INTO daily_sales_total (date, region, year, month, gmv, gsv, cogs,
			total_expense, performance_ad, influencer_ad, sales_commission,
			shipping, tax, operating_profit, operating_margin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (date, region) DO UPDATE SET
			year = EXCLUDED.year, month = EXCLUDED.month,
			gmv = EXCLUDED.gmv, gsv = EXCLUDED.gsv, cogs = EXCLUDED.cogs,
			total_expense = EXCLUDED.total_expense,
			performance_ad = EXCLUDED.performance_ad,
			influencer_ad = EXCLUDED.influencer_ad,
			sales_commission = EXCLUDED.sales_commission,
			shipping = EXCLUDED.shipping, tax = EXCLUDED.tax,
			operating_profit = EXCLUDED.operating_profit,
			operating_margin = EXCLUDED.operating_margin`,
		r.Date, r.Region, r.Year, r.Month, r.GMV.String(), r.GSV.String(), r.COGS.String(),
		r.TotalExpense.String(), r.PerformanceAd.String(), r.InfluencerAd.String(),
		r.SalesCommission.String(), r.Shipping.String(), r.Tax.String(),
		r.OperatingProfit.String(), decArg(r.OperatingMargin))
}

func (t *LoadTx) UpsertDailyB2B(ctx context.Context, r models.DailySalesB2B) error {
	return t.queue(ctx, `
		INSERT INTO daily_sales_b2b (date, region, year, month, sales_total,
			sales_us, cogs, total_expense, shipping, tax, operating_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (date, region) DO UPDATE SET
			year = EXCLUDED.year, month = EXCLUDED.month,
			sales_total = EXCLUDED.sales_total, sales_us = EXCLUDED.sales_us,
			cogs = EXCLUDED.cogs, total_expense = EXCLUDED.total_expense,
			shipping = EXCLUDED.shipping, tax = EXCLUDED.tax,
			operating_profit = EXCLUDED.operating_profit`,
		r.Date, r.Region, r.Year, r.Month, r.SalesTotal.String(), r.SalesUS.String(),
		r.COGS.String(), r.TotalExpense.String(), r.Shipping.String(), r.Tax.String(),
		r.OperatingProfit.String())
}

// b2cChannelColumns is the closed channel set of daily_sales_b2c. The
// extractor populates only the region's channels; the rest stay zero.
var b2cChannelColumns = []string{"shopify", "amazon", "tiktok", "shopee", "qoo10"}

func channelAmounts(chs []models.ChannelAmount) (sales, refunds map[string]string) {
	sales = map[string]string{}
	refunds = map[string]string{}
	for _, col := range b2cChannelColumns {
		sales[col] = "0"
		refunds[col] = "0"
	}
	for _, ch := range chs {
		sales[ch.Channel] = ch.Sales.String()
		refunds[ch.Channel] = ch.Refund.String()
	}
	return sales, refunds
}

func (t *LoadTx) UpsertDailyB2C(ctx context.Context, r models.DailySalesB2C) error {
	sales, refunds := channelAmounts(r.Channels)
	return t.queue(ctx, `
		INSERT INTO daily_sales_b2c (date, region, year, month, b2c_total,
			shopify, amazon, tiktok, shopee, qoo10,
			refund_shopify, refund_amazon, refund_tiktok, refund_shopee, refund_qoo10,
			refund_total, gsv, cogs, total_expense, performance_ad, influencer_ad,
			sales_commission, shipping, tax, operating_profit, operating_margin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT (date, region) DO UPDATE SET
			year = EXCLUDED.year, month = EXCLUDED.month,
			b2c_total = EXCLUDED.b2c_total,
			shopify = EXCLUDED.shopify, amazon = EXCLUDED.amazon,
			tiktok = EXCLUDED.tiktok, shopee = EXCLUDED.shopee, qoo10 = EXCLUDED.qoo10,
			refund_shopify = EXCLUDED.refund_shopify,
			refund_amazon = EXCLUDED.refund_amazon,
			refund_tiktok = EXCLUDED.refund_tiktok,
			refund_shopee = EXCLUDED.refund_shopee,
			refund_qoo10 = EXCLUDED.refund_qoo10,
			refund_total = EXCLUDED.refund_total, gsv = EXCLUDED.gsv,
			cogs = EXCLUDED.cogs, total_expense = EXCLUDED.total_expense,
			performance_ad = EXCLUDED.performance_ad,
			influencer_ad = EXCLUDED.influencer_ad,
			sales_commission = EXCLUDED.sales_commission,
			shipping = EXCLUDED.shipping, tax = EXCLUDED.tax,
			operating_profit = EXCLUDED.operating_profit,
			operating_margin = EXCLUDED.operating_margin`,
		r.Date, r.Region, r.Year, r.Month, r.B2CTotal.String(),
		sales["shopify"], sales["amazon"], sales["tiktok"], sales["shopee"], sales["qoo10"],
		refunds["shopify"], refunds["amazon"], refunds["tiktok"], refunds["shopee"], refunds["qoo10"],
		r.RefundTotal.String(), r.GSV.String(), r.COGS.String(), r.TotalExpense.String(),
		r.PerformanceAd.String(), r.InfluencerAd.String(), r.SalesCommission.String(),
		r.Shipping.String(), r.Tax.String(), r.OperatingProfit.String(),
		decArg(r.OperatingMargin))
}

func brandChannelAmounts(chs []models.BrandChannelAmount) (sales, refunds, ads map[string]string) {
	sales = map[string]string{}
	refunds = map[string]string{}
	ads = map[string]string{}
	for _, col := range b2cChannelColumns {
		sales[col] = "0"
		refunds[col] = "0"
		ads[col] = "0"
	}
	for _, ch := range chs {
		sales[ch.Channel] = ch.Sales.String()
		refunds[ch.Channel] = ch.Refund.String()
		ads[ch.Channel] = ch.Ad.String()
	}
	return sales, refunds, ads
}

func (t *LoadTx) UpsertBrandDaily(ctx context.Context, r models.BrandDailySales) error {
	sales, refunds, ads := brandChannelAmounts(r.Channels)
	return t.queue(ctx, `
		INSERT INTO brand_daily_sales (date, brand_code, region, year, month,
			b2c_shopify, b2c_amazon, b2c_tiktok, b2c_shopee, b2c_qoo10, b2c_total,
			refund_shopify, refund_amazon, refund_tiktok, refund_shopee, refund_qoo10,
			refund_total, gsv, b2b_us, b2b_total, total_gsv,
			ad_shopify, ad_amazon, ad_tiktok, ad_shopee, ad_qoo10)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT (date, brand_code, region) DO UPDATE SET
			year = EXCLUDED.year, month = EXCLUDED.month,
			b2c_shopify = EXCLUDED.b2c_shopify, b2c_amazon = EXCLUDED.b2c_amazon,
			b2c_tiktok = EXCLUDED.b2c_tiktok, b2c_shopee = EXCLUDED.b2c_shopee,
			b2c_qoo10 = EXCLUDED.b2c_qoo10, b2c_total = EXCLUDED.b2c_total,
			refund_shopify = EXCLUDED.refund_shopify,
			refund_amazon = EXCLUDED.refund_amazon,
			refund_tiktok = EXCLUDED.refund_tiktok,
			refund_shopee = EXCLUDED.refund_shopee,
			refund_qoo10 = EXCLUDED.refund_qoo10,
			refund_total = EXCLUDED.refund_total, gsv = EXCLUDED.gsv,
			b2b_us = EXCLUDED.b2b_us, b2b_total = EXCLUDED.b2b_total,
			total_gsv = EXCLUDED.total_gsv,
			ad_shopify = EXCLUDED.ad_shopify, ad_amazon = EXCLUDED.ad_amazon,
			ad_tiktok = EXCLUDED.ad_tiktok, ad_shopee = EXCLUDED.ad_shopee,
			ad_qoo10 = EXCLUDED.ad_qoo10`,
		r.Date, r.BrandCode, r.Region, r.Year, r.Month,
		sales["shopify"], sales["amazon"], sales["tiktok"], sales["shopee"], sales["qoo10"],
		r.B2CTotal.String(),
		refunds["shopify"], refunds["amazon"], refunds["tiktok"], refunds["shopee"], refunds["qoo10"],
		r.RefundTotal.String(), r.GSV.String(), r.B2BUS.String(), r.B2BTotal.String(),
		r.TotalGSV.String(),
		ads["shopify"], ads["amazon"], ads["tiktok"], ads["shopee"], ads["qoo10"])
}

func (t *LoadTx) UpsertTaxByState(ctx context.Context, r models.TaxByState) error {
	return t.queue(ctx, `
		INSERT INTO tax_by_state (region, state_code, year, month, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (region, state_code, year, month) DO UPDATE SET
			amount = EXCLUDED.amount`,
		r.Region, r.StateCode, r.Year, r.Month, r.Amount.String())
}

// orderTables maps a platform to its raw table and the column subset that
// table persists.
var orderTables = map[string]struct {
	table   string
	columns []string
	values  func(o *models.Order) []interface{}
}{
	"shopify": {
		table: "shopify_orders",
		columns: []string{"region", "brand", "final_amount", "order_date",
			"order_name", "email", "financial_status", "subtotal",
			"shipping_cost", "taxes", "total", "discount_code",
			"discount_amount", "lineitem_quantity", "lineitem_name",
			"lineitem_price", "lineitem_sku", "shipping_city",
			"shipping_province", "shipping_country", "shipping_zip"},
		values: func(o *models.Order) []interface{} {
			return []interface{}{o.Region, o.Brand, decArg(o.FinalAmount), o.OrderDate,
				o.OrderID, o.Email, o.FinancialStatus, decArg(o.Subtotal),
				decArg(o.ShippingCost), decArg(o.Taxes), decArg(o.Total), o.DiscountCode,
				decArg(o.DiscountAmount), o.LineitemQuantity, o.LineitemName,
				decArg(o.LineitemPrice), o.LineitemSKU, o.ShippingCity,
				o.ShippingProvince, o.ShippingCountry, o.ShippingZip}
		},
	},
	"tiktok": {
		table: "tiktok_orders",
		columns: []string{"region", "brand", "final_amount", "order_date",
			"cancel_date", "order_id", "order_status", "seller_sku",
			"product_name", "quantity", "unit_price", "order_amount",
			"refund_amount", "shipping_state", "shipping_city",
			"shipping_country"},
		values: func(o *models.Order) []interface{} {
			return []interface{}{o.Region, o.Brand, decArg(o.FinalAmount), o.OrderDate,
				timeArg(o.CancelDate), o.OrderID, o.OrderStatus, o.SellerSKU,
				o.ProductName, o.Quantity, decArg(o.UnitPrice), decArg(o.OrderAmount),
				decArg(o.RefundAmount), o.ShippingState, o.ShippingCity,
				o.ShippingCountry}
		},
	},
	"shopee": {
		table:   "shopee_orders",
		columns: marketplaceOrderColumns,
		values:  marketplaceOrderValues,
	},
	"qoo10": {
		table:   "qoo10_orders",
		columns: marketplaceOrderColumns,
		values:  marketplaceOrderValues,
	},
}

var marketplaceOrderColumns = []string{"region", "brand", "final_amount",
	"order_date", "order_id", "order_status", "product_name", "seller_sku",
	"quantity", "unit_price", "order_amount", "refund_amount", "buyer_country"}

func marketplaceOrderValues(o *models.Order) []interface{} {
	return []interface{}{o.Region, o.Brand, decArg(o.FinalAmount), o.OrderDate,
		o.OrderID, o.OrderStatus, o.ProductName, o.SellerSKU, o.Quantity,
		decArg(o.UnitPrice), decArg(o.OrderAmount), decArg(o.RefundAmount),
		o.BuyerCountry}
}

func timeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// DeleteOrderRange deletes the region's raw rows whose order date falls
// in [min, max], the delete half of range-replace.
func (t *LoadTx) DeleteOrderRange(ctx context.Context, platform string, min, max time.Time) (int64, error) {
	tbl, ok := orderTables[platform]
	if !ok {
		return 0, fmt.Errorf("unknown order platform %q", platform)
	}
	// Flush pending statements so the delete orders after them.
	if err := t.Flush(ctx); err != nil {
		return 0, err
	}
	tag, err := t.tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE region = $1 AND order_date >= $2 AND order_date <= $3`, tbl.table),
		t.region, min, max)
	if err != nil {
		return 0, fmt.Errorf("clear %s %s..%s: %w", tbl.table, min.Format("2006-01-02"), max.Format("2006-01-02"), err)
	}
	return tag.RowsAffected(), nil
}

// InsertOrders bulk-inserts raw order rows via CopyFrom, flushed in
// config.BatchSize slices so a large file never materializes as one
// copy buffer.
func (t *LoadTx) InsertOrders(ctx context.Context, platform string, orders []models.Order) (int, error) {
	tbl, ok := orderTables[platform]
	if !ok {
		return 0, fmt.Errorf("unknown order platform %q", platform)
	}
	if err := t.Flush(ctx); err != nil {
		return 0, err
	}
	written := 0
	for start := 0; start < len(orders); start += config.BatchSize {
		end := start + config.BatchSize
		if end > len(orders) {
			end = len(orders)
		}
		chunk := orders[start:end]
		rows := make([][]interface{}, len(chunk))
		for i := range chunk {
			rows[i] = tbl.values(&chunk[i])
		}
		n, err := t.tx.CopyFrom(ctx, pgx.Identifier{tbl.table}, tbl.columns, pgx.CopyFromRows(rows))
		if err != nil {
			return written, fmt.Errorf("bulk insert %s: %w", tbl.table, err)
		}
		written += int(n)
	}
	return written, nil
}

// orderCopySource feeds pgx.CopyFrom from a channel so a producer can
// stream rows without ever holding the whole file.
type orderCopySource struct {
	ch   <-chan []interface{}
	cur  []interface{}
	done bool
}

func (c *orderCopySource) Next() bool {
	if c.done {
		return false
	}
	row, ok := <-c.ch
	if !ok {
		c.done = true
		return false
	}
	c.cur = row
	return true
}

func (c *orderCopySource) Values() ([]interface{}, error) {
	return c.cur, nil
}

func (c *orderCopySource) Err() error { return nil }

// CopyOrders streams order rows into the platform table via CopyFrom.
// next yields one order per call and io.EOF when the source is
// exhausted; peak memory is one channel buffer, not the file.
func (t *LoadTx) CopyOrders(ctx context.Context, platform string, next func() (*models.Order, error)) (int, error) {
	tbl, ok := orderTables[platform]
	if !ok {
		return 0, fmt.Errorf("unknown order platform %q", platform)
	}
	if err := t.Flush(ctx); err != nil {
		return 0, err
	}

	ch := make(chan []interface{}, config.BatchSize)
	prodErr := make(chan error, 1)
	go func() {
		defer close(ch)
		for {
			o, err := next()
			if err == io.EOF {
				prodErr <- nil
				return
			}
			if err != nil {
				prodErr <- err
				return
			}
			ch <- tbl.values(o)
		}
	}()

	n, err := t.tx.CopyFrom(ctx, pgx.Identifier{tbl.table}, tbl.columns, &orderCopySource{ch: ch})
	if err != nil {
		for range ch {
		}
		<-prodErr
		return int(n), fmt.Errorf("bulk insert %s: %w", tbl.table, err)
	}
	if err := <-prodErr; err != nil {
		return int(n), err
	}
	return int(n), nil
}

// RecordBatch writes the per-invocation audit row.
func (t *LoadTx) RecordBatch(ctx context.Context, batchID uuid.UUID, source, fileName string, written, skipped int) error {
	return t.queue(ctx, `
		INSERT INTO import_batches (batch_id, region, source, file_name,
			records_written, records_skipped, status, imported_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'completed', $7)`,
		batchID, t.region, source, fileName, written, skipped, time.Now().UTC())
}

// ClearRegion wipes every imported table for the region; used by the
// workbook import's clear flag. Brands survive: they are configuration,
// not imported data.
func (t *LoadTx) ClearRegion(ctx context.Context) error {
	tables := []string{
		"daily_sales_total", "daily_sales_b2b", "daily_sales_b2c",
		"brand_daily_sales", "tax_by_state",
		"shopify_orders", "tiktok_orders", "shopee_orders", "qoo10_orders",
	}
	for _, table := range tables {
		if _, err := t.tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE region = $1`, table), t.region); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
