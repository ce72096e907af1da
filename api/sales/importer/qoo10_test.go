package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQoo10Row(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	o, reason := ExtractQoo10Row(Record{
		"상품번호":          "883001122",
		"브랜드명":          "drblet/ドクターブレット",
		"상품명":           "トラブルパッチ",
		"판매자상품코드":    "DR-JP-01",
		"거래금액":          "3,000",
		"거래취소금액":      "500",
		"취소분반영 거래금액": "2,500",
		"취소분반영 거래상품수량": "2",
	}, date)
	require.NotNil(t, o, reason)
	assert.Equal(t, "883001122", o.OrderID)
	assert.Equal(t, "닥터블릿", o.Brand) // first slash segment through the alias table
	assert.Equal(t, "Transaction", o.OrderStatus)
	assert.Equal(t, "2026-03-14", o.OrderDate.Format("2006-01-02"))
	assert.Equal(t, 2, o.Quantity)
	require.NotNil(t, o.FinalAmount)
	assert.True(t, o.FinalAmount.Equal(decimal.NewFromInt(2500)))
	require.NotNil(t, o.OrderAmount)
	assert.True(t, o.OrderAmount.Equal(decimal.NewFromInt(3000)))
	require.NotNil(t, o.RefundAmount)
	assert.True(t, o.RefundAmount.Equal(decimal.NewFromInt(500)))
}

func TestExtractQoo10RowUnknownBrandPassesThrough(t *testing.T) {
	o, _ := ExtractQoo10Row(Record{
		"상품번호": "1",
		"브랜드명": "somebrand/その他",
	}, time.Now())
	require.NotNil(t, o)
	assert.Equal(t, "somebrand", o.Brand)
}

func TestExtractQoo10RowSkipsWithoutProductID(t *testing.T) {
	o, reason := ExtractQoo10Row(Record{"브랜드명": "drblet"}, time.Now())
	assert.Nil(t, o)
	assert.Equal(t, "missing product id", reason)
}
