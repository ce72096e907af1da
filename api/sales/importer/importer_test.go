package importer

import (
	"testing"
	"time"

	"SalesOpsHub/api/sales/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dateSpan must scan dates without materializing rows, and each pass
// must re-open the source from the top.
func TestOrderStreamDateSpan(t *testing.T) {
	recs := []Record{
		{"d": "2026-03-05"},
		{"d": ""},
		{"d": "2026-03-01"},
		{"d": "2026-03-03"},
	}
	extract := func(rec Record) (*models.Order, string) {
		v := rec.Get("d")
		if v == "" {
			return nil, "missing date"
		}
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, "bad date"
		}
		return &models.Order{OrderDate: d}, ""
	}

	opens := 0
	s := &orderStream{
		open: func() (RowReader, error) {
			opens++
			return newSliceRows(recs), nil
		},
		extract: extract,
		region:  "us",
	}

	min, max, found, err := s.dateSpan()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2026-03-01", min.Format("2006-01-02"))
	assert.Equal(t, "2026-03-05", max.Format("2006-01-02"))

	min, max, found, err = s.dateSpan()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2026-03-01", min.Format("2006-01-02"))
	assert.Equal(t, "2026-03-05", max.Format("2006-01-02"))
	assert.Equal(t, 2, opens)
}

func TestOrderStreamDateSpanEmpty(t *testing.T) {
	s := &orderStream{
		open:    func() (RowReader, error) { return newSliceRows(nil), nil },
		extract: func(rec Record) (*models.Order, string) { return nil, "" },
	}
	_, _, found, err := s.dateSpan()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOrderCopySource(t *testing.T) {
	ch := make(chan []interface{}, 2)
	ch <- []interface{}{"a", 1}
	ch <- []interface{}{"b", 2}
	close(ch)

	src := &orderCopySource{ch: ch}
	require.True(t, src.Next())
	vals, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", 1}, vals)

	require.True(t, src.Next())
	vals, err = src.Values()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b", 2}, vals)

	assert.False(t, src.Next())
	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

// A file that names its report date replaces that whole day even when
// it yields no rows; undated files fall back to the scanned span.
func TestRawDeleteSpan(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	min, max, ok := rawDeleteSpan(&day, time.Time{}, time.Time{}, false)
	require.True(t, ok)
	assert.Equal(t, day, min)
	assert.Equal(t, day, max)

	lo := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	min, max, ok = rawDeleteSpan(nil, lo, hi, true)
	require.True(t, ok)
	assert.Equal(t, lo, min)
	assert.Equal(t, hi, max)

	_, _, ok = rawDeleteSpan(nil, time.Time{}, time.Time{}, false)
	assert.False(t, ok)
}
