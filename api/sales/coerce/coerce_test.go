package coerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	def := decimal.NewFromInt(7)

	d := Decimal("1,234.50", &def)
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.50")))

	d = Decimal("$99.99", &def)
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("99.99")))

	for _, blank := range []string{"", "-", "#DIV/0!", "\t"} {
		d = Decimal(blank, &def)
		require.NotNil(t, d, "value %q", blank)
		assert.True(t, d.Equal(def), "value %q", blank)
	}

	assert.Nil(t, Decimal("", nil))
	assert.Nil(t, Decimal("not a number", nil))
}

func TestDecimalOrZero(t *testing.T) {
	assert.True(t, DecimalOrZero("").IsZero())
	assert.True(t, DecimalOrZero("3.14").Equal(decimal.RequireFromString("3.14")))
}

func TestDate(t *testing.T) {
	cases := map[string]string{
		"2026-03-14":             "2026-03-14",
		"2026-03-14 18:30:00":    "2026-03-14",
		"3/14/2026":              "2026-03-14",
		"3/14/2026 6:30:00 PM":   "2026-03-14",
		"3/14/2026 18:30:00":     "2026-03-14",
		"14-03-2026 18:30":       "2026-03-14",
		"14-03-2026":             "2026-03-14",
		"2026-03-14 18:30:00 +09:00": "2026-03-14",
		"3/14/2026 18:30:00 -0500":   "2026-03-14",
	}
	for in, want := range cases {
		got := Date(in)
		require.NotNil(t, got, "value %q", in)
		assert.Equal(t, want, got.Format("2006-01-02"), "value %q", in)
		assert.Equal(t, time.UTC, got.Location())
		assert.Equal(t, 0, got.Hour())
	}

	assert.Nil(t, Date(""))
	assert.Nil(t, Date("yesterday"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "DR-001", String("\tDR-001 ", "x"))
	assert.Equal(t, "fallback", String("  \t ", "fallback"))
}

func TestInt(t *testing.T) {
	assert.Equal(t, 12, Int("12.0", 0))
	assert.Equal(t, 1200, Int("1,200", 0))
	assert.Equal(t, 5, Int("", 5))
	assert.Equal(t, 5, Int("n/a", 5))
}
