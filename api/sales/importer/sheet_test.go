package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRaggedCells(t *testing.T) {
	g := NewGrid("s", [][]string{
		{"a", "b", "c"},
		{"d"},
		nil,
	})
	assert.Equal(t, 3, g.RowCount())
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, "c", g.Cell(0, 2))
	assert.Equal(t, "", g.Cell(1, 2))
	assert.Equal(t, "", g.Cell(2, 0))
	assert.Equal(t, "", g.Cell(-1, 0))
	assert.Equal(t, "", g.Cell(5, 0))
}

func TestRecordGetFallback(t *testing.T) {
	rec := Record{"Paid at": "", "Created at": "2026-03-01", "Total": "10"}
	assert.Equal(t, "2026-03-01", rec.Get("Paid at", "Created at"))
	assert.Equal(t, "10", rec.Get("Total", "Subtotal"))
	assert.Equal(t, "", rec.Get("Missing", "Also Missing"))
}

func TestOpenRowsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders_export_1.csv")
	content := "\uFEFFName,\tVendor ,Total\n#1001,drblet,25.50\n#1002,eoa\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := OpenRows(path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "#1001", rec.Get("Name"))
	assert.Equal(t, "drblet", rec.Get("Vendor"))
	assert.Equal(t, "25.50", rec.Get("Total"))

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "#1002", rec.Get("Name"))
	assert.Equal(t, "", rec.Get("Total"))

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenRowsUnsupportedExtension(t *testing.T) {
	_, err := OpenRows("report.pdf")
	assert.Error(t, err)
}

func TestSliceRows(t *testing.T) {
	r := newSliceRows([]Record{{"a": "1"}, {"a": "2"}})
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", rec["a"])
	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", rec["a"])
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, r.Close())
}
