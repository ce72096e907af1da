package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Grid is a fully-materialized positional sheet: rows of cells addressed
// by index, the way the hand-maintained workbook sheets are laid out.
// Extractors over a Grid never see the reader that produced it, which is
// what lets the tests feed literal cell grids.
type Grid struct {
	Name string
	rows [][]string
}

func NewGrid(name string, rows [][]string) *Grid {
	return &Grid{Name: name, rows: rows}
}

func (g *Grid) RowCount() int { return len(g.rows) }

// Width returns the widest row; workbook readers trim trailing empties
// per row, so layout validation uses the maximum.
func (g *Grid) Width() int {
	w := 0
	for _, r := range g.rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Cell returns the cell at (row, col), or "" when the row is ragged.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) {
		return ""
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Workbook wraps an open XLSX workbook.
type Workbook struct {
	f *excelize.File
}

func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error { return w.f.Close() }

func (w *Workbook) SheetNames() []string { return w.f.GetSheetList() }

func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Grid materializes one sheet. GetRows returns formatted cell values, so
// date and number cells come back as display strings for the coercion
// layer to parse.
func (w *Workbook) Grid(sheet string) (*Grid, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return NewGrid(sheet, rows), nil
}

// Record is one header-addressed row of a flat export file. Get tries the
// given header names in order and returns the first non-empty value,
// which is how the "primary field, else secondary" fallbacks are spelled.
type Record map[string]string

func (r Record) Get(names ...string) string {
	for _, n := range names {
		if v, ok := r[n]; ok && v != "" {
			return v
		}
	}
	return ""
}

// RowReader streams header-addressed rows from a flat export file. Flat
// raw dumps can be large, so rows are never materialized in bulk; the
// importer runs a reader once per pass (date scan, then write).
type RowReader interface {
	Next() (Record, error) // io.EOF when exhausted
	Close() error
}

// OpenRows opens a flat export file as a RowReader, by extension:
// .csv via encoding/csv, .xlsx via excelize's streaming row iterator,
// .xls via extrame/xls. The first row is the header.
func OpenRows(path string) (RowReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return openCSVRows(path)
	case ".xlsx":
		return openXLSXRows(path)
	case ".xls":
		return openXLSRows(path)
	default:
		return nil, fmt.Errorf("unsupported raw file type: %s", filepath.Base(path))
	}
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.ReplaceAll(h, "\t", ""))
}

type csvRows struct {
	f      *os.File
	r      *csv.Reader
	header []string
}

func openCSVRows(path string) (*csvRows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header of %s: %w", filepath.Base(path), err)
	}
	// exports come with a UTF-8 BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = cleanHeader(header[i])
	}
	return &csvRows{f: f, r: r, header: header}, nil
}

func (c *csvRows) Next() (Record, error) {
	fields, err := c.r.Read()
	if err != nil {
		return nil, err
	}
	rec := make(Record, len(c.header))
	for i, h := range c.header {
		if i < len(fields) {
			rec[h] = fields[i]
		}
	}
	return rec, nil
}

func (c *csvRows) Close() error { return c.f.Close() }

type xlsxRows struct {
	f      *excelize.File
	rows   *excelize.Rows
	header []string
}

func openXLSXRows(path string) (*xlsxRows, error) {
	return openXLSXSheetRows(path, "")
}

// openXLSXSheetRows streams a named sheet, or the first sheet when name
// is empty.
func openXLSXSheetRows(path, sheet string) (*xlsxRows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s sheet %s: %w", filepath.Base(path), sheet, err)
	}
	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("%s: empty sheet %s", filepath.Base(path), sheet)
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}
	for i := range header {
		header[i] = cleanHeader(header[i])
	}
	return &xlsxRows{f: f, rows: rows, header: header}, nil
}

func (x *xlsxRows) Next() (Record, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	cols, err := x.rows.Columns()
	if err != nil {
		return nil, err
	}
	rec := make(Record, len(x.header))
	for i, h := range x.header {
		if i < len(cols) {
			rec[h] = cols[i]
		}
	}
	return rec, nil
}

func (x *xlsxRows) Close() error {
	x.rows.Close()
	return x.f.Close()
}

// xlsRows adapts a legacy BIFF workbook. extrame/xls materializes the
// sheet, so this path is only as large as the old-format files ever get.
type xlsRows struct {
	header []string
	rows   [][]string
	pos    int
}

func openXLSRows(path string) (*xlsRows, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%s: no sheets", filepath.Base(path))
	}
	var all [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			all = append(all, nil)
			continue
		}
		var cells []string
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		all = append(all, cells)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: empty sheet", filepath.Base(path))
	}
	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = cleanHeader(h)
	}
	return &xlsRows{header: header, rows: all[1:]}, nil
}

func (x *xlsRows) Next() (Record, error) {
	if x.pos >= len(x.rows) {
		return nil, io.EOF
	}
	cols := x.rows[x.pos]
	x.pos++
	rec := make(Record, len(x.header))
	for i, h := range x.header {
		if i < len(cols) {
			rec[h] = cols[i]
		}
	}
	return rec, nil
}

func (x *xlsRows) Close() error { return nil }

// sliceRows is an in-memory RowReader used by the extractor tests.
type sliceRows struct {
	recs []Record
	pos  int
}

func newSliceRows(recs []Record) *sliceRows { return &sliceRows{recs: recs} }

func (s *sliceRows) Next() (Record, error) {
	if s.pos >= len(s.recs) {
		return nil, io.EOF
	}
	r := s.recs[s.pos]
	s.pos++
	return r, nil
}

func (s *sliceRows) Close() error { return nil }
