package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/AngelCh415/adspend/internal/models"
)

// ReadFile loads an ad-platform export (.csv, .tsv, .xlsx) into raw rows.
// The first row is the header.
func ReadFile(path string) ([]models.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, 0)
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: open %s", path)
		}
		defer f.Close()
		rows, err := ReadCSV(f)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read %s", path)
		}
		return rows, nil
	}
	return nil, eris.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
}

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadCSV parses delimited text. The delimiter is sniffed from the header
// line among ',', ';' and tab; French exports commonly use ';'.
func ReadCSV(r io.Reader) ([]models.RawRow, error) {
	br := bufio.NewReader(r)
	if b, _ := br.Peek(len(utf8BOM)); bytes.Equal(b, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, eris.Wrap(err, "csv: skip bom")
		}
	}
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, eris.Wrap(err, "csv: peek header")
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read records")
	}
	return fromRecords(records), nil
}

// ReadXLSX reads one sheet of a workbook.
func ReadXLSX(path string, sheet int) ([]models.RawRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if sheet >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", sheet, len(f.Sheets))
	}
	var records [][]string
	for _, row := range f.Sheets[sheet].Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, cells)
	}
	return fromRecords(records), nil
}

func sniffDelimiter(head []byte) rune {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	best, count := ',', bytes.Count(line, []byte(","))
	for _, d := range []rune{';', '\t'} {
		if c := bytes.Count(line, []byte(string(d))); c > count {
			best, count = d, c
		}
	}
	return best
}

// fromRecords turns a header plus data records into raw rows. Blank
// headers are named column_N; blank cells are null.
func fromRecords(records [][]string) []models.RawRow {
	if len(records) == 0 {
		return nil
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		header[i] = h
	}

	out := make([]models.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		var row models.RawRow
		for i, h := range header {
			v := models.Null()
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				v = models.String(rec[i])
			}
			row.Set(h, v)
		}
		out = append(out, row)
	}
	return out
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
