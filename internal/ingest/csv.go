package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("ingest: input has no header row")

// ReadCSV decodes a ticket export CSV into raw header-keyed rows. The
// tracker exports files as ISO-8859-1; UTF-8 input passes through
// untouched. The field delimiter is sniffed from the header row since
// exports alternate between comma and semicolon.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if decErr != nil {
			return nil, decErr
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return RowsFromRecords(records)
}

// RowsFromRecords pairs a header row with the data rows that follow,
// skipping fully empty lines.
func RowsFromRecords(records [][]string) ([]map[string]string, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := records[0]

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sniffDelimiter(raw []byte) rune {
	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}
	if bytes.ContainsRune(line, ';') && !bytes.ContainsRune(line, ',') {
		return ';'
	}
	return ','
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
