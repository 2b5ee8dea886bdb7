package ingest

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadExcel decodes the first sheet of an XLSX workbook into raw
// header-keyed rows, mirroring ReadCSV.
func ReadExcel(r io.Reader) ([]map[string]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("ingest: workbook has no sheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return RowsFromRecords(records)
}
