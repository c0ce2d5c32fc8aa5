package imports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an Excel workbook with the same
// header contract as ParseCSV.
func ParseXLSX(r io.Reader) ([]Row, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, HeaderError{Message: fmt.Sprintf("unable to open workbook: %v", err)}
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, HeaderError{Message: "workbook has no sheets"}
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, HeaderError{Message: fmt.Sprintf("unable to read sheet %q: %v", sheets[0], err)}
	}
	if len(records) == 0 {
		return nil, HeaderError{Message: "file is empty"}
	}
	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}
	var rows []Row
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, rowFromRecord(record, cols, i+2))
	}
	return rows, nil
}
