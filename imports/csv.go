// Package imports converts contact data between the wire formats the
// console accepts (CSV, XLSX) and contact rows.
package imports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/omnirelay/console/model"
)

// ExportHeader is the fixed column order of contact exports.
var ExportHeader = []string{"First Name", "Last Name", "Email", "Phone", "WhatsApp", "Status"}

// HeaderError means the file cannot be imported at all; no row has been
// processed when it is returned.
type HeaderError struct {
	Message string
}

func (e HeaderError) Error() string {
	return e.Message
}

// Row is one data line of an import file. Line is the 1-based line
// number in the source file, counting the header.
type Row struct {
	Line      int
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Whatsapp  string
	Status    string
}

// WriteCSV writes the export: one header line plus one line per
// contact. encoding/csv quotes fields containing commas.
func WriteCSV(w io.Writer, contacts []model.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, c := range contacts {
		record := []string{c.FirstName, c.LastName, c.Email, c.Phone, c.Whatsapp, string(c.Status)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads an import file. A missing "First Name" header fails
// the whole file with HeaderError. Blank lines are skipped; every other
// line becomes a Row, valid or not, so the caller can report bad rows
// by line number.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, HeaderError{Message: "file is empty"}
	}
	if err != nil {
		return nil, HeaderError{Message: fmt.Sprintf("unable to read header row: %v", err)}
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, HeaderError{Message: fmt.Sprintf("unable to read line %d: %v", line, err)}
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, rowFromRecord(record, cols, line))
	}
	return rows, nil
}

// columnMap locates each known column in the header; -1 means absent.
type columnMap struct {
	firstName int
	lastName  int
	email     int
	phone     int
	whatsapp  int
	status    int
}

func mapHeader(header []string) (columnMap, error) {
	cols := columnMap{firstName: -1, lastName: -1, email: -1, phone: -1, whatsapp: -1, status: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "first name", "firstname":
			cols.firstName = i
		case "last name", "lastname":
			cols.lastName = i
		case "email":
			cols.email = i
		case "phone":
			cols.phone = i
		case "whatsapp":
			cols.whatsapp = i
		case "status":
			cols.status = i
		}
	}
	if cols.firstName == -1 {
		return cols, HeaderError{Message: `missing required "First Name" header`}
	}
	return cols, nil
}

func rowFromRecord(record []string, cols columnMap, line int) Row {
	return Row{
		Line:      line,
		FirstName: field(record, cols.firstName),
		LastName:  field(record, cols.lastName),
		Email:     field(record, cols.email),
		Phone:     field(record, cols.phone),
		Whatsapp:  field(record, cols.whatsapp),
		Status:    field(record, cols.status),
	}
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
