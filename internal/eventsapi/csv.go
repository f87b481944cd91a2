package eventsapi

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PreValidateCSV checks a participant CSV against the same row rules the
// server applies (name and email required, headers matched after trimming
// and lowercasing) so problems surface before the upload. Row numbers match
// the file: the header is row 1, the first data row is row 2.
func PreValidateCSV(r io.Reader) (totalRows int, rowErrs []RowError, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return 0, nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return 0, nil, fmt.Errorf("reading csv header: %w", err)
	}

	nameCol, emailCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if nameCol < 0 || emailCol < 0 {
		return 0, nil, fmt.Errorf("csv must have name and email columns")
	}

	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Reason: "unreadable row"})
			totalRows++
			continue
		}
		totalRows++
		name := cell(rec, nameCol)
		email := cell(rec, emailCol)
		switch {
		case name == "" && email == "":
			rowErrs = append(rowErrs, RowError{Row: row, Reason: "missing name and email"})
		case name == "":
			rowErrs = append(rowErrs, RowError{Row: row, Reason: "missing name"})
		case email == "":
			rowErrs = append(rowErrs, RowError{Row: row, Reason: "missing email"})
		case !strings.Contains(email, "@"):
			rowErrs = append(rowErrs, RowError{Row: row, Reason: "invalid email"})
		}
	}
	return totalRows, rowErrs, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
