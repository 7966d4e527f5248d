package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the parsed form of an uploaded spreadsheet: named sheets in
// file order, each sheet an ordered list of header->value rows. The import
// policies below work on this shape only, never on excelize directly.
type Workbook struct {
	Sheets []Sheet
}

type Sheet struct {
	Name string
	Rows []Row
}

// ErrEmptyWorkbook is returned when the file parses but holds no data rows.
var ErrEmptyWorkbook = fmt.Errorf("spreadsheet contains no data rows")

// ReadWorkbook parses an .xlsx file into a Workbook. The first row of each
// sheet is taken as the header row; sheets without a header are skipped.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read spreadsheet: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", sheetName, err)
		}
		if len(rows) < 2 {
			// No header or no data rows
			continue
		}

		headers := rows[0]
		sheet := Sheet{Name: sheetName}
		for _, raw := range rows[1:] {
			if isBlankRow(raw) {
				continue
			}
			row := make(Row, len(headers))
			for i, h := range headers {
				h = strings.TrimSpace(h)
				if h == "" {
					continue
				}
				if i < len(raw) {
					row[h] = raw[i]
				} else {
					row[h] = ""
				}
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		if len(sheet.Rows) > 0 {
			wb.Sheets = append(wb.Sheets, sheet)
		}
	}

	if len(wb.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return wb, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// TotalRows counts data rows across every sheet.
func (wb *Workbook) TotalRows() int {
	total := 0
	for _, s := range wb.Sheets {
		total += len(s.Rows)
	}
	return total
}
