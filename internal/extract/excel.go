package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/briefpipe/internal/models"
)

// extractSpreadsheet produces one page per sheet, each page a tab-delimited
// dump prefixed with the sheet name. CSV files are a single sheet named after
// the file. A sheet whose rows cannot be read degrades to a placeholder page.
func extractSpreadsheet(fileName string, content []byte) ([]models.Page, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return extractCSV(fileName, content)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	var pages []models.Page
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			pages = append(pages, models.Page{Text: fmt.Sprintf("[Sheet %s: extraction failed]", sheet)})
			continue
		}
		var b strings.Builder
		b.WriteString("Sheet: " + sheet + "\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		pages = append(pages, models.Page{Text: strings.TrimSpace(b.String())})
	}
	return pages, nil
}

// extractCSV dumps CSV content as one sheet page. Ragged rows are allowed.
func extractCSV(fileName string, content []byte) ([]models.Page, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	sheet := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	var b strings.Builder
	b.WriteString("Sheet: " + sheet + "\n")
	for _, row := range records {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return []models.Page{{Text: strings.TrimSpace(b.String())}}, nil
}
