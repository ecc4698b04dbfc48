package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
)

// Sheet names for the workbook export. Full_Recon always comes first and
// carries every row unfiltered; each bucket gets its own sheet.
const (
	SheetFullRecon = "Full_Recon"
	SheetSuggested = "Suggested"
)

// sheetNameFor maps a status to its workbook sheet name
func sheetNameFor(status models.Status) string {
	switch status {
	case models.StatusMatched:
		return "Matched"
	case models.StatusAmountMismatch:
		return "Amount_Mismatch"
	case models.StatusMissingInVendor:
		return "Missing_in_Vendor"
	case models.StatusMissingInBooks:
		return "Missing_in_Books"
	default:
		return string(status)
	}
}

// writeXLSX renders the report as a multi-sheet workbook: Full_Recon with
// all rows, one sheet per status bucket, and a Suggested sheet for rows
// carrying a fuzzy-match suggestion.
func (g *Generator) writeXLSX(report *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetFullRecon); err != nil {
		return fmt.Errorf("failed to name full recon sheet: %w", err)
	}
	if err := writeSheet(f, SheetFullRecon, report.Rows); err != nil {
		return err
	}

	for _, status := range BucketOrder {
		name := sheetNameFor(status)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, report.Buckets[status]); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetSuggested); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetSuggested, err)
	}
	if err := writeSheet(f, SheetSuggested, report.Suggested); err != nil {
		return err
	}

	index, err := f.GetSheetIndex(SheetFullRecon)
	if err != nil {
		return fmt.Errorf("failed to locate full recon sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeSheet fills one sheet with the header row and the given rows
func writeSheet(f *excelize.File, sheet string, rows []*models.Row) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell on %s: %w", sheet, err)
		}

		values := RowValues(row)
		cells := []interface{}{values[0], nil, nil, nil, values[4], values[5]}
		// Amounts go in as numbers so spreadsheet formulas work on them;
		// missing sides stay empty cells.
		if row.VendorAmount != nil {
			cells[1] = row.VendorAmount.InexactFloat64()
		}
		if row.BooksAmount != nil {
			cells[2] = row.BooksAmount.InexactFloat64()
		}
		cells[3] = row.Variance.InexactFloat64()

		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", sheet, err)
		}
	}

	return nil
}
