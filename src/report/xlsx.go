// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by [WriteXLSX].
const SheetName = "Results"

var xlsxHeader = []any{"Input", "Domain", "Valid", "Checks", "Failed", "Reason", "Error"}

// WriteXLSX renders records as an Excel workbook with a single sheet.
func WriteXLSX(w io.Writer, records []Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		row := []any{r.Input, r.Domain, r.Valid, r.Checks, r.Failed, r.Reason, r.Error}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 32); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := f.SetColWidth(SheetName, "G", "G", 64); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
