// Package export writes search results as CSV or XLSX tables, one row per
// tile in render order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pageza/mealfinder/internal/mealdb"
)

// Header is the first row of every export
var Header = []string{"source", "id", "name", "thumbnail"}

const sheetName = "Meals"

// Rows flattens hit groups into table rows without de-duplication
func Rows(groups []mealdb.HitGroup) [][]string {
	rows := make([][]string, 0, mealdb.CountMeals(groups))
	for _, g := range groups {
		for _, m := range g.Meals {
			rows = append(rows, []string{string(g.Source), m.ID, m.Name, m.Thumb})
		}
	}
	return rows
}

// WriteCSV writes the groups as CSV
func WriteCSV(w io.Writer, groups []mealdb.HitGroup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(groups)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the groups as a single-sheet workbook
func WriteXLSX(w io.Writer, groups []mealdb.HitGroup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range append([][]string{Header}, Rows(groups)...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
