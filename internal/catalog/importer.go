package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ImportResult summarizes an XLSX import run.
type ImportResult struct {
	Units   []Unit
	Skipped int
	Errors  []string
}

// ImportXLSX reads a spreadsheet-authored unit list. Content teams hand
// over one row per unit with the columns id, name, subject, grade, order
// and an optional description; the first row is the header.
func ImportXLSX(path, sheet string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		unit, err := unitFromRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Units = append(result.Units, unit)
	}

	return result, nil
}

func unitFromRow(row []string) (Unit, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	unit := Unit{
		ID:          cell(0),
		Name:        cell(1),
		Subject:     cell(2),
		Description: cell(5),
	}
	if unit.ID == "" || unit.Name == "" {
		return Unit{}, fmt.Errorf("id and name are required")
	}

	grade, err := strconv.Atoi(cell(3))
	if err != nil {
		return Unit{}, fmt.Errorf("grade %q is not a number", cell(3))
	}
	order, err := strconv.Atoi(cell(4))
	if err != nil {
		return Unit{}, fmt.Errorf("order %q is not a number", cell(4))
	}
	unit.Grade = grade
	unit.Order = order
	unit.Slug = Slugify(unit.Name)

	return unit, nil
}

// WriteYAML writes one unit document per file into dir, named by slug,
// in the format Load reads back.
func WriteYAML(dir string, units []Unit) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	for _, unit := range units {
		data, err := yaml.Marshal(unit)
		if err != nil {
			return fmt.Errorf("encode unit %s: %w", unit.ID, err)
		}
		name := unit.Slug
		if name == "" {
			name = unit.ID
		}
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write unit %s: %w", unit.ID, err)
		}
	}

	return nil
}
