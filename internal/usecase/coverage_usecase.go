package usecase

import (
	"bytes"
	"fmt"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"

	"github.com/xuri/excelize/v2"
)

// LanguageCoverage summarises how much of the reference catalog a language
// translates itself.
type LanguageCoverage struct {
	Language   domain.Language
	Total      int
	Translated int
	Missing    []string
}

// Complete reports whether no key falls back to the reference language.
func (c LanguageCoverage) Complete() bool {
	return len(c.Missing) == 0
}

// Percent is the translated share, 0-100.
func (c LanguageCoverage) Percent() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Translated) * 100 / float64(c.Total)
}

// Coverage computes the coverage of each language in langs. An empty langs
// means every supported language.
func Coverage(catalog *locale.Catalog, langs []domain.Language) []LanguageCoverage {
	if len(langs) == 0 {
		langs = domain.SupportedLanguages()
	}
	total := len(catalog.Keys())

	out := make([]LanguageCoverage, 0, len(langs))
	for _, lang := range langs {
		missing := catalog.Missing(lang)
		out = append(out, LanguageCoverage{
			Language:   lang,
			Total:      total,
			Translated: total - len(missing),
			Missing:    missing,
		})
	}
	return out
}

const (
	keysSheet    = "Keys"
	summarySheet = "Summary"
)

// ExportCoverage writes an XLSX workbook: one row per reference key with the
// text of each language, untranslated cells highlighted, and a summary sheet.
func ExportCoverage(catalog *locale.Catalog, langs []domain.Language) ([]byte, []LanguageCoverage, error) {
	coverage := Coverage(catalog, langs)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", keysSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#991B1B"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create header style: %w", err)
	}
	missingStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "#991B1B"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FDE2E2"}},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create missing style: %w", err)
	}

	// Keys sheet
	headers := []string{"KEY"}
	for _, c := range coverage {
		headers = append(headers, string(c.Language))
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(keysSheet, cell, h)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(keysSheet, "A1", endCell, headerStyle)

	values := make([]map[string]string, len(coverage))
	for i, c := range coverage {
		values[i] = catalog.Values(c.Language)
	}

	for rowIdx, key := range catalog.Keys() {
		row := rowIdx + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(keysSheet, cell, key)

		for colIdx, c := range coverage {
			cell, _ := excelize.CoordinatesToCellName(colIdx+2, row)
			f.SetCellValue(keysSheet, cell, values[colIdx][key])
			if !catalog.Has(c.Language, key) {
				f.SetCellStyle(keysSheet, cell, cell, missingStyle)
			}
		}
	}

	f.SetColWidth(keysSheet, "A", "A", 40)
	if len(headers) > 1 {
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		f.SetColWidth(keysSheet, "B", lastCol, 60)
	}

	// Summary sheet
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	for i, h := range []string{"LANGUAGE", "TRANSLATED", "TOTAL", "COVERAGE %"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetCellStyle(summarySheet, "A1", "D1", headerStyle)
	for i, c := range coverage {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), c.Language.NativeName())
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), c.Translated)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), c.Total)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.1f", c.Percent()))
	}
	f.SetColWidth(summarySheet, "A", "D", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), coverage, nil
}
