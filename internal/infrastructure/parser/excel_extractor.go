package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// extractExcel lee las celdas que la plantilla asigna a cada campo.
// Si el campo no indica hoja se usa la primera del libro.
func extractExcel(fullPath string, tpl *entity.ParseTemplate) (map[string]string, error) {
	book, err := excelize.OpenFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("abrir excel: %w", err)
	}
	defer book.Close()

	defaultSheet := book.GetSheetName(0)
	values := map[string]string{}

	for i := range tpl.Fields {
		field := tpl.Fields[i]
		if field.Cell == "" {
			continue
		}
		sheet := field.Sheet
		if sheet == "" {
			sheet = defaultSheet
		}
		value, err := book.GetCellValue(sheet, field.Cell)
		if err != nil {
			return nil, fmt.Errorf("leer celda %s!%s: %w", sheet, field.Cell, err)
		}
		if value != "" {
			values[field.Name] = value
		}
	}
	return values, nil
}
