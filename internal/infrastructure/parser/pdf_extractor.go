package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// Tolerancia vertical para agrupar fragmentos en una misma línea, y
// separación horizontal mínima para insertar un espacio entre fragmentos.
// Valores en puntos PDF (1/72 de pulgada).
const (
	lineTolerance = 2.0
	wordGap       = 1.0
)

// extractPDF abre el PDF y evalúa cada rectángulo de la plantilla contra el
// texto posicionado de su página. Las coordenadas de la plantilla usan el
// mismo origen que el PDF: esquina inferior izquierda.
func extractPDF(fullPath string, tpl *entity.ParseTemplate) (map[string]string, error) {
	file, reader, err := pdf.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("abrir pdf: %w", err)
	}
	defer file.Close()

	pages := map[int][]pdf.Text{}
	values := map[string]string{}

	for i := range tpl.Fields {
		field := tpl.Fields[i]
		if field.Page < 1 || field.Page > reader.NumPage() {
			continue
		}
		texts, ok := pages[field.Page]
		if !ok {
			page := reader.Page(field.Page)
			if page.V.IsNull() {
				continue
			}
			texts = page.Content().Text
			pages[field.Page] = texts
		}
		if value := textInRect(texts, field); value != "" {
			values[field.Name] = value
		}
	}
	return values, nil
}

// textInRect reconstruye el texto contenido en el rectángulo de un campo:
// agrupa los fragmentos por línea, ordena de arriba hacia abajo y de
// izquierda a derecha, y separa con espacios los fragmentos no contiguos.
func textInRect(texts []pdf.Text, field entity.TemplateField) string {
	var inside []pdf.Text
	for _, t := range texts {
		if t.X < field.X || t.X > field.X+field.Width {
			continue
		}
		if t.Y < field.Y || t.Y > field.Y+field.Height {
			continue
		}
		inside = append(inside, t)
	}
	if len(inside) == 0 {
		return ""
	}

	// Primero de arriba hacia abajo con comparación estricta; la tolerancia
	// entra después, al agrupar, no dentro del comparador.
	sort.SliceStable(inside, func(i, j int) bool {
		if inside[i].Y != inside[j].Y {
			return inside[i].Y > inside[j].Y
		}
		return inside[i].X < inside[j].X
	})

	// Agrupar en líneas: un fragmento pertenece a la línea en curso si su Y
	// está a menos de la tolerancia del último fragmento agregado, con lo que
	// una cadena de valores limítrofes queda en una sola línea.
	var lines [][]pdf.Text
	for _, t := range inside {
		if len(lines) == 0 {
			lines = append(lines, []pdf.Text{t})
			continue
		}
		current := lines[len(lines)-1]
		if current[len(current)-1].Y-t.Y > lineTolerance {
			lines = append(lines, []pdf.Text{t})
			continue
		}
		lines[len(lines)-1] = append(current, t)
	}

	var sb strings.Builder
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		prevEnd := 0.0
		for i, t := range line {
			if i > 0 && t.X-prevEnd > wordGap {
				sb.WriteString(" ")
			}
			sb.WriteString(t.S)
			prevEnd = t.X + t.W
		}
	}
	return strings.TrimSpace(sb.String())
}
