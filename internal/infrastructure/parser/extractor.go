package parser

import (
	"fmt"

	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// Extractor despacha la extracción de campos según el tipo de archivo
// que declara la plantilla (pdf o xlsx).
type Extractor struct{}

var _ ingest.Extractor = (*Extractor)(nil)

// NewExtractor crea el extractor de campos para PDF y Excel.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract lee el archivo y devuelve los valores crudos de cada campo de la
// plantilla. Los campos sin texto en su ubicación se omiten del mapa.
func (e *Extractor) Extract(fullPath string, tpl *entity.ParseTemplate) (map[string]string, error) {
	switch tpl.FileKind {
	case entity.TemplateKindPDF:
		return extractPDF(fullPath, tpl)
	case entity.TemplateKindExcel:
		return extractExcel(fullPath, tpl)
	default:
		return nil, fmt.Errorf("extractor: tipo de archivo no soportado: %s", tpl.FileKind)
	}
}
