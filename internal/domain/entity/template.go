package entity

import "time"

// Tipos de archivo que soportan plantillas de extracción.
const (
	TemplateKindPDF   = "pdf"
	TemplateKindExcel = "xlsx"
)

// Nombres de campo reconocidos por el mapeo plantilla → documento.
// Las plantillas pueden definir campos adicionales; se ignoran al mapear.
const (
	FieldNumber         = "number"
	FieldIssueDate      = "issue_date"
	FieldDueDate        = "due_date"
	FieldNetTotal       = "net_total"
	FieldTaxTotal       = "tax_total"
	FieldGrandTotal     = "grand_total"
	FieldSupplierCode   = "supplier_code"
	FieldSupplierName   = "supplier_name"
	FieldInvoiceNumber  = "invoice_number"
	FieldPeriodStart    = "period_start"
	FieldPeriodEnd      = "period_end"
	FieldOpeningBalance = "opening_balance"
	FieldClosingBalance = "closing_balance"
)

// TemplateField asocia un nombre de campo con su ubicación en el archivo:
// un rectángulo en puntos PDF (página 1-indexada) o una celda de hoja de cálculo.
type TemplateField struct {
	Name string
	// PDF: rectángulo en coordenadas de página (origen esquina inferior izquierda).
	Page          int
	X, Y          float64
	Width, Height float64
	// Excel: hoja y referencia de celda (ej. "B4"). Si Cell no está vacío, manda.
	Sheet string
	Cell  string
}

// ParseTemplate define cómo extraer campos de los documentos de un proveedor.
// SupplierID vacío = plantilla genérica de la empresa (último recurso).
type ParseTemplate struct {
	ID         string
	CompanyID  string
	SupplierID string
	Name       string
	DocType    string // invoice, credit_note, statement
	FileKind   string // pdf, xlsx
	Fields     []TemplateField
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FieldByName devuelve el campo con ese nombre, o nil si la plantilla no lo define.
func (t *ParseTemplate) FieldByName(name string) *TemplateField {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}
