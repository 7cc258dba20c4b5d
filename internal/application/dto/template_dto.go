package dto

import "time"

// TemplateFieldDTO ubicación de un campo dentro del archivo.
// Para PDF se usan page/x/y/width/height; para Excel, sheet/cell.
type TemplateFieldDTO struct {
	Name   string  `json:"name" validate:"required"`
	Page   int     `json:"page,omitempty" validate:"omitempty,min=1"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Sheet  string  `json:"sheet,omitempty"`
	Cell   string  `json:"cell,omitempty"`
}

// CreateTemplateRequest entrada para crear una plantilla de extracción.
type CreateTemplateRequest struct {
	CompanyID  string             `json:"company_id" validate:"required,uuid"`
	SupplierID string             `json:"supplier_id" validate:"omitempty,uuid"`
	Name       string             `json:"name" validate:"required,min=1,max=200"`
	DocType    string             `json:"doc_type" validate:"required,oneof=invoice credit_note statement"`
	FileKind   string             `json:"file_kind" validate:"required,oneof=pdf xlsx"`
	Fields     []TemplateFieldDTO `json:"fields" validate:"required,min=1,dive"`
}

// UpdateTemplateRequest entrada para actualizar una plantilla.
type UpdateTemplateRequest struct {
	Name   string             `json:"name" validate:"omitempty,max=200"`
	Fields []TemplateFieldDTO `json:"fields" validate:"omitempty,min=1,dive"`
	Active *bool              `json:"active"`
}

// TemplateResponse salida de una plantilla.
type TemplateResponse struct {
	ID         string             `json:"id"`
	CompanyID  string             `json:"company_id"`
	SupplierID string             `json:"supplier_id,omitempty"`
	Name       string             `json:"name"`
	DocType    string             `json:"doc_type"`
	FileKind   string             `json:"file_kind"`
	Fields     []TemplateFieldDTO `json:"fields"`
	Active     bool               `json:"active"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// TemplateListResponse listado paginado de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
