package entity

import "time"

// Supplier representa un proveedor que emite documentos hacia una empresa.
// Code es el código interno del proveedor que viene impreso en sus documentos;
// cuando falta, la resolución cae al emparejamiento difuso por nombre.
type Supplier struct {
	ID        string
	CompanyID string
	Code      string // código del proveedor en sus documentos; puede estar vacío
	Name      string
	NIT       string
	Email     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
