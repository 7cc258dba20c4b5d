package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Code      string `json:"code" validate:"omitempty,max=50"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	NIT       string `json:"nit" validate:"omitempty,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Code   string `json:"code" validate:"omitempty,max=50"`
	Name   string `json:"name" validate:"omitempty,max=200"`
	NIT    string `json:"nit" validate:"omitempty,max=20"`
	Email  string `json:"email" validate:"omitempty,email"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
