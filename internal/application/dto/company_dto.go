package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	ParentID      string `json:"parent_id" validate:"omitempty,uuid"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	NIT           string `json:"nit" validate:"required"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	RetentionDays int    `json:"retention_days" validate:"omitempty,min=0,max=3650"`
}

// UpdateCompanyRequest entrada para actualizar una empresa.
type UpdateCompanyRequest struct {
	Name          string `json:"name" validate:"omitempty,max=200"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	Status        string `json:"status" validate:"omitempty,oneof=active suspended inactive"`
	RetentionDays *int   `json:"retention_days" validate:"omitempty"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	ParentID      string    `json:"parent_id,omitempty"`
	Name          string    `json:"name"`
	NIT           string    `json:"nit"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Status        string    `json:"status"`
	RetentionDays int       `json:"retention_days,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CompanyTreeNode nodo del árbol jerárquico de empresas (filtro del frontend).
type CompanyTreeNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	NIT      string            `json:"nit"`
	Status   string            `json:"status"`
	Children []CompanyTreeNode `json:"children,omitempty"`
}
