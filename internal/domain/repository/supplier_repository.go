package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	// GetByCode busca por código exacto dentro de una empresa. nil si no existe.
	GetByCode(companyID, code string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	// ListActiveByCompany devuelve todos los proveedores activos (candidatos del
	// emparejamiento difuso; no se pagina).
	ListActiveByCompany(companyID string) ([]*entity.Supplier, error)
	Delete(id string) error
}
