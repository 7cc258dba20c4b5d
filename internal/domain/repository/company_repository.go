package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// ListAll devuelve todas las empresas sin paginar (para armar el árbol jerárquico).
	ListAll() ([]*entity.Company, error)
	// ListChildren devuelve las empresas cuyo ParentID es el indicado.
	ListChildren(parentID string) ([]*entity.Company, error)
	Delete(id string) error
}
