package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// TemplateRepository define el puerto de persistencia para ParseTemplate.
type TemplateRepository interface {
	Create(template *entity.ParseTemplate) error
	GetByID(id string) (*entity.ParseTemplate, error)
	Update(template *entity.ParseTemplate) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.ParseTemplate, error)
	// ListActive devuelve las plantillas activas de una empresa para un tipo de
	// archivo: primero las específicas del proveedor, luego las genéricas.
	ListActive(companyID, fileKind string) ([]*entity.ParseTemplate, error)
	Delete(id string) error
}
