package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// DocumentFileRepository define el puerto de persistencia para DocumentFile.
type DocumentFileRepository interface {
	Create(file *entity.DocumentFile) error
	GetByID(id string) (*entity.DocumentFile, error)
	// GetBySHA256 busca por hash de contenido (dedupe de reingestión). nil si no existe.
	GetBySHA256(hash string) (*entity.DocumentFile, error)
	Update(file *entity.DocumentFile) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.DocumentFile, error)
	// ListByStatus lista archivos en un estado dado (ej. failed, para reintento manual).
	ListByStatus(status string, limit, offset int) ([]*entity.DocumentFile, error)
	Delete(id string) error
}
