package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// SupplierUseCase reglas de negocio para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso con el puerto de persistencia.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El código (si viene) debe ser único en la empresa.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Code != "" {
		existing, _ := uc.repo.GetByCode(in.CompanyID, in.Code)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Code:      in.Code,
		Name:      in.Name,
		NIT:       in.NIT,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return entityToSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return entityToSupplierResponse(supplier), nil
}

// Update actualiza campos editables de un proveedor.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != "" && in.Code != supplier.Code {
		existing, _ := uc.repo.GetByCode(supplier.CompanyID, in.Code)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		supplier.Code = in.Code
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	if in.NIT != "" {
		supplier.NIT = in.NIT
	}
	if in.Email != "" {
		supplier.Email = in.Email
	}
	if in.Status != "" {
		supplier.Status = in.Status
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return entityToSupplierResponse(supplier), nil
}

// List lista proveedores de una empresa con paginación.
func (uc *SupplierUseCase) List(companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proveedor por ID.
func (uc *SupplierUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func entityToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Code:      s.Code,
		Name:      s.Name,
		NIT:       s.NIT,
		Email:     s.Email,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
