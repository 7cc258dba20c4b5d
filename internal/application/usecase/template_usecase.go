package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// TemplateUseCase reglas de negocio para plantillas de extracción.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create crea una plantilla. Valida la coherencia campo/tipo de archivo:
// una plantilla PDF necesita rectángulos y una Excel necesita celdas.
func (uc *TemplateUseCase) Create(in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	fields, err := fieldsFromDTO(in.FileKind, in.Fields)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tpl := &entity.ParseTemplate{
		ID:         uuid.New().String(),
		CompanyID:  in.CompanyID,
		SupplierID: in.SupplierID,
		Name:       in.Name,
		DocType:    in.DocType,
		FileKind:   in.FileKind,
		Fields:     fields,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(tpl); err != nil {
		return nil, err
	}
	return templateToResponse(tpl), nil
}

// GetByID obtiene una plantilla por ID.
func (uc *TemplateUseCase) GetByID(id string) (*dto.TemplateResponse, error) {
	tpl, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, nil
	}
	return templateToResponse(tpl), nil
}

// Update actualiza nombre, campos o estado activo.
func (uc *TemplateUseCase) Update(id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	tpl, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		tpl.Name = in.Name
	}
	if len(in.Fields) > 0 {
		fields, err := fieldsFromDTO(tpl.FileKind, in.Fields)
		if err != nil {
			return nil, err
		}
		tpl.Fields = fields
	}
	if in.Active != nil {
		tpl.Active = *in.Active
	}
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(tpl); err != nil {
		return nil, err
	}
	return templateToResponse(tpl), nil
}

// List lista plantillas de una empresa con paginación.
func (uc *TemplateUseCase) List(companyID string, limit, offset int) (*dto.TemplateListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *templateToResponse(t))
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una plantilla por ID.
func (uc *TemplateUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// fieldsFromDTO valida y convierte los campos según el tipo de archivo.
func fieldsFromDTO(fileKind string, in []dto.TemplateFieldDTO) ([]entity.TemplateField, error) {
	fields := make([]entity.TemplateField, 0, len(in))
	for _, f := range in {
		switch fileKind {
		case entity.TemplateKindPDF:
			if f.Page < 1 || f.Width <= 0 || f.Height <= 0 {
				return nil, domain.ErrInvalidInput
			}
		case entity.TemplateKindExcel:
			if f.Cell == "" {
				return nil, domain.ErrInvalidInput
			}
		default:
			return nil, domain.ErrInvalidInput
		}
		fields = append(fields, entity.TemplateField{
			Name: f.Name,
			Page: f.Page, X: f.X, Y: f.Y, Width: f.Width, Height: f.Height,
			Sheet: f.Sheet, Cell: f.Cell,
		})
	}
	return fields, nil
}

func templateToResponse(t *entity.ParseTemplate) *dto.TemplateResponse {
	if t == nil {
		return nil
	}
	fields := make([]dto.TemplateFieldDTO, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, dto.TemplateFieldDTO{
			Name: f.Name,
			Page: f.Page, X: f.X, Y: f.Y, Width: f.Width, Height: f.Height,
			Sheet: f.Sheet, Cell: f.Cell,
		})
	}
	return &dto.TemplateResponse{
		ID:         t.ID,
		CompanyID:  t.CompanyID,
		SupplierID: t.SupplierID,
		Name:       t.Name,
		DocType:    t.DocType,
		FileKind:   t.FileKind,
		Fields:     fields,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
