package ingest

import (
	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
)

// ListFiles devuelve los archivos ingresados de una empresa.
func (uc *UseCase) ListFiles(companyID string, limit, offset int) (*dto.FileListResponse, error) {
	list, err := uc.files.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.FileListResponse{
		Items: make([]dto.FileResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, f := range list {
		out.Items = append(out.Items, dto.FileResponse{
			ID:           f.ID,
			CompanyID:    f.CompanyID,
			OriginalName: f.OriginalName,
			SHA256:       f.SHA256,
			SizeBytes:    f.SizeBytes,
			Source:       f.Source,
			Status:       f.Status,
			Error:        f.Error,
			CreatedAt:    f.CreatedAt,
		})
	}
	return out, nil
}

// GetFile devuelve un archivo ingresado por su ID.
func (uc *UseCase) GetFile(id string) (*dto.FileResponse, error) {
	f, err := uc.files.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.FileResponse{
		ID:           f.ID,
		CompanyID:    f.CompanyID,
		OriginalName: f.OriginalName,
		SHA256:       f.SHA256,
		SizeBytes:    f.SizeBytes,
		Source:       f.Source,
		Status:       f.Status,
		Error:        f.Error,
		CreatedAt:    f.CreatedAt,
	}, nil
}
