package notify

import (
	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// Templates devuelve todas las plantillas de correo para su edición.
func (uc *EmailUseCase) Templates() ([]dto.EmailTemplateResponse, error) {
	list, err := uc.templates.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmailTemplateResponse, 0, len(list))
	for _, tpl := range list {
		out = append(out, templateToResponse(tpl))
	}
	return out, nil
}

// UpdateTemplate edita asunto, cuerpo o estado de una plantilla por su código.
func (uc *EmailUseCase) UpdateTemplate(code string, in dto.UpdateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	tpl, err := uc.templates.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}

	if in.Subject != "" {
		tpl.Subject = in.Subject
	}
	if in.Body != "" {
		tpl.Body = in.Body
	}
	if in.Active != nil {
		tpl.Active = *in.Active
	}

	// Una plantilla que no renderiza con datos de prueba rompería todas las
	// notificaciones que la usan; se rechaza antes de persistir.
	if _, err := render(tpl.Code+":subject", tpl.Subject, sampleData); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := render(tpl.Code+":body", tpl.Body, sampleData); err != nil {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.templates.Update(tpl); err != nil {
		return nil, err
	}
	resp := templateToResponse(tpl)
	return &resp, nil
}

// Logs devuelve el historial de entregas de una empresa.
func (uc *EmailUseCase) Logs(companyID string, limit, offset int) (*dto.EmailLogListResponse, error) {
	list, err := uc.logs.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.EmailLogListResponse{
		Items: make([]dto.EmailLogResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, l := range list {
		out.Items = append(out.Items, dto.EmailLogResponse{
			ID:           l.ID,
			CompanyID:    l.CompanyID,
			TemplateCode: l.TemplateCode,
			Recipient:    l.Recipient,
			Subject:      l.Subject,
			Status:       l.Status,
			Error:        l.Error,
			QueuedAt:     l.QueuedAt,
			SentAt:       l.SentAt,
		})
	}
	return out, nil
}

// sampleData cubre los placeholders de todas las plantillas sembradas.
var sampleData = map[string]string{
	"Name":         "Usuario de Prueba",
	"Code":         "000000",
	"Number":       "FV-0000",
	"SupplierName": "Proveedor de Prueba",
	"Total":        "0.00",
}

func templateToResponse(tpl *entity.EmailTemplate) dto.EmailTemplateResponse {
	return dto.EmailTemplateResponse{
		ID:        tpl.ID,
		Code:      tpl.Code,
		Subject:   tpl.Subject,
		Body:      tpl.Body,
		Active:    tpl.Active,
		UpdatedAt: tpl.UpdatedAt,
	}
}
