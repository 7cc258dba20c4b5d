package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// EmailTemplateRepository define el puerto de persistencia para EmailTemplate.
type EmailTemplateRepository interface {
	GetByCode(code string) (*entity.EmailTemplate, error)
	List() ([]*entity.EmailTemplate, error)
	Update(template *entity.EmailTemplate) error
}

// EmailLogRepository define el puerto de persistencia para EmailLog.
type EmailLogRepository interface {
	Create(log *entity.EmailLog) error
	GetByID(id string) (*entity.EmailLog, error)
	// MarkSent fija status=sent y SentAt. MarkFailed fija status=failed con el detalle.
	MarkSent(id string) error
	MarkFailed(id string, errMsg string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.EmailLog, error)
}
