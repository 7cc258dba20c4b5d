package entity

import "time"

// Códigos de plantilla de correo sembrados por cmd/seed_templates.
const (
	EmailTplDocumentRegistered = "document_registered"
	EmailTplDocumentReview     = "document_needs_review"
	EmailTplTwoFactorCode      = "two_factor_code"
)

// Estados de entrega de un correo.
const (
	EmailStatusQueued = "queued"
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailTemplate plantilla de correo con placeholders estilo text/template
// ({{.SupplierName}}, {{.Number}}, ...).
type EmailTemplate struct {
	ID        string
	Code      string // único; ver constantes EmailTpl*
	Subject   string
	Body      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailLog registro de entrega: se crea al encolar (queued) y el worker lo
// actualiza al enviar (sent) o fallar (failed). QueuedAt vs SentAt alimenta
// los percentiles de demora del dashboard.
type EmailLog struct {
	ID           string
	CompanyID    string
	TemplateCode string
	Recipient    string
	Subject      string
	Status       string // ver constantes EmailStatus*
	Error        string
	QueuedAt     time.Time
	SentAt       *time.Time
}
