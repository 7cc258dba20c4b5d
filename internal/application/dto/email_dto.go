package dto

import "time"

// EmailTemplateResponse salida de una plantilla de correo.
type EmailTemplateResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateEmailTemplateRequest entrada para editar asunto/cuerpo de una plantilla.
type UpdateEmailTemplateRequest struct {
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Body    string `json:"body" validate:"omitempty"`
	Active  *bool  `json:"active"`
}

// EmailLogResponse salida de un registro de entrega.
type EmailLogResponse struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	TemplateCode string     `json:"template_code"`
	Recipient    string     `json:"recipient"`
	Subject      string     `json:"subject"`
	Status       string     `json:"status"`
	Error        string     `json:"error,omitempty"`
	QueuedAt     time.Time  `json:"queued_at"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}

// EmailLogListResponse listado paginado de entregas.
type EmailLogListResponse struct {
	Items []EmailLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
