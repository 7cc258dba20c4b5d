package notify

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// EmailUseCase renderiza plantillas de correo, registra la entrega y encola el
// envío. El envío real lo ejecuta el worker con Deliver.
type EmailUseCase struct {
	templates repository.EmailTemplateRepository
	logs      repository.EmailLogRepository
	enqueuer  Enqueuer
	mailer    Mailer
}

// NewEmailUseCase construye el caso de uso. mailer puede ser nil en el proceso
// API (solo encola); el worker necesita ambos, porque el escaneo también
// encola notificaciones que luego entrega con Deliver.
func NewEmailUseCase(
	templates repository.EmailTemplateRepository,
	logs repository.EmailLogRepository,
	enqueuer Enqueuer,
	mailer Mailer,
) *EmailUseCase {
	return &EmailUseCase{templates: templates, logs: logs, enqueuer: enqueuer, mailer: mailer}
}

// Queue renderiza la plantilla con los datos, crea el registro de entrega en
// estado queued y encola el envío. Devuelve el ID del registro.
func (uc *EmailUseCase) Queue(ctx context.Context, companyID, templateCode, recipient string, data any) (string, error) {
	if uc.enqueuer == nil {
		return "", fmt.Errorf("proceso sin encolador de correos configurado")
	}
	tpl, err := uc.templates.GetByCode(templateCode)
	if err != nil {
		return "", err
	}
	if tpl == nil || !tpl.Active {
		return "", domain.ErrNotFound
	}

	subject, err := render(tpl.Code+":subject", tpl.Subject, data)
	if err != nil {
		return "", fmt.Errorf("renderizar asunto: %w", err)
	}
	body, err := render(tpl.Code+":body", tpl.Body, data)
	if err != nil {
		return "", fmt.Errorf("renderizar cuerpo: %w", err)
	}

	log := &entity.EmailLog{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		TemplateCode: templateCode,
		Recipient:    recipient,
		Subject:      subject,
		Status:       entity.EmailStatusQueued,
		QueuedAt:     time.Now(),
	}
	if err := uc.logs.Create(log); err != nil {
		return "", err
	}
	if err := uc.enqueuer.EnqueueEmail(ctx, EmailPayload{
		LogID:     log.ID,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}); err != nil {
		// El registro queda en queued; el diagnóstico de demoras lo hará visible.
		return "", fmt.Errorf("encolar correo: %w", err)
	}
	return log.ID, nil
}

// Deliver entrega un correo encolado y actualiza el registro. Un fallo SMTP
// marca failed y devuelve el error para que la cola reintente.
func (uc *EmailUseCase) Deliver(ctx context.Context, p EmailPayload) error {
	if err := uc.mailer.Send(ctx, p.Recipient, p.Subject, p.Body); err != nil {
		_ = uc.logs.MarkFailed(p.LogID, err.Error())
		return fmt.Errorf("enviar correo a %s: %w", p.Recipient, err)
	}
	return uc.logs.MarkSent(p.LogID)
}

// SendTwoFactorCode implementa auth.CodeSender: encola el código de un solo uso.
func (uc *EmailUseCase) SendTwoFactorCode(ctx context.Context, user *entity.User, code string) error {
	_, err := uc.Queue(ctx, user.CompanyID, entity.EmailTplTwoFactorCode, user.Email, map[string]string{
		"Name": user.Name,
		"Code": code,
	})
	return err
}

// render ejecuta una plantilla text/template sobre los datos.
func render(name, tpl string, data any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
