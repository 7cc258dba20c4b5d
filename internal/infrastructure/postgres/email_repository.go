package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.EmailTemplateRepository = (*EmailTemplateRepo)(nil)
var _ repository.EmailLogRepository = (*EmailLogRepo)(nil)

// EmailTemplateRepo implementación de EmailTemplateRepository sobre PostgreSQL.
type EmailTemplateRepo struct {
	pool *pgxpool.Pool
}

// NewEmailTemplateRepository construye el adaptador para plantillas de correo.
func NewEmailTemplateRepository(pool *pgxpool.Pool) *EmailTemplateRepo {
	return &EmailTemplateRepo{pool: pool}
}

// GetByCode obtiene una plantilla por código.
func (r *EmailTemplateRepo) GetByCode(code string) (*entity.EmailTemplate, error) {
	query := `SELECT id, code, subject, body, active, created_at, updated_at
		FROM email_templates WHERE code = $1`
	var t entity.EmailTemplate
	err := r.pool.QueryRow(context.Background(), query, code).Scan(
		&t.ID, &t.Code, &t.Subject, &t.Body, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email template: %w", err)
	}
	return &t, nil
}

// List devuelve todas las plantillas de correo.
func (r *EmailTemplateRepo) List() ([]*entity.EmailTemplate, error) {
	query := `SELECT id, code, subject, body, active, created_at, updated_at
		FROM email_templates ORDER BY code`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmailTemplate
	for rows.Next() {
		var t entity.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Code, &t.Subject, &t.Body, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan email template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza asunto, cuerpo y estado de una plantilla.
func (r *EmailTemplateRepo) Update(template *entity.EmailTemplate) error {
	query := `UPDATE email_templates SET subject = $2, body = $3, active = $4, updated_at = $5 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		template.ID, template.Subject, template.Body, template.Active, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update email template: %w", err)
	}
	return nil
}

// EmailLogRepo implementación de EmailLogRepository sobre PostgreSQL.
type EmailLogRepo struct {
	pool *pgxpool.Pool
}

// NewEmailLogRepository construye el adaptador para el log de correos.
func NewEmailLogRepository(pool *pgxpool.Pool) *EmailLogRepo {
	return &EmailLogRepo{pool: pool}
}

const emailLogColumns = `id, company_id, template_code, recipient, subject, status,
	COALESCE(error, ''), queued_at, sent_at`

// Create registra un correo recién encolado.
func (r *EmailLogRepo) Create(log *entity.EmailLog) error {
	query := `
		INSERT INTO email_logs (id, company_id, template_code, recipient, subject, status, error, queued_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		log.ID, log.CompanyID, log.TemplateCode, log.Recipient, log.Subject,
		log.Status, nullIfEmpty(log.Error), log.QueuedAt, log.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *EmailLogRepo) GetByID(id string) (*entity.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_logs WHERE id = $1`
	var l entity.EmailLog
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.CompanyID, &l.TemplateCode, &l.Recipient, &l.Subject,
		&l.Status, &l.Error, &l.QueuedAt, &l.SentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email log: %w", err)
	}
	return &l, nil
}

// MarkSent fija status=sent y la hora de envío.
func (r *EmailLogRepo) MarkSent(id string) error {
	query := `UPDATE email_logs SET status = $2, sent_at = $3, error = NULL WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, entity.EmailStatusSent, time.Now())
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	return nil
}

// MarkFailed fija status=failed con el detalle del error.
func (r *EmailLogRepo) MarkFailed(id string, errMsg string) error {
	query := `UPDATE email_logs SET status = $2, error = $3 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, entity.EmailStatusFailed, errMsg)
	if err != nil {
		return fmt.Errorf("mark email failed: %w", err)
	}
	return nil
}

// ListByCompany lista el log de correos de una empresa, más recientes primero.
func (r *EmailLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + `
		FROM email_logs WHERE company_id = $1 ORDER BY queued_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmailLog
	for rows.Next() {
		var l entity.EmailLog
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.TemplateCode, &l.Recipient, &l.Subject,
			&l.Status, &l.Error, &l.QueuedAt, &l.SentAt); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
