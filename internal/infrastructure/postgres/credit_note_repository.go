package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implementación de CreditNoteRepository (usable con pool o tx).
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

const creditNoteColumns = `id, company_id, COALESCE(supplier_id::TEXT, ''), file_id, number,
	issue_date, total, currency, COALESCE(invoice_number, ''), status,
	created_at, updated_at, deleted_at`

// Create persiste una nota crédito.
func (r *CreditNoteRepo) Create(note *entity.CreditNote) error {
	query := `
		INSERT INTO credit_notes (id, company_id, supplier_id, file_id, number, issue_date,
			total, currency, invoice_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.CompanyID, nullIfEmpty(note.SupplierID), note.FileID, note.Number,
		note.IssueDate, note.Total, note.Currency, nullIfEmpty(note.InvoiceNumber),
		note.Status, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota crédito por ID.
func (r *CreditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	return r.scanOne(`SELECT `+creditNoteColumns+` FROM credit_notes WHERE id = $1`, id)
}

// GetByNumber busca por (empresa, proveedor, número), sin incluir purgadas.
func (r *CreditNoteRepo) GetByNumber(companyID, supplierID, number string) (*entity.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + `
		FROM credit_notes
		WHERE company_id = $1 AND supplier_id = $2 AND number = $3 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, supplierID, number)
}

func (r *CreditNoteRepo) scanOne(query string, args ...any) (*entity.CreditNote, error) {
	var n entity.CreditNote
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&n.ID, &n.CompanyID, &n.SupplierID, &n.FileID, &n.Number,
		&n.IssueDate, &n.Total, &n.Currency, &n.InvoiceNumber, &n.Status,
		&n.CreatedAt, &n.UpdatedAt, &n.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit note: %w", err)
	}
	return &n, nil
}

// Update actualiza los campos mutables de una nota crédito.
func (r *CreditNoteRepo) Update(note *entity.CreditNote) error {
	query := `
		UPDATE credit_notes
		SET supplier_id = $2, number = $3, issue_date = $4, total = $5,
		    invoice_number = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, nullIfEmpty(note.SupplierID), note.Number, note.IssueDate, note.Total,
		nullIfEmpty(note.InvoiceNumber), note.Status, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credit note: %w", err)
	}
	return nil
}

// List lista notas crédito según el filtro (las purgadas no se listan).
func (r *CreditNoteRepo) List(filter repository.DocumentFilter) ([]*entity.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE company_id = $1 AND deleted_at IS NULL`
	args := []any{filter.CompanyID}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY issue_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.scanMany(query, args...)
}

// ListExpired devuelve notas crédito no purgadas con fecha anterior al corte.
func (r *CreditNoteRepo) ListExpired(companyID string, before time.Time) ([]*entity.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + `
		FROM credit_notes WHERE company_id = $1 AND deleted_at IS NULL AND issue_date < $2`
	return r.scanMany(query, companyID, before)
}

func (r *CreditNoteRepo) scanMany(query string, args ...any) ([]*entity.CreditNote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditNote
	for rows.Next() {
		var n entity.CreditNote
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.SupplierID, &n.FileID, &n.Number,
			&n.IssueDate, &n.Total, &n.Currency, &n.InvoiceNumber, &n.Status,
			&n.CreatedAt, &n.UpdatedAt, &n.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan credit note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// SoftDelete marca la nota crédito como purgada.
func (r *CreditNoteRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE credit_notes SET status = $2, deleted_at = $3, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.DocStatusPurged, at)
	if err != nil {
		return fmt.Errorf("soft delete credit note: %w", err)
	}
	return nil
}
