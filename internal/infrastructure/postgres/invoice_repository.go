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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, COALESCE(supplier_id::TEXT, ''), file_id, number,
	issue_date, due_date, net_total, tax_total, grand_total, currency, status,
	created_at, updated_at, deleted_at`

// Create persiste una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, supplier_id, file_id, number, issue_date, due_date,
			net_total, tax_total, grand_total, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, nullIfEmpty(invoice.SupplierID), invoice.FileID,
		invoice.Number, invoice.IssueDate, invoice.DueDate,
		invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal,
		invoice.Currency, invoice.Status, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.scanOne(`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByNumber busca por (empresa, proveedor, número), sin incluir purgadas.
func (r *InvoiceRepo) GetByNumber(companyID, supplierID, number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND supplier_id = $2 AND number = $3 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, supplierID, number)
}

func (r *InvoiceRepo) scanOne(query string, args ...any) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.CompanyID, &inv.SupplierID, &inv.FileID, &inv.Number,
		&inv.IssueDate, &inv.DueDate, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Currency, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// Update actualiza los campos mutables de una factura.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET supplier_id = $2, number = $3, issue_date = $4, due_date = $5,
		    net_total = $6, tax_total = $7, grand_total = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, nullIfEmpty(invoice.SupplierID), invoice.Number, invoice.IssueDate, invoice.DueDate,
		invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal, invoice.Status, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// List lista facturas según el filtro (las purgadas no se listan).
func (r *InvoiceRepo) List(filter repository.DocumentFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND deleted_at IS NULL`
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

// ListExpired devuelve facturas no purgadas con fecha anterior al corte.
func (r *InvoiceRepo) ListExpired(companyID string, before time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1 AND deleted_at IS NULL AND issue_date < $2`
	return r.scanMany(query, companyID, before)
}

func (r *InvoiceRepo) scanMany(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.SupplierID, &inv.FileID, &inv.Number,
			&inv.IssueDate, &inv.DueDate, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.Currency, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// SoftDelete marca la factura como purgada.
func (r *InvoiceRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE invoices SET status = $2, deleted_at = $3, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.DocStatusPurged, at)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	return nil
}
