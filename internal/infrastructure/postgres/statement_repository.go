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

var _ repository.StatementRepository = (*StatementRepo)(nil)

// StatementRepo implementación de StatementRepository (usable con pool o tx).
type StatementRepo struct {
	q Querier
}

// NewStatementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatementRepository(q Querier) *StatementRepo {
	return &StatementRepo{q: q}
}

const statementColumns = `id, company_id, COALESCE(supplier_id::TEXT, ''), file_id, number,
	period_start, period_end, opening_balance, closing_balance, currency, status,
	created_at, updated_at, deleted_at`

// Create persiste un estado de cuenta.
func (r *StatementRepo) Create(statement *entity.Statement) error {
	query := `
		INSERT INTO statements (id, company_id, supplier_id, file_id, number, period_start, period_end,
			opening_balance, closing_balance, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		statement.ID, statement.CompanyID, nullIfEmpty(statement.SupplierID), statement.FileID,
		statement.Number, statement.PeriodStart, statement.PeriodEnd,
		statement.OpeningBalance, statement.ClosingBalance, statement.Currency,
		statement.Status, statement.CreatedAt, statement.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert statement: %w", err)
	}
	return nil
}

// GetByID obtiene un estado de cuenta por ID.
func (r *StatementRepo) GetByID(id string) (*entity.Statement, error) {
	return r.scanOne(`SELECT `+statementColumns+` FROM statements WHERE id = $1`, id)
}

// GetByNumber busca por (empresa, proveedor, número), sin incluir purgados.
func (r *StatementRepo) GetByNumber(companyID, supplierID, number string) (*entity.Statement, error) {
	query := `SELECT ` + statementColumns + `
		FROM statements
		WHERE company_id = $1 AND supplier_id = $2 AND number = $3 AND deleted_at IS NULL`
	return r.scanOne(query, companyID, supplierID, number)
}

func (r *StatementRepo) scanOne(query string, args ...any) (*entity.Statement, error) {
	var st entity.Statement
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&st.ID, &st.CompanyID, &st.SupplierID, &st.FileID, &st.Number,
		&st.PeriodStart, &st.PeriodEnd, &st.OpeningBalance, &st.ClosingBalance,
		&st.Currency, &st.Status, &st.CreatedAt, &st.UpdatedAt, &st.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get statement: %w", err)
	}
	return &st, nil
}

// Update actualiza los campos mutables de un estado de cuenta.
func (r *StatementRepo) Update(statement *entity.Statement) error {
	query := `
		UPDATE statements
		SET supplier_id = $2, number = $3, period_start = $4, period_end = $5,
		    opening_balance = $6, closing_balance = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		statement.ID, nullIfEmpty(statement.SupplierID), statement.Number,
		statement.PeriodStart, statement.PeriodEnd,
		statement.OpeningBalance, statement.ClosingBalance, statement.Status, statement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update statement: %w", err)
	}
	return nil
}

// List lista estados de cuenta según el filtro (los purgados no se listan).
func (r *StatementRepo) List(filter repository.DocumentFilter) ([]*entity.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements WHERE company_id = $1 AND deleted_at IS NULL`
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
	query += fmt.Sprintf(" ORDER BY period_end DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.scanMany(query, args...)
}

// ListExpired devuelve estados de cuenta no purgados cuyo período terminó antes del corte.
func (r *StatementRepo) ListExpired(companyID string, before time.Time) ([]*entity.Statement, error) {
	query := `SELECT ` + statementColumns + `
		FROM statements WHERE company_id = $1 AND deleted_at IS NULL AND period_end < $2`
	return r.scanMany(query, companyID, before)
}

func (r *StatementRepo) scanMany(query string, args ...any) ([]*entity.Statement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Statement
	for rows.Next() {
		var st entity.Statement
		if err := rows.Scan(&st.ID, &st.CompanyID, &st.SupplierID, &st.FileID, &st.Number,
			&st.PeriodStart, &st.PeriodEnd, &st.OpeningBalance, &st.ClosingBalance,
			&st.Currency, &st.Status, &st.CreatedAt, &st.UpdatedAt, &st.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}

// SoftDelete marca el estado de cuenta como purgado.
func (r *StatementRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE statements SET status = $2, deleted_at = $3, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.DocStatusPurged, at)
	if err != nil {
		return fmt.Errorf("soft delete statement: %w", err)
	}
	return nil
}
