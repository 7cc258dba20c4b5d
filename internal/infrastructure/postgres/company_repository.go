package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, COALESCE(parent_id::TEXT, ''), name, nit,
	COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
	status, retention_days, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, parent_id, name, nit, address, phone, email, status, retention_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, nullIfEmpty(company.ParentID), company.Name, company.NIT,
		nullIfEmpty(company.Address), nullIfEmpty(company.Phone), nullIfEmpty(company.Email),
		company.Status, company.RetentionDays, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.scanOne(`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	return r.scanOne(`SELECT `+companyColumns+` FROM companies WHERE nit = $1`, nit)
}

func (r *CompanyRepo) scanOne(query string, args ...any) (*entity.Company, error) {
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.NIT, &c.Address, &c.Phone, &c.Email,
		&c.Status, &c.RetentionDays, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, status = $6, retention_days = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, nullIfEmpty(company.Address), nullIfEmpty(company.Phone),
		nullIfEmpty(company.Email), company.Status, company.RetentionDays, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListAll devuelve todas las empresas (para armar el árbol jerárquico).
func (r *CompanyRepo) ListAll() ([]*entity.Company, error) {
	return r.scanMany(`SELECT ` + companyColumns + ` FROM companies ORDER BY name`)
}

// ListChildren devuelve las empresas cuyo padre es el indicado.
func (r *CompanyRepo) ListChildren(parentID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE parent_id = $1 ORDER BY name`
	return r.scanMany(query, parentID)
}

func (r *CompanyRepo) scanMany(query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.NIT, &c.Address, &c.Phone, &c.Email,
			&c.Status, &c.RetentionDays, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
