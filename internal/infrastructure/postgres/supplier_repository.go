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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

const supplierColumns = `id, company_id, COALESCE(code, ''), name,
	COALESCE(nit, ''), COALESCE(email, ''), status, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, code, name, nit, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		supplier.ID, supplier.CompanyID, nullIfEmpty(supplier.Code), supplier.Name,
		nullIfEmpty(supplier.NIT), nullIfEmpty(supplier.Email), supplier.Status,
		supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.scanOne(`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
}

// GetByCode obtiene un proveedor por código dentro de una empresa.
func (r *SupplierRepo) GetByCode(companyID, code string) (*entity.Supplier, error) {
	return r.scanOne(`SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *SupplierRepo) scanOne(query string, args ...any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.CompanyID, &s.Code, &s.Name, &s.NIT, &s.Email, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET code = $2, name = $3, nit = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		supplier.ID, nullIfEmpty(supplier.Code), supplier.Name, nullIfEmpty(supplier.NIT),
		nullIfEmpty(supplier.Email), supplier.Status, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// ListByCompany lista proveedores de una empresa con paginación.
func (r *SupplierRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + `
		FROM suppliers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

// ListActiveByCompany devuelve todos los proveedores activos de la empresa
// (candidatos del emparejamiento difuso; sin paginar).
func (r *SupplierRepo) ListActiveByCompany(companyID string) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + `
		FROM suppliers WHERE company_id = $1 AND status = 'active' ORDER BY name`
	return r.scanMany(query, companyID)
}

func (r *SupplierRepo) scanMany(query string, args ...any) ([]*entity.Supplier, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Code, &s.Name, &s.NIT, &s.Email, &s.Status,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
