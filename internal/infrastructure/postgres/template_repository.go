package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación del puerto TemplateRepository sobre PostgreSQL.
// Los campos de la plantilla se guardan como JSONB.
type TemplateRepo struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository construye el adaptador de persistencia para plantillas.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

const templateColumns = `id, company_id, COALESCE(supplier_id::TEXT, ''), name,
	doc_type, file_kind, fields, active, created_at, updated_at`

// Create persiste una plantilla de extracción.
func (r *TemplateRepo) Create(template *entity.ParseTemplate) error {
	fields, err := json.Marshal(template.Fields)
	if err != nil {
		return fmt.Errorf("marshal template fields: %w", err)
	}
	query := `
		INSERT INTO parse_templates (id, company_id, supplier_id, name, doc_type, file_kind, fields, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.pool.Exec(context.Background(), query,
		template.ID, template.CompanyID, nullIfEmpty(template.SupplierID), template.Name,
		template.DocType, template.FileKind, fields, template.Active,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *TemplateRepo) GetByID(id string) (*entity.ParseTemplate, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+templateColumns+` FROM parse_templates WHERE id = $1`, id)
	return scanTemplate(row)
}

func scanTemplate(row pgx.Row) (*entity.ParseTemplate, error) {
	var t entity.ParseTemplate
	var fields []byte
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.SupplierID, &t.Name, &t.DocType, &t.FileKind,
		&fields, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	if err := json.Unmarshal(fields, &t.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal template fields: %w", err)
	}
	return &t, nil
}

// Update actualiza una plantilla.
func (r *TemplateRepo) Update(template *entity.ParseTemplate) error {
	fields, err := json.Marshal(template.Fields)
	if err != nil {
		return fmt.Errorf("marshal template fields: %w", err)
	}
	query := `
		UPDATE parse_templates
		SET supplier_id = $2, name = $3, doc_type = $4, file_kind = $5, fields = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		template.ID, nullIfEmpty(template.SupplierID), template.Name, template.DocType,
		template.FileKind, fields, template.Active, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// ListByCompany lista plantillas de una empresa con paginación.
func (r *TemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ParseTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM parse_templates WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

// ListActive devuelve plantillas activas de una empresa para un tipo de
// archivo: primero las específicas de proveedor, luego las genéricas.
func (r *TemplateRepo) ListActive(companyID, fileKind string) ([]*entity.ParseTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM parse_templates
		WHERE company_id = $1 AND file_kind = $2 AND active
		ORDER BY supplier_id IS NULL, name`
	return r.scanMany(query, companyID, fileKind)
}

func (r *TemplateRepo) scanMany(query string, args ...any) ([]*entity.ParseTemplate, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ParseTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina una plantilla por ID.
func (r *TemplateRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM parse_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
