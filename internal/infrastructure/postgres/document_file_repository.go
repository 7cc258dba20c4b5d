package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.DocumentFileRepository = (*DocumentFileRepo)(nil)

// DocumentFileRepo implementación de DocumentFileRepository (usable con pool o tx).
type DocumentFileRepo struct {
	q Querier
}

// NewDocumentFileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentFileRepository(q Querier) *DocumentFileRepo {
	return &DocumentFileRepo{q: q}
}

const fileColumns = `id, COALESCE(company_id::TEXT, ''), original_name, storage_path,
	sha256, size_bytes, source, status, COALESCE(error, ''), created_at, updated_at`

// Create persiste el registro de un archivo ingresado.
func (r *DocumentFileRepo) Create(file *entity.DocumentFile) error {
	query := `
		INSERT INTO document_files (id, company_id, original_name, storage_path, sha256, size_bytes, source, status, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		file.ID, nullIfEmpty(file.CompanyID), file.OriginalName, file.StoragePath,
		file.SHA256, file.SizeBytes, file.Source, file.Status, nullIfEmpty(file.Error),
		file.CreatedAt, file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document file: %w", err)
	}
	return nil
}

// GetByID obtiene un archivo por ID.
func (r *DocumentFileRepo) GetByID(id string) (*entity.DocumentFile, error) {
	return r.scanOne(`SELECT `+fileColumns+` FROM document_files WHERE id = $1`, id)
}

// GetBySHA256 busca por hash de contenido (dedupe de reingestión).
func (r *DocumentFileRepo) GetBySHA256(hash string) (*entity.DocumentFile, error) {
	return r.scanOne(`SELECT `+fileColumns+` FROM document_files WHERE sha256 = $1`, hash)
}

func (r *DocumentFileRepo) scanOne(query string, args ...any) (*entity.DocumentFile, error) {
	var f entity.DocumentFile
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&f.ID, &f.CompanyID, &f.OriginalName, &f.StoragePath, &f.SHA256,
		&f.SizeBytes, &f.Source, &f.Status, &f.Error, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document file: %w", err)
	}
	return &f, nil
}

// Update actualiza el estado de procesamiento de un archivo.
func (r *DocumentFileRepo) Update(file *entity.DocumentFile) error {
	query := `
		UPDATE document_files
		SET company_id = $2, status = $3, error = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		file.ID, nullIfEmpty(file.CompanyID), file.Status, nullIfEmpty(file.Error), file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document file: %w", err)
	}
	return nil
}

// ListByCompany lista archivos de una empresa con paginación.
func (r *DocumentFileRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.DocumentFile, error) {
	query := `SELECT ` + fileColumns + `
		FROM document_files WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

// ListByStatus lista archivos en un estado dado (ej. failed, para reintento).
func (r *DocumentFileRepo) ListByStatus(status string, limit, offset int) ([]*entity.DocumentFile, error) {
	query := `SELECT ` + fileColumns + `
		FROM document_files WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	return r.scanMany(query, status, limit, offset)
}

func (r *DocumentFileRepo) scanMany(query string, args ...any) ([]*entity.DocumentFile, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list document files: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentFile
	for rows.Next() {
		var f entity.DocumentFile
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.OriginalName, &f.StoragePath, &f.SHA256,
			&f.SizeBytes, &f.Source, &f.Status, &f.Error, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document file: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina el registro de un archivo.
func (r *DocumentFileRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM document_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document file: %w", err)
	}
	return nil
}
