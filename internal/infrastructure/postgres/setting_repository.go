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

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación del puerto SettingRepository sobre PostgreSQL.
type SettingRepo struct {
	pool *pgxpool.Pool
}

// NewSettingRepository construye el adaptador de persistencia para settings.
func NewSettingRepository(pool *pgxpool.Pool) *SettingRepo {
	return &SettingRepo{pool: pool}
}

// Get devuelve el setting o nil si la clave no existe.
func (r *SettingRepo) Get(key string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.pool.QueryRow(context.Background(),
		`SELECT key, value, updated_at FROM settings WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// Set crea o actualiza un setting (upsert por clave).
func (r *SettingRepo) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// List devuelve todos los settings.
func (r *SettingRepo) List() ([]*entity.Setting, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
