package repository

import "github.com/jhoicas/Docuport-api/internal/domain/entity"

// SettingRepository define el puerto de persistencia para Setting.
type SettingRepository interface {
	// Get devuelve el setting o nil si la clave no existe.
	Get(key string) (*entity.Setting, error)
	Set(key, value string) error
	List() ([]*entity.Setting, error)
}
