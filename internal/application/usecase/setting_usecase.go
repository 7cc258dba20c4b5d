package usecase

import (
	"strconv"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// Valores por defecto cuando la clave no existe en la tabla settings.
const (
	DefaultCleanupFrequencyMinutes = 60
	DefaultPurgeFrequencyMinutes   = 1440
	DefaultScanFrequencyMinutes    = 15
	DefaultRetentionDays           = 365
)

// claves numéricas y sus rangos válidos (minutos o días)
var numericSettings = map[string][2]int{
	entity.SettingCleanupFrequencyMinutes: {1, 10080},
	entity.SettingPurgeFrequencyMinutes:   {1, 10080},
	entity.SettingScanFrequencyMinutes:    {1, 10080},
	entity.SettingRetentionDays:           {1, 3650},
}

// SettingUseCase lectura y escritura de settings operativos.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// List devuelve todos los settings persistidos.
func (uc *SettingUseCase) List() ([]dto.SettingResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SettingResponse{Key: s.Key, Value: s.Value})
	}
	return out, nil
}

// Update valida y persiste un lote de settings. Las claves numéricas deben
// estar dentro de su rango; las desconocidas se rechazan.
func (uc *SettingUseCase) Update(in dto.UpdateSettingsRequest) error {
	for key, value := range in.Values {
		bounds, ok := numericSettings[key]
		if !ok {
			return domain.ErrInvalidInput
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < bounds[0] || n > bounds[1] {
			return domain.ErrInvalidInput
		}
	}
	for key, value := range in.Values {
		if err := uc.repo.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// IntValue lee un setting numérico con valor por defecto si no existe o no parsea.
func (uc *SettingUseCase) IntValue(key string, def int) int {
	s, err := uc.repo.Get(key)
	if err != nil || s == nil {
		return def
	}
	n, err := strconv.Atoi(s.Value)
	if err != nil {
		return def
	}
	return n
}

// Frequencies devuelve las frecuencias (en minutos) de los jobs repetibles,
// aplicando los valores por defecto. Es la entrada del planificador.
func (uc *SettingUseCase) Frequencies() (cleanup, purge, scan int) {
	cleanup = uc.IntValue(entity.SettingCleanupFrequencyMinutes, DefaultCleanupFrequencyMinutes)
	purge = uc.IntValue(entity.SettingPurgeFrequencyMinutes, DefaultPurgeFrequencyMinutes)
	scan = uc.IntValue(entity.SettingScanFrequencyMinutes, DefaultScanFrequencyMinutes)
	return cleanup, purge, scan
}

// RetentionDays devuelve la retención global en días.
func (uc *SettingUseCase) RetentionDays() int {
	return uc.IntValue(entity.SettingRetentionDays, DefaultRetentionDays)
}
