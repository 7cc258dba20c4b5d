package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// fakeSettingRepo repositorio en memoria para los tests del caso de uso.
type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: map[string]string{}}
}

func (f *fakeSettingRepo) Get(key string) (*entity.Setting, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.Setting{Key: key, Value: v}, nil
}
func (f *fakeSettingRepo) Set(key, value string) error { f.values[key] = value; return nil }
func (f *fakeSettingRepo) List() ([]*entity.Setting, error) {
	var out []*entity.Setting
	for k, v := range f.values {
		out = append(out, &entity.Setting{Key: k, Value: v})
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Frequencies / RetentionDays
// ──────────────────────────────────────────────────────────────────────────────

func TestFrequencies_ValoresPorDefecto(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	cleanup, purge, scan := uc.Frequencies()
	assert.Equal(t, usecase.DefaultCleanupFrequencyMinutes, cleanup)
	assert.Equal(t, usecase.DefaultPurgeFrequencyMinutes, purge)
	assert.Equal(t, usecase.DefaultScanFrequencyMinutes, scan)
	assert.Equal(t, usecase.DefaultRetentionDays, uc.RetentionDays())
}

func TestFrequencies_ValoresPersistidos(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.values[entity.SettingCleanupFrequencyMinutes] = "30"
	repo.values[entity.SettingScanFrequencyMinutes] = "5"
	uc := usecase.NewSettingUseCase(repo)

	cleanup, purge, scan := uc.Frequencies()
	assert.Equal(t, 30, cleanup)
	assert.Equal(t, usecase.DefaultPurgeFrequencyMinutes, purge, "sin valor persistido aplica el default")
	assert.Equal(t, 5, scan)
}

func TestFrequencies_ValorCorrupto_UsaDefault(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.values[entity.SettingPurgeFrequencyMinutes] = "cada-noche"
	uc := usecase.NewSettingUseCase(repo)

	_, purge, _ := uc.Frequencies()
	assert.Equal(t, usecase.DefaultPurgeFrequencyMinutes, purge)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSettings_PersisteLote(t *testing.T) {
	repo := newFakeSettingRepo()
	uc := usecase.NewSettingUseCase(repo)

	err := uc.Update(dto.UpdateSettingsRequest{Values: map[string]string{
		entity.SettingScanFrequencyMinutes: "10",
		entity.SettingRetentionDays:        "730",
	}})
	require.NoError(t, err)
	assert.Equal(t, "10", repo.values[entity.SettingScanFrequencyMinutes])
	assert.Equal(t, "730", repo.values[entity.SettingRetentionDays])
}

func TestUpdateSettings_ClaveDesconocida(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	err := uc.Update(dto.UpdateSettingsRequest{Values: map[string]string{"tema_oscuro": "si"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateSettings_FueraDeRango(t *testing.T) {
	repo := newFakeSettingRepo()
	uc := usecase.NewSettingUseCase(repo)

	err := uc.Update(dto.UpdateSettingsRequest{Values: map[string]string{
		entity.SettingScanFrequencyMinutes: "0",
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.values, "un lote inválido no debe persistir nada")
}

func TestUpdateSettings_ValorNoNumerico(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	err := uc.Update(dto.UpdateSettingsRequest{Values: map[string]string{
		entity.SettingRetentionDays: "un año",
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
