package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveDireccionaPorContenido(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	rel1, err := store.Save("factura.pdf", []byte("contenido"))
	require.NoError(t, err)
	rel2, err := store.Save("otro-nombre.pdf", []byte("contenido"))
	require.NoError(t, err)

	// Mismo contenido → mismo blob, sin importar el nombre original.
	assert.Equal(t, rel1, rel2)
	assert.Equal(t, ".pdf", filepath.Ext(rel1))

	saved, err := os.ReadFile(store.FullPath(rel1))
	require.NoError(t, err)
	assert.Equal(t, []byte("contenido"), saved)
}

func TestLocalStore_RemoveIdempotente(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("factura.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(store.FullPath(rel))
	assert.True(t, os.IsNotExist(err))

	// Un segundo Remove del mismo blob no es error.
	assert.NoError(t, store.Remove(rel))
}

func TestSweepTemp_SoloEliminaViejos(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "viejo.tmp")
	recent := filepath.Join(dir, "reciente.tmp")
	require.NoError(t, os.WriteFile(old, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(recent, []byte("b"), 0o644))
	require.NoError(t, os.Chtimes(old, time.Now().Add(-48*time.Hour), time.Now().Add(-48*time.Hour)))

	removed, err := SweepTemp(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(recent)
	assert.NoError(t, err)
}

func TestSweepTemp_DirectorioInexistente(t *testing.T) {
	removed, err := SweepTemp(filepath.Join(t.TempDir(), "no-existe"), time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 0, removed)
}
