package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/ingest"
)

func seedFolder(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "900123456"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "800555001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "900123456", "factura.pdf"), []byte("pdf-1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "800555001", "extracto.xlsx"), []byte("xls-1"), 0o644))
	// Un archivo suelto en la raíz no tiene NIT y debe ignorarse.
	require.NoError(t, os.WriteFile(filepath.Join(base, "suelto.pdf"), []byte("x"), 0o644))
	return base
}

func TestFolderSource_PullRecorreSubcarpetasPorNIT(t *testing.T) {
	src := NewFolderSource(seedFolder(t))

	files, err := src.Pull(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	byNIT := map[string]ingest.IncomingFile{}
	for _, f := range files {
		byNIT[f.NIT] = f
	}
	assert.Equal(t, "factura.pdf", byNIT["900123456"].Name)
	assert.Equal(t, []byte("pdf-1"), byNIT["900123456"].Content)
	assert.Equal(t, "extracto.xlsx", byNIT["800555001"].Name)
}

func TestFolderSource_DiscardEliminaSoloEseArchivo(t *testing.T) {
	base := seedFolder(t)
	src := NewFolderSource(base)

	require.NoError(t, src.Discard(context.Background(), "900123456", "factura.pdf"))

	_, err := os.Stat(filepath.Join(base, "900123456", "factura.pdf"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "800555001", "extracto.xlsx"))
	assert.NoError(t, err)
}

func TestFolderSource_DiscardArchivoInexistente(t *testing.T) {
	src := NewFolderSource(seedFolder(t))
	err := src.Discard(context.Background(), "900123456", "no-existe.pdf")
	assert.Error(t, err)
}
