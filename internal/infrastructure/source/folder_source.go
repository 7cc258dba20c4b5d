package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// FolderSource escanea una carpeta local organizada por NIT: cada subcarpeta
// lleva el NIT de la empresa destino y contiene los documentos a ingresar.
type FolderSource struct {
	base string
}

var _ ingest.DocumentSource = (*FolderSource)(nil)

// NewFolderSource crea el origen de carpeta local sobre el directorio base.
func NewFolderSource(base string) *FolderSource {
	return &FolderSource{base: base}
}

func (s *FolderSource) Name() string { return entity.FileSourceFolder }

// Pull lee todos los archivos de las subcarpetas por NIT. Los archivos sueltos
// en la raíz no tienen empresa asignable y se ignoran.
func (s *FolderSource) Pull(ctx context.Context) ([]ingest.IncomingFile, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("leer carpeta base %s: %w", s.base, err)
	}

	var files []ingest.IncomingFile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		nit := entry.Name()
		sub, err := os.ReadDir(filepath.Join(s.base, nit))
		if err != nil {
			return nil, fmt.Errorf("leer subcarpeta %s: %w", nit, err)
		}
		for _, f := range sub {
			if f.IsDir() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			content, err := os.ReadFile(filepath.Join(s.base, nit, f.Name()))
			if err != nil {
				return nil, fmt.Errorf("leer %s/%s: %w", nit, f.Name(), err)
			}
			files = append(files, ingest.IncomingFile{NIT: nit, Name: f.Name(), Content: content})
		}
	}
	return files, nil
}

// Discard elimina de la carpeta un archivo ya procesado o duplicado.
func (s *FolderSource) Discard(_ context.Context, nit, name string) error {
	if err := os.Remove(filepath.Join(s.base, nit, name)); err != nil {
		return fmt.Errorf("eliminar %s/%s: %w", nit, name, err)
	}
	return nil
}
