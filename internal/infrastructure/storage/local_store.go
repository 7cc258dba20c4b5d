package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
)

// LocalStore guarda los documentos en disco con direccionamiento por
// contenido: la ruta se deriva del SHA-256, así dos cargas del mismo archivo
// apuntan al mismo blob y nada depende del nombre original.
type LocalStore struct {
	base string
}

var (
	_ ingest.FileStore = (*LocalStore)(nil)
	_ docs.FileRemover = (*LocalStore)(nil)
)

// NewLocalStore crea el almacén sobre el directorio base, creándolo si falta.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de almacén %s: %w", base, err)
	}
	return &LocalStore{base: base}, nil
}

// Save escribe el contenido y devuelve la ruta relativa dentro del almacén:
// ab/cdef....pdf (dos niveles por los primeros bytes del hash, extensión
// original conservada para servir el archivo con su tipo).
func (s *LocalStore) Save(name string, content []byte) (string, error) {
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	rel := filepath.Join(hash[:2], hash[2:]+filepath.Ext(name))

	full := filepath.Join(s.base, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("crear subdirectorio: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("escribir %s: %w", rel, err)
	}
	return rel, nil
}

// FullPath convierte una ruta relativa del almacén en ruta absoluta.
func (s *LocalStore) FullPath(rel string) string {
	return filepath.Join(s.base, rel)
}

// Remove elimina un blob del almacén. Un blob ya ausente no es error: la
// purga puede reintentarse sin quedar atascada.
func (s *LocalStore) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.base, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar %s: %w", rel, err)
	}
	return nil
}

// SweepTemp elimina de un directorio temporal los archivos más viejos que
// maxAge. Devuelve cuántos se eliminaron; lo invoca el job de limpieza.
func SweepTemp(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("leer directorio temporal %s: %w", dir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("eliminar temporal %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
