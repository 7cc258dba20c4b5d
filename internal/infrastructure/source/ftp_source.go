package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

const ftpDialTimeout = 15 * time.Second

// FTPSource escanea un servidor FTP con la misma convención de la carpeta
// local: subdirectorios por NIT bajo la ruta configurada. Cada Pull abre y
// cierra su propia conexión; el servidor puede cortar sesiones inactivas
// entre corridas del job.
type FTPSource struct {
	host string
	user string
	pass string
	root string
}

var _ ingest.DocumentSource = (*FTPSource)(nil)

// NewFTPSource crea el origen FTP a partir de la configuración de ingreso.
func NewFTPSource(cfg config.IngestConfig) *FTPSource {
	return &FTPSource{
		host: cfg.FTPHost,
		user: cfg.FTPUser,
		pass: cfg.FTPPass,
		root: cfg.FTPPath,
	}
}

func (s *FTPSource) Name() string { return entity.FileSourceFTP }

func (s *FTPSource) connect(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(s.host, ftp.DialWithContext(ctx), ftp.DialWithTimeout(ftpDialTimeout))
	if err != nil {
		return nil, fmt.Errorf("conectar a FTP %s: %w", s.host, err)
	}
	if err := conn.Login(s.user, s.pass); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("login FTP: %w", err)
	}
	return conn, nil
}

// Pull descarga todos los archivos de los subdirectorios por NIT.
func (s *FTPSource) Pull(ctx context.Context) ([]ingest.IncomingFile, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	entries, err := conn.List(s.root)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", s.root, err)
	}

	var files []ingest.IncomingFile
	for _, entry := range entries {
		if entry.Type != ftp.EntryTypeFolder || entry.Name == "." || entry.Name == ".." {
			continue
		}
		nit := entry.Name
		sub, err := conn.List(path.Join(s.root, nit))
		if err != nil {
			return nil, fmt.Errorf("listar %s: %w", nit, err)
		}
		for _, f := range sub {
			if f.Type != ftp.EntryTypeFile {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			content, err := s.retrieve(conn, path.Join(s.root, nit, f.Name))
			if err != nil {
				return nil, err
			}
			files = append(files, ingest.IncomingFile{NIT: nit, Name: f.Name, Content: content})
		}
	}
	return files, nil
}

func (s *FTPSource) retrieve(conn *ftp.ServerConn, remote string) ([]byte, error) {
	resp, err := conn.Retr(remote)
	if err != nil {
		return nil, fmt.Errorf("descargar %s: %w", remote, err)
	}
	defer resp.Close()

	content, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", remote, err)
	}
	return content, nil
}

// Discard elimina del servidor un archivo ya procesado o duplicado.
func (s *FTPSource) Discard(ctx context.Context, nit, name string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	remote := path.Join(s.root, nit, name)
	if err := conn.Delete(remote); err != nil {
		return fmt.Errorf("eliminar %s: %w", remote, err)
	}
	return nil
}
