package ingest

import (
	"context"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// Extractor extrae los campos definidos por una plantilla de un archivo del
// almacén. Devuelve nombre de campo → texto crudo; los campos que no se
// pudieron leer simplemente no aparecen en el mapa.
type Extractor interface {
	Extract(fullPath string, tpl *entity.ParseTemplate) (map[string]string, error)
}

// FileStore guarda archivos ingresados y resuelve sus rutas.
type FileStore interface {
	// Save guarda el contenido y devuelve la ruta relativa dentro del almacén.
	Save(name string, content []byte) (string, error)
	// FullPath convierte una ruta relativa del almacén en ruta absoluta.
	FullPath(rel string) string
}

// IncomingFile es un archivo encontrado por un origen de escaneo. El NIT viene
// del subdirectorio donde estaba el archivo e identifica la empresa destino.
type IncomingFile struct {
	NIT     string
	Name    string
	Content []byte
}

// DocumentSource es un origen escaneable de documentos (carpeta local, FTP).
type DocumentSource interface {
	// Name identifica el origen: folder, ftp.
	Name() string
	// Pull lista y descarga los archivos pendientes del origen.
	Pull(ctx context.Context) ([]IncomingFile, error)
	// Discard retira un archivo ya procesado para que no vuelva a escanearse.
	Discard(ctx context.Context, nit, name string) error
}

// Notifier encola un correo a partir de una plantilla.
type Notifier interface {
	Queue(ctx context.Context, companyID, templateCode, recipient string, data any) (string, error)
}

// TxRunner ejecuta el registro de un documento dentro de una transacción:
// la creación del documento y el cambio de estado del archivo van juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		files repository.DocumentFileRepository,
		invoices repository.InvoiceRepository,
		notes repository.CreditNoteRepository,
		statements repository.StatementRepository,
	) error) error
}
