package entity

import "time"

// Orígenes de ingreso de un archivo.
const (
	FileSourceUpload = "upload" // carga manual desde el portal
	FileSourceFolder = "folder" // escaneo de carpeta local
	FileSourceFTP    = "ftp"    // escaneo de servidor FTP
)

// Estados de procesamiento de un archivo.
const (
	FileStatusStored = "stored" // guardado, pendiente de extracción
	FileStatusParsed = "parsed" // extraído y registrado como documento
	FileStatusFailed = "failed" // falló la extracción; ver Error
)

// DocumentFile representa el archivo físico ingresado (PDF o Excel), previo a
// su interpretación como factura, nota crédito o estado de cuenta.
type DocumentFile struct {
	ID           string
	CompanyID    string // vacío hasta que se resuelve a qué empresa pertenece
	OriginalName string
	StoragePath  string // ruta relativa dentro del almacén de archivos
	SHA256       string // hash del contenido; evita reingestar el mismo archivo
	SizeBytes    int64
	Source       string // ver constantes FileSource*
	Status       string // ver constantes FileStatus*
	Error        string // detalle del fallo de extracción, si aplica
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
