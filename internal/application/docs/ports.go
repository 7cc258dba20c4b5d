package docs

import (
	"context"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// Notifier encola un correo a partir de una plantilla. Lo implementa el caso
// de uso de correos; aquí solo interesa la firma.
type Notifier interface {
	Queue(ctx context.Context, companyID, templateCode, recipient string, data any) (string, error)
}

// FileRemover elimina un archivo físico del almacén por su ruta relativa.
// Eliminar una ruta inexistente no es un error.
type FileRemover interface {
	Remove(path string) error
}

// StatementRenderer genera el PDF resumen de un estado de cuenta.
type StatementRenderer interface {
	RenderSummary(statement *entity.Statement, companyName, supplierName string) ([]byte, error)
}

// RetentionPolicy expone los días de retención globales configurados.
type RetentionPolicy interface {
	RetentionDays() int
}
