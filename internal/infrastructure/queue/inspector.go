package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Docuport-api/internal/application/analytics"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

// Inspector consulta el estado de las colas asynq para el diagnóstico.
type Inspector struct {
	inspector *asynq.Inspector
}

var _ analytics.QueueInspector = (*Inspector)(nil)

// NewInspector crea el inspector de colas.
func NewInspector(cfg config.RedisConfig) *Inspector {
	return &Inspector{inspector: asynq.NewInspector(AsynqRedisOpt(cfg))}
}

// QueueStatus devuelve los contadores de cada cola conocida por el broker.
func (i *Inspector) QueueStatus(_ context.Context) ([]dto.QueueStatus, error) {
	names, err := i.inspector.Queues()
	if err != nil {
		return nil, fmt.Errorf("listar colas: %w", err)
	}

	statuses := make([]dto.QueueStatus, 0, len(names))
	for _, name := range names {
		info, err := i.inspector.GetQueueInfo(name)
		if err != nil {
			return nil, fmt.Errorf("consultar cola %s: %w", name, err)
		}
		statuses = append(statuses, dto.QueueStatus{
			Name:      name,
			Pending:   info.Pending,
			Active:    info.Active,
			Scheduled: info.Scheduled,
			Retry:     info.Retry,
			Archived:  info.Archived,
		})
	}
	return statuses, nil
}

// Close cierra la conexión del inspector.
func (i *Inspector) Close() error {
	return i.inspector.Close()
}
