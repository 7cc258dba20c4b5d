package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

// Client encola tareas en asynq. Implementa notify.Enqueuer para el envío de
// correos y permite disparar manualmente los jobs repetibles desde el portal.
type Client struct {
	client *asynq.Client
}

var _ notify.Enqueuer = (*Client)(nil)

// NewClient crea el cliente de la cola.
func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(AsynqRedisOpt(cfg))}
}

// EnqueueEmail encola la entrega de un correo ya renderizado.
func (c *Client) EnqueueEmail(ctx context.Context, p notify.EmailPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serializar payload de correo: %w", err)
	}
	task := asynq.NewTask(TaskEmailDeliver, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueMails),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("encolar %s: %w", TaskEmailDeliver, err)
	}
	return nil
}

// EnqueueJob encola una corrida inmediata de un job repetible (disparo
// manual). Unique evita acumular corridas si ya hay una pendiente.
func (c *Client) EnqueueJob(ctx context.Context, taskType string) error {
	task := asynq.NewTask(taskType, nil)
	_, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Minute),
		asynq.Unique(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("encolar %s: %w", taskType, err)
	}
	return nil
}

// Close cierra la conexión del cliente.
func (c *Client) Close() error {
	return c.client.Close()
}
