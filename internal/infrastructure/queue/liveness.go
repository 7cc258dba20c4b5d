package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Docuport-api/internal/application/analytics"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
)

// Liveness consulta las claves de heartbeat: el planificador y un worker por
// cola. Las claves llevan TTL, así que basta con verificar existencia.
type Liveness struct {
	rdb    *redis.Client
	queues []string
}

var _ analytics.LivenessChecker = (*Liveness)(nil)

// NewLiveness crea el verificador para el planificador y las colas dadas.
func NewLiveness(rdb *redis.Client, queues ...string) *Liveness {
	return &Liveness{rdb: rdb, queues: queues}
}

// Workers devuelve el estado de cada proceso según su clave de heartbeat.
func (l *Liveness) Workers(ctx context.Context) ([]dto.WorkerStatus, error) {
	statuses := make([]dto.WorkerStatus, 0, len(l.queues)+1)

	alive, err := l.exists(ctx, HeartbeatKeyScheduler)
	if err != nil {
		return nil, err
	}
	statuses = append(statuses, dto.WorkerStatus{Name: "scheduler", Alive: alive})

	for _, q := range l.queues {
		alive, err := l.exists(ctx, HeartbeatKeyWorker(q))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, dto.WorkerStatus{Name: "worker:" + q, Alive: alive})
	}
	return statuses, nil
}

func (l *Liveness) exists(ctx context.Context, key string) (bool, error) {
	n, err := l.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("consultar heartbeat %s: %w", key, err)
	}
	return n > 0, nil
}
