// Package scheduler registra los jobs repetibles en la cola según las
// frecuencias configuradas, verifica la conectividad con el broker al
// arrancar y detecta ejecuciones perdidas comparando las marcas de última
// ejecución.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Docuport-api/internal/infrastructure/queue"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

// FrequencySource expone las frecuencias configuradas (en minutos) de los
// jobs repetibles. Lo implementa el caso de uso de settings.
type FrequencySource interface {
	Frequencies() (cleanup, purge, scan int)
}

// Registrar registra y retira entradas repetibles en el planificador de la
// cola. Lo implementa *asynq.Scheduler.
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (entryID string, err error)
	Unregister(entryID string) error
}

// QueuePinger verifica conectividad con el broker consultando las colas.
// Lo implementa *asynq.Inspector.
type QueuePinger interface {
	Queues() ([]string, error)
}

// LastRunReader lee la marca de última ejecución de un job. El cero indica
// que el job nunca ha corrido (o la marca expiró).
type LastRunReader interface {
	LastRun(ctx context.Context, job string) (time.Time, error)
}

// Scheduler coordina el registro de jobs repetibles. El ciclo de vida del
// proceso (señales, heartbeat, apagado) lo maneja el binario que lo aloja.
type Scheduler struct {
	cfg    config.SchedulerConfig
	source FrequencySource
	reg    Registrar
	ping   QueuePinger
	runs   LastRunReader

	mu      sync.Mutex
	entries []string
}

// New construye el planificador.
func New(
	cfg config.SchedulerConfig,
	source FrequencySource,
	reg Registrar,
	ping QueuePinger,
	runs LastRunReader,
) *Scheduler {
	return &Scheduler{cfg: cfg, source: source, reg: reg, ping: ping, runs: runs}
}

// WaitReady verifica la conectividad con el broker consultando las colas,
// con reintentos a intervalo fijo. Si nunca responde, el proceso no puede
// operar y el llamador debe abortar.
func (s *Scheduler) WaitReady(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.ReadyRetries; attempt++ {
		if _, lastErr = s.ping.Queues(); lastErr == nil {
			log.Printf("[SCHEDULER] broker disponible (intento %d/%d)", attempt, s.cfg.ReadyRetries)
			return nil
		}
		log.Printf("[SCHEDULER] broker no disponible (intento %d/%d): %v",
			attempt, s.cfg.ReadyRetries, lastErr)

		if attempt == s.cfg.ReadyRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.ReadyDelay):
		}
	}
	return fmt.Errorf("broker no disponible tras %d intentos: %w", s.cfg.ReadyRetries, lastErr)
}

// Reload retira todas las entradas registradas y las vuelve a registrar con
// las frecuencias vigentes. Retirar antes de registrar evita duplicar
// programaciones entre reinicios y recargas de settings.
func (s *Scheduler) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entryID := range s.entries {
		if err := s.reg.Unregister(entryID); err != nil {
			log.Printf("[SCHEDULER] error retirando entrada %s: %v", entryID, err)
		}
	}
	s.entries = nil

	cleanup, purge, scan := s.source.Frequencies()
	jobs := []struct {
		task    string
		minutes int
	}{
		{queue.TaskFilesCleanup, cleanup},
		{queue.TaskDocsPurge, purge},
		{queue.TaskIngestScan, scan},
	}

	for _, job := range jobs {
		spec, err := FrequencyToCron(job.minutes)
		if err != nil {
			return fmt.Errorf("job %s: %w", job.task, err)
		}
		entryID, err := s.reg.Register(spec, asynq.NewTask(job.task, nil),
			asynq.Queue(queue.QueueDefault),
			asynq.MaxRetry(0),
			asynq.Timeout(30*time.Minute),
		)
		if err != nil {
			return fmt.Errorf("registrar %s (%s): %w", job.task, spec, err)
		}
		s.entries = append(s.entries, entryID)
		log.Printf("[SCHEDULER] %s programado: %s (cada %d min)", job.task, spec, job.minutes)
	}
	return nil
}

// Entries devuelve los IDs de las entradas registradas.
func (s *Scheduler) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

// MissedJobs devuelve los jobs cuya última ejecución quedó más atrás que el
// umbral tolerado. Solo considera jobs que ya corrieron alguna vez: sin
// marca no hay línea base contra la cual medir.
func (s *Scheduler) MissedJobs(ctx context.Context, now time.Time) ([]string, error) {
	var missed []string
	for _, job := range queue.RepeatableJobs {
		last, err := s.runs.LastRun(ctx, job)
		if err != nil {
			return nil, fmt.Errorf("leer última ejecución de %s: %w", job, err)
		}
		if last.IsZero() {
			continue
		}
		if now.Sub(last) > s.cfg.MissedThreshold {
			missed = append(missed, job)
		}
	}
	return missed, nil
}

// WarnMissed registra una advertencia por cada job con ejecuciones perdidas.
// Solo advierte: la entrada repetible sigue vigente y el job correrá en su
// próximo turno.
func (s *Scheduler) WarnMissed(ctx context.Context) {
	missed, err := s.MissedJobs(ctx, time.Now())
	if err != nil {
		log.Printf("[SCHEDULER] error detectando ejecuciones perdidas: %v", err)
		return
	}
	for _, job := range missed {
		log.Printf("[SCHEDULER] advertencia: %s lleva más de %s sin ejecutarse",
			job, s.cfg.MissedThreshold)
	}
}

// RedisLastRuns lee las marcas de última ejecución desde Redis.
type RedisLastRuns struct {
	rdb *redis.Client
}

var _ LastRunReader = (*RedisLastRuns)(nil)

// NewRedisLastRuns crea el lector sobre la conexión Redis.
func NewRedisLastRuns(rdb *redis.Client) *RedisLastRuns {
	return &RedisLastRuns{rdb: rdb}
}

// LastRun devuelve la marca del job, o el cero si no existe.
func (r *RedisLastRuns) LastRun(ctx context.Context, job string) (time.Time, error) {
	value, err := r.rdb.Get(ctx, queue.LastRunKey(job)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("marca corrupta %q: %w", value, err)
	}
	return time.Unix(unix, 0), nil
}
