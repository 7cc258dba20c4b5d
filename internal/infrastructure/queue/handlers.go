package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/storage"
)

// lastRunTTL las marcas de última ejecución sobreviven reinicios largos pero
// no para siempre; tras una semana sin correr el job la advertencia de
// ejecución perdida ya fue emitida de sobra.
const lastRunTTL = 7 * 24 * time.Hour

// Handlers agrupa las dependencias de los manejadores de tareas del worker.
type Handlers struct {
	email      *notify.EmailUseCase
	retention  *docs.RetentionUseCase
	ingestor   *ingest.UseCase
	rdb        *redis.Client
	tempPath   string
	tempMaxAge time.Duration
}

// NewHandlers construye los manejadores del worker.
func NewHandlers(
	email *notify.EmailUseCase,
	retention *docs.RetentionUseCase,
	ingestor *ingest.UseCase,
	rdb *redis.Client,
	tempPath string,
	tempMaxAge time.Duration,
) *Handlers {
	return &Handlers{
		email:      email,
		retention:  retention,
		ingestor:   ingestor,
		rdb:        rdb,
		tempPath:   tempPath,
		tempMaxAge: tempMaxAge,
	}
}

// Mux registra todos los manejadores y devuelve el mux listo para el servidor.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskEmailDeliver, h.handleEmailDeliver)
	mux.HandleFunc(TaskDocsPurge, h.handlePurge)
	mux.HandleFunc(TaskFilesCleanup, h.handleCleanup)
	mux.HandleFunc(TaskIngestScan, h.handleScan)
	return mux
}

func (h *Handlers) handleEmailDeliver(ctx context.Context, task *asynq.Task) error {
	var p notify.EmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// Payload corrupto: reintentar no lo arregla.
		return fmt.Errorf("payload de %s: %v: %w", TaskEmailDeliver, err, asynq.SkipRetry)
	}
	return h.email.Deliver(ctx, p)
}

func (h *Handlers) handlePurge(ctx context.Context, _ *asynq.Task) error {
	report, err := h.retention.Purge()
	if err != nil {
		return err
	}
	log.Printf("[WORKER][%s] purga completada: %d facturas, %d notas, %d estados, %d archivos",
		TaskDocsPurge, report.Invoices, report.CreditNotes, report.Statements, report.Files)
	h.markRun(ctx, TaskDocsPurge)
	return nil
}

func (h *Handlers) handleCleanup(ctx context.Context, _ *asynq.Task) error {
	removed, err := storage.SweepTemp(h.tempPath, h.tempMaxAge)
	if err != nil {
		return err
	}
	log.Printf("[WORKER][%s] limpieza completada: %d temporales eliminados", TaskFilesCleanup, removed)
	h.markRun(ctx, TaskFilesCleanup)
	return nil
}

func (h *Handlers) handleScan(ctx context.Context, _ *asynq.Task) error {
	report := h.ingestor.Scan(ctx)
	log.Printf("[WORKER][%s] escaneo completado: %d encontrados, %d ingresados, %d duplicados, %d fallidos",
		TaskIngestScan, report.Pulled, report.Ingested, report.Duplicates, report.Failed)
	h.markRun(ctx, TaskIngestScan)
	return nil
}

// markRun registra la última ejecución exitosa del job para la detección de
// ejecuciones perdidas. Un fallo aquí no invalida el trabajo ya hecho.
func (h *Handlers) markRun(ctx context.Context, job string) {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	if err := h.rdb.Set(ctx, LastRunKey(job), ts, lastRunTTL).Err(); err != nil {
		log.Printf("[WORKER][%s] error registrando última ejecución: %v", job, err)
	}
}
