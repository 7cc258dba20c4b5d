package analytics

import (
	"context"
	"log"
	"time"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// QueueInspector consulta el estado de las colas del backend de trabajos.
type QueueInspector interface {
	QueueStatus(ctx context.Context) ([]dto.QueueStatus, error)
}

// LivenessChecker consulta las claves de heartbeat de los procesos.
type LivenessChecker interface {
	Workers(ctx context.Context) ([]dto.WorkerStatus, error)
}

// emailDelayWindow ventana sobre la que se calculan los percentiles de demora.
const emailDelayWindow = 24 * time.Hour

// DashboardUseCase arma el diagnóstico operativo del portal: colas, liveness
// de procesos, demora de correos y conteos de documentos.
type DashboardUseCase struct {
	analytics repository.AnalyticsRepository
	queues    QueueInspector
	liveness  LivenessChecker
}

// NewDashboardUseCase construye el caso de uso con sus puertos.
func NewDashboardUseCase(
	analytics repository.AnalyticsRepository,
	queues QueueInspector,
	liveness LivenessChecker,
) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, queues: queues, liveness: liveness}
}

// Build arma el dashboard para una empresa. Las secciones que fallan se dejan
// vacías: un Redis caído no debe tumbar el diagnóstico completo.
func (uc *DashboardUseCase) Build(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	if queues, err := uc.queues.QueueStatus(ctx); err != nil {
		log.Printf("[DASHBOARD] error consultando colas: %v", err)
	} else {
		resp.Queues = queues
	}

	if workers, err := uc.liveness.Workers(ctx); err != nil {
		log.Printf("[DASHBOARD] error consultando heartbeats: %v", err)
	} else {
		resp.Workers = workers
	}

	delay, err := uc.analytics.EmailDelayPercentiles(time.Now().Add(-emailDelayWindow))
	if err != nil {
		return nil, err
	}
	resp.EmailDelay = dto.EmailDelayResponse{
		Count: delay.Count,
		P50Ms: delay.P50.Milliseconds(),
		P90Ms: delay.P90.Milliseconds(),
		P99Ms: delay.P99.Milliseconds(),
	}

	counts, err := uc.analytics.DocumentCountsByCompany(companyID)
	if err != nil {
		return nil, err
	}
	resp.Documents.Registered = counts.Registered
	resp.Documents.NeedsReview = counts.NeedsReview
	resp.Documents.Purged = counts.Purged

	return resp, nil
}
