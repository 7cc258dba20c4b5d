package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// EmailDelayPercentiles calcula percentiles de (sent_at - queued_at) sobre los
// correos enviados desde la fecha indicada. Devuelve ceros si no hay filas.
func (r *AnalyticsRepo) EmailDelayPercentiles(since time.Time) (*repository.EmailDelayStats, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(EXTRACT(EPOCH FROM PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY sent_at - queued_at)), 0),
	    COALESCE(EXTRACT(EPOCH FROM PERCENTILE_CONT(0.9) WITHIN GROUP (ORDER BY sent_at - queued_at)), 0),
	    COALESCE(EXTRACT(EPOCH FROM PERCENTILE_CONT(0.99) WITHIN GROUP (ORDER BY sent_at - queued_at)), 0)
	FROM email_logs
	WHERE status = $1 AND sent_at IS NOT NULL AND queued_at >= $2`

	var stats repository.EmailDelayStats
	var p50, p90, p99 float64
	err := r.pool.QueryRow(context.Background(), query, entity.EmailStatusSent, since).Scan(
		&stats.Count, &p50, &p90, &p99,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.EmailDelayPercentiles: %w", err)
	}
	stats.P50 = secondsToDuration(p50)
	stats.P90 = secondsToDuration(p90)
	stats.P99 = secondsToDuration(p99)
	return &stats, nil
}

// DocumentCountsByCompany cuenta documentos por estado en las tres tablas.
func (r *AnalyticsRepo) DocumentCountsByCompany(companyID string) (*repository.DocumentCounts, error) {
	const query = `
	SELECT
	    COALESCE(SUM(CASE WHEN status = 'registered'   THEN 1 ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'needs_review' THEN 1 ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'purged'       THEN 1 ELSE 0 END), 0)
	FROM (
	    SELECT status FROM invoices     WHERE company_id = $1
	    UNION ALL
	    SELECT status FROM credit_notes WHERE company_id = $1
	    UNION ALL
	    SELECT status FROM statements   WHERE company_id = $1
	) docs`

	var counts repository.DocumentCounts
	err := r.pool.QueryRow(context.Background(), query, companyID).Scan(
		&counts.Registered, &counts.NeedsReview, &counts.Purged,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.DocumentCountsByCompany: %w", err)
	}
	return &counts, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
