package repository

import "time"

// EmailDelayStats percentiles de demora entre encolado y envío de correos.
type EmailDelayStats struct {
	Count int64
	P50   time.Duration
	P90   time.Duration
	P99   time.Duration
}

// DocumentCounts conteo de documentos por estado para el dashboard.
type DocumentCounts struct {
	Registered  int64
	NeedsReview int64
	Purged      int64
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// EmailDelayPercentiles calcula percentiles de (sent_at - queued_at) sobre
	// los correos enviados desde la fecha indicada.
	EmailDelayPercentiles(since time.Time) (*EmailDelayStats, error)
	DocumentCountsByCompany(companyID string) (*DocumentCounts, error)
}
