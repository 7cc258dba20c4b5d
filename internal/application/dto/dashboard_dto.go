package dto

// QueueStatus estado de una cola del backend de trabajos.
type QueueStatus struct {
	Name      string `json:"name"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
}

// WorkerStatus liveness de un proceso según su clave de heartbeat.
type WorkerStatus struct {
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

// EmailDelayResponse percentiles de demora de entrega de correos (ms).
type EmailDelayResponse struct {
	Count int64 `json:"count"`
	P50Ms int64 `json:"p50_ms"`
	P90Ms int64 `json:"p90_ms"`
	P99Ms int64 `json:"p99_ms"`
}

// DashboardResponse diagnóstico operativo del portal.
type DashboardResponse struct {
	Queues     []QueueStatus      `json:"queues"`
	Workers    []WorkerStatus     `json:"workers"`
	EmailDelay EmailDelayResponse `json:"email_delay"`
	Documents  struct {
		Registered  int64 `json:"registered"`
		NeedsReview int64 `json:"needs_review"`
		Purged      int64 `json:"purged"`
	} `json:"documents"`
}

// SettingResponse salida de un setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpdateSettingsRequest entrada para actualizar settings (clave → valor).
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" validate:"required,min=1"`
}
