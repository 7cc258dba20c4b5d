package entity

import "time"

// Claves de settings editables por el administrador.
const (
	SettingCleanupFrequencyMinutes = "cleanup_frequency_minutes" // barrido de archivos temporales
	SettingPurgeFrequencyMinutes   = "purge_frequency_minutes"   // purga por retención
	SettingScanFrequencyMinutes    = "scan_frequency_minutes"    // escaneo de carpeta/FTP
	SettingRetentionDays           = "retention_days"            // retención global de documentos
)

// Setting par clave/valor de configuración persistida (el valor siempre es texto).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
