package queue

// Tipos de tarea que viajan por la cola. Los tres jobs repetibles no llevan
// payload: todo su estado vive en la base de datos y el almacén.
const (
	TaskEmailDeliver = "email:deliver"
	TaskDocsPurge    = "docs:purge"
	TaskFilesCleanup = "files:cleanup"
	TaskIngestScan   = "ingest:scan"
)

// RepeatableJobs son los jobs que el planificador registra con frecuencia
// configurable. El orden es el de presentación en el portal.
var RepeatableJobs = []string{TaskDocsPurge, TaskFilesCleanup, TaskIngestScan}
