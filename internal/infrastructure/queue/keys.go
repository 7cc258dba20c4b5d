// Package queue implementa sobre Redis la cola de trabajos (asynq), los
// heartbeats de proceso, las marcas de última ejecución de los jobs y el
// almacén efímero de retos 2FA.
package queue

// Nombres de las colas asynq.
const (
	QueueDefault = "default" // jobs programados: purga, limpieza, escaneo
	QueueMails   = "mails"   // entrega de correos
)

// Claves de heartbeat. Cada proceso refresca la suya con TTL; una clave
// ausente significa proceso caído o colgado.
const (
	HeartbeatKeyScheduler = "scheduler:heartbeat"
	heartbeatWorkerPrefix = "worker:heartbeat:"
)

// HeartbeatKeyWorker devuelve la clave de heartbeat del worker de una cola.
func HeartbeatKeyWorker(queue string) string {
	return heartbeatWorkerPrefix + queue
}

// LastRunKey devuelve la clave donde se registra la última ejecución de un
// job repetible (timestamp Unix). La lee el planificador para detectar
// ejecuciones perdidas.
func LastRunKey(job string) string {
	return "scheduler:lastrun:" + job
}

// challengeKey clave de un reto 2FA pendiente.
func challengeKey(id string) string {
	return "auth:challenge:" + id
}
