package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/domain/match"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/mailer"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/parser"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/queue"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/source"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/storage"
	"github.com/jhoicas/Docuport-api/pkg/config"
	"github.com/jhoicas/Docuport-api/pkg/logger"
)

// tempMaxAge antigüedad mínima de un archivo temporal para que lo barra el
// job de limpieza.
const tempMaxAge = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := queue.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	noteRepo := postgres.NewCreditNoteRepository(pool)
	statementRepo := postgres.NewStatementRepository(pool)
	fileRepo := postgres.NewDocumentFileRepository(pool)
	emailTplRepo := postgres.NewEmailTemplateRepository(pool)
	emailLogRepo := postgres.NewEmailLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El worker entrega correos por SMTP y además encola: el escaneo registra
	// documentos y sus notificaciones pasan por la cola de correos.
	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	emailUC := notify.NewEmailUseCase(emailTplRepo, emailLogRepo, queueClient, smtpMailer)

	store, err := storage.NewLocalStore(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de archivos")
	}

	settingUC := usecase.NewSettingUseCase(settingRepo)
	retentionUC := docs.NewRetentionUseCase(
		companyRepo, invoiceRepo, noteRepo, statementRepo, fileRepo, store, settingUC,
	)

	// Orígenes de escaneo automático: los vacíos quedan deshabilitados.
	var sources []ingest.DocumentSource
	if cfg.Ingest.FolderPath != "" {
		sources = append(sources, source.NewFolderSource(cfg.Ingest.FolderPath))
	}
	if cfg.Ingest.FTPHost != "" {
		sources = append(sources, source.NewFTPSource(cfg.Ingest))
	}
	log.Info().Int("sources", len(sources)).Msg("orígenes de escaneo configurados")

	ingestUC := ingest.NewUseCase(
		fileRepo, supplierRepo, companyRepo, templateRepo,
		store, parser.NewExtractor(), match.NewMatcher(), emailUC, txRunner,
		sources...,
	)

	handlers := queue.NewHandlers(emailUC, retentionUC, ingestUC, rdb, cfg.Storage.TempPath, tempMaxAge)

	srv := asynq.NewServer(queue.AsynqRedisOpt(cfg.Redis), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue.QueueMails:   2,
			queue.QueueDefault: 1,
		},
	})

	if err := srv.Start(handlers.Mux()); err != nil {
		log.Fatal().Err(err).Msg("arranque del servidor de cola")
	}

	// Un heartbeat por cola atendida; el dashboard los consulta.
	go queue.Heartbeat(ctx, rdb, queue.HeartbeatKeyWorker(queue.QueueDefault), cfg.Scheduler.HeartbeatInterval)
	go queue.Heartbeat(ctx, rdb, queue.HeartbeatKeyWorker(queue.QueueMails), cfg.Scheduler.HeartbeatInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando worker...")

	// Deja terminar los trabajos en curso antes de salir.
	srv.Stop()
	srv.Shutdown()
	cancel()

	log.Info().Msg("worker detenido")
}
