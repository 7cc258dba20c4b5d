package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Docuport-api/internal/application/analytics"
	"github.com/jhoicas/Docuport-api/internal/application/auth"
	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/application/notify"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/domain/match"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/parser"
	infrapdf "github.com/jhoicas/Docuport-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/queue"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Docuport-api/internal/interfaces/http"
	"github.com/jhoicas/Docuport-api/pkg/config"
	"github.com/jhoicas/Docuport-api/pkg/logger"
)

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
		Msg("iniciando API")

	ctx := context.Background()
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
	userRepo := postgres.NewUserRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	noteRepo := postgres.NewCreditNoteRepository(pool)
	statementRepo := postgres.NewStatementRepository(pool)
	fileRepo := postgres.NewDocumentFileRepository(pool)
	emailTplRepo := postgres.NewEmailTemplateRepository(pool)
	emailLogRepo := postgres.NewEmailLogRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cola de trabajos: el API solo encola, no entrega.
	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	emailUC := notify.NewEmailUseCase(emailTplRepo, emailLogRepo, queueClient, nil)

	challengeStore := queue.NewChallengeStore(rdb)
	authUC := auth.NewAuthUseCase(userRepo, challengeStore, emailUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	store, err := storage.NewLocalStore(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de archivos")
	}

	// Ingreso manual: sin orígenes de escaneo, esos corren en el worker.
	ingestUC := ingest.NewUseCase(
		fileRepo, supplierRepo, companyRepo, templateRepo,
		store, parser.NewExtractor(), match.NewMatcher(), emailUC, txRunner,
	)

	renderer := infrapdf.NewMarotoStatementRenderer()
	invoiceUC := docs.NewInvoiceUseCase(invoiceRepo, supplierRepo, companyRepo, emailUC)
	noteUC := docs.NewCreditNoteUseCase(noteRepo, invoiceRepo, supplierRepo, companyRepo, emailUC)
	statementUC := docs.NewStatementUseCase(statementRepo, supplierRepo, companyRepo, emailUC, renderer)

	inspector := queue.NewInspector(cfg.Redis)
	defer inspector.Close()
	liveness := queue.NewLiveness(rdb, queue.QueueDefault, queue.QueueMails)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, inspector, liveness)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo)
	settingUC := usecase.NewSettingUseCase(settingRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    30 << 20, // cargas de documentos por formulario
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Docuport API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		SupplierUC:  supplierUC,
		UserUC:      userUC,
		TemplateUC:  templateUC,
		SettingUC:   settingUC,
		InvoiceUC:   invoiceUC,
		NoteUC:      noteUC,
		StatementUC: statementUC,
		IngestUC:    ingestUC,
		EmailUC:     emailUC,
		DashboardUC: dashboardUC,
		Reload:      queue.NewReloadBus(rdb),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("API detenida")
}
