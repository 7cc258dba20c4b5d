package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Docuport-api/internal/application/usecase"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/queue"
	"github.com/jhoicas/Docuport-api/internal/infrastructure/scheduler"
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
		Msg("iniciando planificador")

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

	// Las frecuencias de los jobs viven en la tabla settings.
	settingUC := usecase.NewSettingUseCase(postgres.NewSettingRepository(pool))

	asynqScheduler := asynq.NewScheduler(queue.AsynqRedisOpt(cfg.Redis), nil)
	inspector := asynq.NewInspector(queue.AsynqRedisOpt(cfg.Redis))
	defer inspector.Close()

	sched := scheduler.New(
		cfg.Scheduler,
		settingUC,
		asynqScheduler,
		inspector,
		scheduler.NewRedisLastRuns(rdb),
	)

	// Sin broker el proceso no puede operar: verificación con reintentos y
	// salida fatal si se agotan.
	if err := sched.WaitReady(ctx); err != nil {
		log.Fatal().Err(err).Msg("verificación del broker")
	}

	// Ejecuciones perdidas mientras el proceso estuvo abajo: solo se advierte,
	// el cron retomará el ciclo normal.
	sched.WarnMissed(ctx)

	if err := sched.Reload(); err != nil {
		log.Fatal().Err(err).Msg("registro de jobs repetibles")
	}

	if err := asynqScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("arranque del planificador")
	}

	go queue.Heartbeat(ctx, rdb, queue.HeartbeatKeyScheduler, cfg.Scheduler.HeartbeatInterval)

	// Recarga en caliente: el API publica cuando cambian los settings.
	reloads := queue.NewReloadBus(rdb).Subscribe(ctx)
	go func() {
		for range reloads {
			log.Info().Msg("aviso de cambio de configuración, re-registrando jobs")
			if err := sched.Reload(); err != nil {
				log.Error().Err(err).Msg("recarga de jobs repetibles")
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando planificador...")

	// Los registros repetibles quedan en Redis: al volver el proceso se
	// re-registran y el ciclo continúa donde iba.
	asynqScheduler.Shutdown()
	cancel()

	log.Info().Msg("planificador detenido")
}
