package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/infrastructure/queue"
	"github.com/jhoicas/Docuport-api/pkg/config"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeSource struct {
	cleanup, purge, scan int
}

func (f *fakeSource) Frequencies() (int, int, int) { return f.cleanup, f.purge, f.scan }

type registeredEntry struct {
	spec string
	task string
}

type fakeRegistrar struct {
	nextID  int
	entries map[string]registeredEntry
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{entries: map[string]registeredEntry{}}
}

func (f *fakeRegistrar) Register(spec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	f.nextID++
	id := fmt.Sprintf("entry-%d", f.nextID)
	f.entries[id] = registeredEntry{spec: spec, task: task.Type()}
	return id, nil
}

func (f *fakeRegistrar) Unregister(entryID string) error {
	if _, ok := f.entries[entryID]; !ok {
		return errors.New("entrada desconocida")
	}
	delete(f.entries, entryID)
	return nil
}

type fakePinger struct {
	failures int // fallos antes de responder
	calls    int
}

func (f *fakePinger) Queues() ([]string, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection refused")
	}
	return []string{"default"}, nil
}

type fakeLastRuns struct {
	runs map[string]time.Time
}

func (f *fakeLastRuns) LastRun(_ context.Context, job string) (time.Time, error) {
	return f.runs[job], nil
}

func newScheduler(source *fakeSource, reg *fakeRegistrar, ping *fakePinger, runs *fakeLastRuns) *Scheduler {
	cfg := config.SchedulerConfig{
		ReadyRetries:      3,
		ReadyDelay:        time.Millisecond,
		HeartbeatInterval: 30 * time.Second,
		MissedThreshold:   90 * time.Minute,
	}
	return New(cfg, source, reg, ping, runs)
}

// ──────────────────────────────────────────────────────────────────────────────
// WaitReady — sondeo de conectividad con el broker
// ──────────────────────────────────────────────────────────────────────────────

func TestWaitReady_RespondeAlPrimerIntento(t *testing.T) {
	ping := &fakePinger{}
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), ping, &fakeLastRuns{})

	require.NoError(t, s.WaitReady(context.Background()))
	assert.Equal(t, 1, ping.calls)
}

func TestWaitReady_ReintentaYRecupera(t *testing.T) {
	ping := &fakePinger{failures: 2}
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), ping, &fakeLastRuns{})

	require.NoError(t, s.WaitReady(context.Background()))
	assert.Equal(t, 3, ping.calls)
}

func TestWaitReady_AgotaReintentos(t *testing.T) {
	ping := &fakePinger{failures: 100}
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), ping, &fakeLastRuns{})

	err := s.WaitReady(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 intentos")
	assert.Equal(t, 3, ping.calls)
}

func TestWaitReady_ContextoCancelado(t *testing.T) {
	ping := &fakePinger{failures: 100}
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), ping, &fakeLastRuns{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.WaitReady(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reload — registro de jobs repetibles sin duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestReload_RegistraLosTresJobs(t *testing.T) {
	reg := newFakeRegistrar()
	s := newScheduler(&fakeSource{cleanup: 60, purge: 1440, scan: 15}, reg, &fakePinger{}, &fakeLastRuns{})

	require.NoError(t, s.Reload())
	require.Len(t, reg.entries, 3)

	bySpec := map[string]string{}
	for _, e := range reg.entries {
		bySpec[e.task] = e.spec
	}
	assert.Equal(t, "0 * * * *", bySpec[queue.TaskFilesCleanup])
	assert.Equal(t, "0 0 * * *", bySpec[queue.TaskDocsPurge])
	assert.Equal(t, "*/15 * * * *", bySpec[queue.TaskIngestScan])
}

func TestReload_NoDuplicaEntradasEntreRecargas(t *testing.T) {
	reg := newFakeRegistrar()
	source := &fakeSource{cleanup: 60, purge: 1440, scan: 15}
	s := newScheduler(source, reg, &fakePinger{}, &fakeLastRuns{})

	require.NoError(t, s.Reload())
	first := s.Entries()

	// El usuario cambia la frecuencia de escaneo y se recarga.
	source.scan = 30
	require.NoError(t, s.Reload())

	assert.Len(t, reg.entries, 3, "las entradas anteriores deben retirarse antes de registrar")
	for _, id := range first {
		assert.NotContains(t, reg.entries, id)
	}
	for _, e := range reg.entries {
		if e.task == queue.TaskIngestScan {
			assert.Equal(t, "*/30 * * * *", e.spec)
		}
	}
}

func TestReload_FrecuenciaInvalidaNoRegistraParcial(t *testing.T) {
	reg := newFakeRegistrar()
	s := newScheduler(&fakeSource{cleanup: 60, purge: 0, scan: 15}, reg, &fakePinger{}, &fakeLastRuns{})

	err := s.Reload()
	require.Error(t, err)
	// La primera entrada (cleanup) alcanzó a registrarse; la recarga siguiente
	// la retirará. Lo importante es que el error llegue al llamador.
	assert.Contains(t, err.Error(), queue.TaskDocsPurge)
}

// ──────────────────────────────────────────────────────────────────────────────
// MissedJobs — detección de ejecuciones perdidas (solo advertencia)
// ──────────────────────────────────────────────────────────────────────────────

func TestMissedJobs_DetectaBrechaMayorAlUmbral(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	runs := &fakeLastRuns{runs: map[string]time.Time{
		queue.TaskDocsPurge:    now.Add(-4 * time.Hour),    // perdido
		queue.TaskFilesCleanup: now.Add(-20 * time.Minute), // al día
		// TaskIngestScan sin marca: nunca ha corrido
	}}
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), &fakePinger{}, runs)

	missed, err := s.MissedJobs(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{queue.TaskDocsPurge}, missed)
}

func TestMissedJobs_SinMarcasNoAdvierte(t *testing.T) {
	s := newScheduler(&fakeSource{}, newFakeRegistrar(), &fakePinger{}, &fakeLastRuns{runs: map[string]time.Time{}})

	missed, err := s.MissedJobs(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, missed)
}
