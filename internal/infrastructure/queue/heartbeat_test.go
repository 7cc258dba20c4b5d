package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBeatStore struct {
	mu   sync.Mutex
	sets []time.Duration // TTLs recibidos, en orden
	dels []string

	setCh chan struct{}
	delCh chan struct{}
}

func newFakeBeatStore() *fakeBeatStore {
	return &fakeBeatStore{
		setCh: make(chan struct{}, 16),
		delCh: make(chan struct{}, 1),
	}
}

func (s *fakeBeatStore) Set(_ context.Context, _, _ string, ttl time.Duration) error {
	s.mu.Lock()
	s.sets = append(s.sets, ttl)
	s.mu.Unlock()
	select {
	case s.setCh <- struct{}{}:
	default:
	}
	return nil
}

func (s *fakeBeatStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	s.dels = append(s.dels, key)
	s.mu.Unlock()
	select {
	case s.delCh <- struct{}{}:
	default:
	}
	return nil
}

func (s *fakeBeatStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets)
}

func waitSignal(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// heartbeat
// ──────────────────────────────────────────────────────────────────────────────

func TestHeartbeat_PrimerLatidoInmediatoConTTLTriple(t *testing.T) {
	store := newFakeBeatStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Intervalo enorme: cualquier Set recibido es el latido inicial,
		// no un tick del ticker.
		heartbeat(ctx, store, HeartbeatKeyScheduler, time.Hour)
		close(done)
	}()

	waitSignal(t, store.setCh, "el primer latido debe emitirse sin esperar el intervalo")

	store.mu.Lock()
	require.NotEmpty(t, store.sets)
	assert.Equal(t, 3*time.Hour, store.sets[0], "el TTL debe ser el triple del intervalo")
	store.mu.Unlock()

	cancel()
	<-done
}

func TestHeartbeat_RefrescaPeriodicamente(t *testing.T) {
	store := newFakeBeatStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		heartbeat(ctx, store, HeartbeatKeyWorker(QueueDefault), 10*time.Millisecond)
		close(done)
	}()

	// Inicial más al menos dos refrescos del ticker.
	for i := 0; i < 3; i++ {
		waitSignal(t, store.setCh, "el latido debe refrescarse en cada intervalo")
	}
	assert.GreaterOrEqual(t, store.setCount(), 3)

	cancel()
	<-done
}

func TestHeartbeat_BorraLaClaveAlApagar(t *testing.T) {
	store := newFakeBeatStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		heartbeat(ctx, store, HeartbeatKeyScheduler, time.Hour)
		close(done)
	}()

	waitSignal(t, store.setCh, "el primer latido debe emitirse sin esperar el intervalo")
	cancel()
	waitSignal(t, store.delCh, "al cancelar el contexto la clave debe borrarse")
	<-done

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.dels, 1)
	assert.Equal(t, HeartbeatKeyScheduler, store.dels[0],
		"el apagado debe limpiar exactamente la clave del proceso")
}
