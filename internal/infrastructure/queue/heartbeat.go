package queue

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// heartbeatTTLFactor el TTL de la clave es un múltiplo del intervalo de
// refresco: tolera un par de refrescos perdidos antes de declarar el proceso
// caído.
const heartbeatTTLFactor = 3

// beatStore lo mínimo que el latido necesita del almacén de claves.
type beatStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisBeatStore struct {
	rdb *redis.Client
}

func (s redisBeatStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s redisBeatStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Heartbeat refresca la clave con TTL hasta que el contexto se cancele.
// El primer latido se emite de inmediato. Pensado para correr en goroutine.
func Heartbeat(ctx context.Context, rdb *redis.Client, key string, interval time.Duration) {
	heartbeat(ctx, redisBeatStore{rdb: rdb}, key, interval)
}

func heartbeat(ctx context.Context, store beatStore, key string, interval time.Duration) {
	ttl := interval * heartbeatTTLFactor
	beat := func() {
		if err := store.Set(ctx, key, time.Now().Format(time.RFC3339), ttl); err != nil {
			log.Printf("[HEARTBEAT][%s] error refrescando: %v", key, err)
		}
	}

	beat()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Al apagar limpiamos la clave para que el diagnóstico refleje
			// la baja de inmediato, sin esperar el TTL.
			cleanup, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = store.Del(cleanup, key)
			return
		case <-ticker.C:
			beat()
		}
	}
}
