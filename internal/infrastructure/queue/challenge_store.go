package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Docuport-api/internal/application/auth"
)

// ChallengeStore guarda los retos 2FA pendientes en Redis con TTL: un reto no
// resuelto expira solo, sin limpieza explícita.
type ChallengeStore struct {
	rdb *redis.Client
}

var _ auth.ChallengeStore = (*ChallengeStore)(nil)

// NewChallengeStore crea el almacén de retos sobre la conexión Redis.
func NewChallengeStore(rdb *redis.Client) *ChallengeStore {
	return &ChallengeStore{rdb: rdb}
}

// Save guarda el reto con el TTL indicado.
func (s *ChallengeStore) Save(ctx context.Context, id string, ch auth.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("serializar reto: %w", err)
	}
	if err := s.rdb.Set(ctx, challengeKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardar reto: %w", err)
	}
	return nil
}

// Get devuelve el reto, o nil si expiró o nunca existió.
func (s *ChallengeStore) Get(ctx context.Context, id string) (*auth.Challenge, error) {
	payload, err := s.rdb.Get(ctx, challengeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer reto: %w", err)
	}
	var ch auth.Challenge
	if err := json.Unmarshal(payload, &ch); err != nil {
		return nil, fmt.Errorf("deserializar reto: %w", err)
	}
	return &ch, nil
}

// Delete elimina un reto ya consumido.
func (s *ChallengeStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, challengeKey(id)).Err(); err != nil {
		return fmt.Errorf("eliminar reto: %w", err)
	}
	return nil
}
