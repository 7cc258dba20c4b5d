package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// reloadChannel canal pub/sub por el que el API avisa al planificador que
// cambió la configuración y debe re-registrar sus jobs repetibles.
const reloadChannel = "scheduler:reload"

// ReloadBus publica y escucha avisos de recarga de configuración del
// planificador a través de Redis pub/sub.
type ReloadBus struct {
	rdb *redis.Client
}

func NewReloadBus(rdb *redis.Client) *ReloadBus {
	return &ReloadBus{rdb: rdb}
}

// PublishReload avisa a los planificadores suscritos que recarguen.
func (b *ReloadBus) PublishReload(ctx context.Context) error {
	return b.rdb.Publish(ctx, reloadChannel, "reload").Err()
}

// Subscribe devuelve un canal que recibe un aviso por cada publicación.
// El canal se cierra cuando el contexto termina.
func (b *ReloadBus) Subscribe(ctx context.Context) <-chan struct{} {
	sub := b.rdb.Subscribe(ctx, reloadChannel)
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
