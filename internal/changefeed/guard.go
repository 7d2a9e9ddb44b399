package changefeed

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Guard responde se um id está sendo visto pela primeira vez.
type Guard interface {
	First(ctx context.Context, appointmentID string) (bool, error)
}

// RedisGuard compartilha a deduplicação entre instâncias.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) First(ctx context.Context, appointmentID string) (bool, error) {
	return g.client.SetNX(ctx, "barber:change:"+appointmentID, 1, g.ttl).Result()
}

// MemoryGuard lembra os últimos size ids vistos neste processo.
type MemoryGuard struct {
	mu    sync.Mutex
	size  int
	seen  map[string]struct{}
	order []string
}

func NewMemoryGuard(size int) *MemoryGuard {
	if size <= 0 {
		size = 1024
	}
	return &MemoryGuard{size: size, seen: make(map[string]struct{}, size)}
}

func (g *MemoryGuard) First(_ context.Context, appointmentID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[appointmentID]; ok {
		return false, nil
	}
	g.seen[appointmentID] = struct{}{}
	g.order = append(g.order, appointmentID)
	if len(g.order) > g.size {
		delete(g.seen, g.order[0])
		g.order = g.order[1:]
	}
	return true, nil
}
