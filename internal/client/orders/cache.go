package orders

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Cache keeps a user's order list between fetches. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]models.Order, bool, error)
	Set(ctx context.Context, key string, orders []models.Order) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	orders  []models.Order
	expires time.Time
}

// MemoryCache is a process-local Cache. A zero ttl never expires entries.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]models.Order, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return cloneOrders(e.orders), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, orders []models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{orders: cloneOrders(orders)}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func cloneOrders(in []models.Order) []models.Order {
	out := make([]models.Order, len(in))
	for i, o := range in {
		o.Items = append([]models.OrderItem(nil), o.Items...)
		out[i] = o
	}
	return out
}
