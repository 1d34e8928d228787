// Package cachex es un cache read-through en memoria con TTL por entrada e
// invalidación manual. Se usa para datos tipo catálogo (plazos SLA) que se
// leen mucho más de lo que se escriben y toleran lecturas levemente viejas.
package cachex

import (
	"sync"
	"time"
)

type entry struct {
	value  any
	expira time.Time
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func New() *Cache {
	return &Cache{items: make(map[string]entry), now: time.Now}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expira) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry{value: value, expira: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate borra una clave puntual (hook manual tras un upsert/delete).
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// GetOrLoad devuelve el valor cacheado o ejecuta load y guarda el resultado.
// Si load falla no se cachea nada.
func (c *Cache) GetOrLoad(key string, ttl time.Duration, load func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, ttl)
	return v, nil
}
