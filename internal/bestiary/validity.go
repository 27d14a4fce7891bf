package bestiary

import (
	"sync"

	"go.uber.org/zap"
)

// ValidityCache caches per-kind probe outcomes so repeated snapshot rebuilds
// do not pay the entity-instantiation cost every time. A positive result is
// cached for the remainder of the world run (a kind that spawns keeps
// spawning); a negative result is cached only for a short TTL so transient
// construction failures (world still loading) are retried later.
//
// The map is mutex-guarded: reads come from the game loop, but ClearAll may
// run from the admin/reset path.
type ValidityCache struct {
	mu           sync.Mutex
	prober       Prober
	ttl          int64 // negative-result lifetime in ticks
	valid        map[string]struct{}
	invalidUntil map[string]int64
	log          *zap.Logger
}

func NewValidityCache(prober Prober, negativeTTL int64, log *zap.Logger) *ValidityCache {
	return &ValidityCache{
		prober:       prober,
		ttl:          negativeTTL,
		valid:        make(map[string]struct{}, 64),
		invalidUntil: make(map[string]int64, 8),
		log:          log,
	}
}

// Valid reports whether the kind currently passes a live spawn probe,
// consulting the cache first.
func (c *ValidityCache) Valid(now int64, kind string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.valid[kind]; ok {
		return true
	}
	if until, ok := c.invalidUntil[kind]; ok && now < until {
		return false
	}

	if err := c.prober.Probe(kind); err != nil {
		// 暫時不可用 — 負面快取，稍後重試
		c.invalidUntil[kind] = now + c.ttl
		c.log.Debug("kind 驗證失敗", zap.String("kind", kind), zap.Error(err))
		return false
	}
	delete(c.invalidUntil, kind)
	c.valid[kind] = struct{}{}
	return true
}

// ClearAll drops every cached outcome. Safe at any time; the next lookup
// re-probes.
func (c *ValidityCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = make(map[string]struct{}, 64)
	c.invalidUntil = make(map[string]int64, 8)
}
