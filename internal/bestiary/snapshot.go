package bestiary

import (
	"container/list"
	"sort"
	"sync"
)

// Snapshot is a derived, validated view of one player's discovery set:
// trackable, still-registered, spawn-probed kinds in ascending key order.
// Never persisted; rebuilt from the ledger on expiry or forced refresh.
type Snapshot struct {
	Candidates []string
	RawCount   int   // unfiltered size of the stored set at build time
	ExpiresAt  int64 // world tick after which the entry is stale
}

// SnapshotCache is the read-side accelerator over the DiscoveryLedger:
// per-player TTL entries in a bounded LRU. A successful discovery
// invalidates the player's entry immediately so the next read reflects it
// without waiting out the TTL.
//
// Mutex-guarded for the same reason as ValidityCache: ClearAll may run from
// the admin/reset path while the game loop reads.
type SnapshotCache struct {
	mu       sync.Mutex
	ttl      int64
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	ledger   *DiscoveryLedger
	catalog  *Catalog
	validity *ValidityCache
}

type snapshotEntry struct {
	playerID string
	snap     *Snapshot
}

func NewSnapshotCache(ledger *DiscoveryLedger, catalog *Catalog, validity *ValidityCache, ttl int64, capacity int) *SnapshotCache {
	if capacity < 1 {
		capacity = 1
	}
	return &SnapshotCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		ledger:   ledger,
		catalog:  catalog,
		validity: validity,
	}
}

// Resolve returns the player's snapshot, rebuilding it when absent, expired,
// or force is set. Access refreshes LRU recency.
func (c *SnapshotCache) Resolve(now int64, playerID string, force bool) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[playerID]; ok {
		entry := el.Value.(*snapshotEntry)
		if !force && now < entry.snap.ExpiresAt {
			c.order.MoveToFront(el)
			return entry.snap
		}
	}

	snap := c.build(now, playerID)
	c.store(playerID, snap)
	return snap
}

// build computes a fresh snapshot from the raw ledger set.
func (c *SnapshotCache) build(now int64, playerID string) *Snapshot {
	raw := c.ledger.RawDiscovered(playerID)
	snap := &Snapshot{
		RawCount:  len(raw),
		ExpiresAt: now + c.ttl,
	}
	if len(raw) == 0 {
		// 空集合也要快取，避免每次讀取都打到帳本
		return snap
	}
	candidates := make([]string, 0, len(raw))
	for kind := range raw {
		if !c.catalog.Trackable(kind) {
			continue
		}
		if !c.catalog.Registered(kind) {
			continue
		}
		if !c.validity.Valid(now, kind) {
			continue
		}
		candidates = append(candidates, kind)
	}
	sort.Strings(candidates) // deterministic iteration order
	snap.Candidates = candidates
	return snap
}

// store inserts or replaces the entry and evicts the least-recently-used
// entries past capacity.
func (c *SnapshotCache) store(playerID string, snap *Snapshot) {
	if el, ok := c.entries[playerID]; ok {
		el.Value.(*snapshotEntry).snap = snap
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&snapshotEntry{playerID: playerID, snap: snap})
	c.entries[playerID] = el
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*snapshotEntry).playerID)
	}
}

// Invalidate drops the player's entry so the next Resolve rebuilds.
// Called on every successful discovery.
func (c *SnapshotCache) Invalidate(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[playerID]; ok {
		c.order.Remove(el)
		delete(c.entries, playerID)
	}
}

// ClearAll drops every entry. Bound to world stop and the cache-clear command.
func (c *SnapshotCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the number of cached entries.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
