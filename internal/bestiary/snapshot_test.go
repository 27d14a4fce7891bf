package bestiary

import (
	"reflect"
	"testing"

	"github.com/mobdex/server/internal/data"
	"go.uber.org/zap"
)

func newTestSnapshotCache(capacity int) (*SnapshotCache, *DiscoveryLedger) {
	mobs := testMobTable()
	excl := data.NewExclusionTable(nil, []string{"dev"})
	spawner := NewSpawner(mobs)
	catalog := NewCatalog(mobs, excl, spawner, zap.NewNop())
	validity := NewValidityCache(spawner, 200, zap.NewNop())
	ledger := NewDiscoveryLedger(catalog)
	return NewSnapshotCache(ledger, catalog, validity, 200, capacity), ledger
}

func TestSnapshotSortedAndFiltered(t *testing.T) {
	cache, ledger := newTestSnapshotCache(16)
	// 歷史紀錄含排除的、下架的、探測失敗的條目
	ledger.LoadRecord("p1", []string{"wild:wolf", "wild:bear", "wild:ghost", "dev:dummy", "wild:gone"}, false, false)

	snap := cache.Resolve(0, "p1", false)
	want := []string{"wild:bear", "wild:wolf"}
	if !reflect.DeepEqual(snap.Candidates, want) {
		t.Fatalf("Candidates = %v, want %v", snap.Candidates, want)
	}
	if snap.RawCount != 5 {
		t.Fatalf("RawCount = %d, want 5", snap.RawCount)
	}
}

func TestSnapshotCachedInsideTTL(t *testing.T) {
	cache, ledger := newTestSnapshotCache(16)
	ledger.MarkDiscovered("p1", "wild:wolf")

	first := cache.Resolve(0, "p1", false)
	// 直接改帳本(不經 Invalidate):TTL 內讀到舊快照
	ledger.MarkDiscovered("p1", "wild:bear")
	if got := cache.Resolve(100, "p1", false); got != first {
		t.Fatal("entry inside TTL should be served from cache")
	}

	// Invalidate 後立即反映
	cache.Invalidate("p1")
	snap := cache.Resolve(100, "p1", false)
	if len(snap.Candidates) != 2 {
		t.Fatalf("Candidates after invalidate = %v, want 2 entries", snap.Candidates)
	}
}

func TestSnapshotTTLExpiry(t *testing.T) {
	cache, ledger := newTestSnapshotCache(16)
	ledger.MarkDiscovered("p1", "wild:wolf")

	first := cache.Resolve(0, "p1", false)
	if got := cache.Resolve(199, "p1", false); got != first {
		t.Fatal("tick 199 is inside the 200-tick TTL")
	}
	if got := cache.Resolve(200, "p1", false); got == first {
		t.Fatal("tick 200 should rebuild the snapshot")
	}
}

func TestSnapshotForceRefresh(t *testing.T) {
	cache, _ := newTestSnapshotCache(16)
	first := cache.Resolve(0, "p1", false)
	if got := cache.Resolve(0, "p1", true); got == first {
		t.Fatal("force should bypass the cached entry")
	}
}

func TestSnapshotEmptySetCached(t *testing.T) {
	cache, _ := newTestSnapshotCache(16)

	snap := cache.Resolve(0, "nobody", false)
	if snap.RawCount != 0 || len(snap.Candidates) != 0 {
		t.Fatalf("empty snapshot = %+v", snap)
	}
	// 空集合一樣要吃快取
	if got := cache.Resolve(1, "nobody", false); got != snap {
		t.Fatal("empty snapshot should be cached too")
	}
}

func TestSnapshotLRUEviction(t *testing.T) {
	cache, ledger := newTestSnapshotCache(2)
	for _, id := range []string{"p1", "p2", "p3"} {
		ledger.MarkDiscovered(id, "wild:wolf")
		cache.Resolve(0, id, false)
	}
	if got := cache.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2 (oldest evicted)", got)
	}
}

func TestSnapshotClearAll(t *testing.T) {
	cache, _ := newTestSnapshotCache(16)
	cache.Resolve(0, "p1", false)
	cache.Resolve(0, "p2", false)
	cache.ClearAll()
	if got := cache.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0 after ClearAll", got)
	}
}
