package bestiary

import (
	"testing"

	"github.com/mobdex/server/internal/data"
	"go.uber.org/zap"
)

func testMobTable() *data.MobTable {
	return data.NewMobTable([]data.MobTemplate{
		{Key: "wild:wolf", Name: "狼", Category: data.CategoryCreature, HP: 10},
		{Key: "wild:bear", Name: "熊", Category: data.CategoryCreature, HP: 20},
		{Key: "wild:arrow", Name: "箭", Category: data.CategoryProjectile, HP: 0},
		{Key: "wild:ghost", Name: "鬼", Category: data.CategoryCreature, HP: 0},
		{Key: "wild:totem", Name: "圖騰", Category: data.CategoryMisc, HP: 5},
		{Key: "dev:dummy", Name: "假人", Category: data.CategoryCreature, HP: 5},
	})
}

func testCatalog() *Catalog {
	mobs := testMobTable()
	excl := data.NewExclusionTable(nil, []string{"dev"})
	return NewCatalog(mobs, excl, NewSpawner(mobs), zap.NewNop())
}

func TestMarkDiscoveredIdempotent(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())

	if !l.MarkDiscovered("p1", "wild:wolf") {
		t.Fatal("first mark should report a new discovery")
	}
	if l.MarkDiscovered("p1", "wild:wolf") {
		t.Fatal("second mark of the same kind should be a no-op")
	}
	if !l.IsDiscovered("p1", "wild:wolf") {
		t.Fatal("kind should be discovered after mark")
	}
	if l.IsDiscovered("p2", "wild:wolf") {
		t.Fatal("other players must not share discoveries")
	}
}

func TestMarkDiscoveredUntrackable(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())

	if l.MarkDiscovered("p1", "dev:dummy") {
		t.Fatal("excluded namespace must not be recordable")
	}
	if l.MarkDiscovered("p1", "wild:missing") {
		t.Fatal("unregistered kind must not be recordable")
	}
	if l.DiscoveredCount("p1") != 0 {
		t.Fatalf("count = %d, want 0", l.DiscoveredCount("p1"))
	}
}

func TestDiscoveredCountFiltersStaleEntries(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())
	// 歷史紀錄可能含有已被排除或已下架的 kind
	l.LoadRecord("p1", []string{"wild:wolf", "dev:dummy", "wild:gone"}, false, false)

	if got := l.DiscoveredCount("p1"); got != 1 {
		t.Fatalf("DiscoveredCount = %d, want 1", got)
	}
	disc := l.Discovered("p1")
	if len(disc) != 1 {
		t.Fatalf("Discovered len = %d, want 1", len(disc))
	}
	if _, ok := disc["wild:wolf"]; !ok {
		t.Fatal("wild:wolf missing from filtered view")
	}
	// 原始集合保留全部條目
	if len(l.RawDiscovered("p1")) != 3 {
		t.Fatalf("RawDiscovered len = %d, want 3", len(l.RawDiscovered("p1")))
	}
}

func TestMarkCompleteOnce(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())

	if !l.MarkComplete("p1") {
		t.Fatal("first completion should transition")
	}
	if l.MarkComplete("p1") {
		t.Fatal("completion must be one-shot")
	}
	if !l.Completed("p1") {
		t.Fatal("Completed should report true after transition")
	}
}

func TestStarterItemFlag(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())

	if l.HasReceivedStarterItem("p1") {
		t.Fatal("new player must not have the starter flag")
	}
	if !l.MarkReceivedStarterItem("p1") {
		t.Fatal("first grant should succeed")
	}
	if l.MarkReceivedStarterItem("p1") {
		t.Fatal("starter grant must be one-shot")
	}
}

func TestDirtyRecordsClearedOnSave(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())
	l.MarkDiscovered("p1", "wild:wolf")

	// 失敗的存檔保留 dirty
	walked := 0
	l.DirtyRecords(func(id string, r *DiscoveryRecord) bool {
		walked++
		return false
	})
	if walked != 1 {
		t.Fatalf("walked = %d, want 1", walked)
	}

	// 成功的存檔清除 dirty
	l.DirtyRecords(func(id string, r *DiscoveryRecord) bool { return true })
	l.DirtyRecords(func(id string, r *DiscoveryRecord) bool {
		t.Fatalf("record %s still dirty after successful save", id)
		return true
	})
}

func TestLoadRecordNotDirty(t *testing.T) {
	l := NewDiscoveryLedger(testCatalog())
	l.LoadRecord("p1", []string{"wild:wolf"}, true, false)

	l.DirtyRecords(func(id string, r *DiscoveryRecord) bool {
		t.Fatal("loaded record must not be dirty")
		return true
	})
	if !l.Known("p1") {
		t.Fatal("loaded record should be known")
	}
}
