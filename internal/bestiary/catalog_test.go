package bestiary

import (
	"errors"
	"testing"

	"github.com/mobdex/server/internal/data"
	"go.uber.org/zap"
)

// countingProber 包裝另一個 Prober 並計算探測次數。
type countingProber struct {
	inner Prober
	calls int
}

func (p *countingProber) Probe(kind string) error {
	p.calls++
	return p.inner.Probe(kind)
}

func TestTrackable(t *testing.T) {
	c := testCatalog()

	cases := []struct {
		kind string
		want bool
	}{
		{"wild:wolf", true},
		{"wild:arrow", true}, // 已註冊未排除 — 類別由探測把關,不是 Trackable
		{"dev:dummy", false}, // 命名空間排除
		{"wild:missing", false},
	}
	for _, tc := range cases {
		if got := c.Trackable(tc.kind); got != tc.want {
			t.Errorf("Trackable(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestTotalTrackableProbesOutNonCreatures(t *testing.T) {
	c := testCatalog()

	// wolf 和 bear 探測成功;arrow 非生物、ghost 血量無效、dummy 被排除
	if got := c.TotalTrackable(); got != 2 {
		t.Fatalf("TotalTrackable = %d, want 2", got)
	}
}

func TestTotalTrackableCachedWhenPositive(t *testing.T) {
	mobs := testMobTable()
	excl := data.NewExclusionTable(nil, []string{"dev"})
	probe := &countingProber{inner: NewSpawner(mobs)}
	c := NewCatalog(mobs, excl, probe, zap.NewNop())

	c.TotalTrackable()
	first := probe.calls
	if first == 0 {
		t.Fatal("first call should probe")
	}
	c.TotalTrackable()
	if probe.calls != first {
		t.Fatalf("positive total must be cached, got %d extra probes", probe.calls-first)
	}
}

type failingProber struct{ calls int }

func (p *failingProber) Probe(string) error {
	p.calls++
	return errors.New("world not ready")
}

func TestTotalTrackableZeroNotCached(t *testing.T) {
	mobs := testMobTable()
	excl := data.NewExclusionTable(nil, []string{"dev"})
	probe := &failingProber{}
	c := NewCatalog(mobs, excl, probe, zap.NewNop())

	if got := c.TotalTrackable(); got != 0 {
		t.Fatalf("TotalTrackable = %d, want 0", got)
	}
	first := probe.calls
	// 非正數不快取:下一次呼叫重新探測
	c.TotalTrackable()
	if probe.calls == first {
		t.Fatal("zero total must not be cached")
	}
}
