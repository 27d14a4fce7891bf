package system

import (
	"testing"

	"github.com/mobdex/server/internal/core/event"
)

func TestDiscoverRecordsOnce(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	if !env.discovery.Discover(p, "wild:wolf", "kill") {
		t.Fatal("first discovery should succeed")
	}
	if env.discovery.Discover(p, "wild:wolf", "kill") {
		t.Fatal("repeat discovery must be a no-op")
	}
	if got := env.discovery.DiscoveredCount(p.PlayerID); got != 1 {
		t.Fatalf("DiscoveredCount = %d, want 1", got)
	}
}

func TestDiscoverRejectsUntrackable(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	if env.discovery.Discover(p, "dev:dummy", "kill") {
		t.Fatal("excluded kind must not be discoverable")
	}
	if env.discovery.Discover(p, "wild:missing", "kill") {
		t.Fatal("unregistered kind must not be discoverable")
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	completions := 0
	event.Subscribe(env.deps.Bus, func(ev event.CompendiumCompleted) {
		completions++
		if ev.Total != 2 {
			t.Errorf("completion total = %d, want 2", ev.Total)
		}
	})

	env.discovery.Discover(p, "wild:wolf", "kill")
	if env.discovery.Completed(p.PlayerID) {
		t.Fatal("one of two kinds must not complete")
	}

	env.discovery.Discover(p, "wild:bear", "taming")
	if !env.discovery.Completed(p.PlayerID) {
		t.Fatal("last distinct kind should complete the compendium")
	}

	env.dispatch()
	if completions != 1 {
		t.Fatalf("completions = %d, want exactly 1", completions)
	}

	// 完成後的偵測呼叫不再觸發
	env.discovery.OnMobDiscovered(p.PlayerID)
	env.dispatch()
	if completions != 1 {
		t.Fatalf("completion re-fired: %d", completions)
	}
}

func TestCompletionPercentBasis(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	if got := env.discovery.CompletionPercent(p.PlayerID); got != 0 {
		t.Fatalf("fresh percent = %d, want 0", got)
	}
	env.discovery.Discover(p, "wild:wolf", "kill")
	if got := env.discovery.CompletionPercent(p.PlayerID); got != 5000 {
		t.Fatalf("half percent = %d, want 5000", got)
	}
	env.discovery.Discover(p, "wild:bear", "kill")
	if got := env.discovery.CompletionPercent(p.PlayerID); got != 10000 {
		t.Fatalf("full percent = %d, want 10000", got)
	}
}

func TestCandidatesReflectDiscoveryImmediately(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	if got := env.discovery.Candidates(p.PlayerID); len(got) != 0 {
		t.Fatalf("fresh candidates = %v, want empty", got)
	}

	// 快照剛建好,TTL 還沒過 — 成功發現仍要立即可見
	env.discovery.Discover(p, "wild:wolf", "kill")
	got := env.discovery.Candidates(p.PlayerID)
	if len(got) != 1 || got[0] != "wild:wolf" {
		t.Fatalf("candidates = %v, want [wild:wolf]", got)
	}
}

func TestClearCaches(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	env.discovery.Candidates(p.PlayerID)
	if env.deps.Snapshots.Len() == 0 {
		t.Fatal("resolve should have populated the snapshot cache")
	}
	env.discovery.ClearCaches()
	if env.deps.Snapshots.Len() != 0 {
		t.Fatal("ClearCaches must empty the snapshot cache")
	}
}

func TestDiscoverDisabled(t *testing.T) {
	env := newTestEnv(t)
	p := env.join("Alice")

	env.deps.Config.MobDex.Enabled = false
	if env.discovery.Discover(p, "wild:wolf", "kill") {
		t.Fatal("discovery must be inert when the module is disabled")
	}
}
