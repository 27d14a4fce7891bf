package bestiary

import "testing"

func TestProbeCreature(t *testing.T) {
	s := NewSpawner(testMobTable())
	if err := s.Probe("wild:wolf"); err != nil {
		t.Fatalf("Probe(wolf) = %v, want nil", err)
	}
	for i := 0; i < 100; i++ {
		if err := s.Probe("wild:wolf"); err != nil {
			t.Fatalf("repeat probe %d failed: %v", i, err)
		}
	}
}

// 探測實體排入延遲銷毀佇列,由 tick 結尾的回收沖掉。
func TestProbeEntitiesReclaimedByFlush(t *testing.T) {
	s := NewSpawner(testMobTable())

	for i := 0; i < 3; i++ {
		if err := s.Probe("wild:wolf"); err != nil {
			t.Fatalf("probe %d failed: %v", i, err)
		}
	}
	if got := s.FlushDestroyed(); got != 3 {
		t.Fatalf("FlushDestroyed() = %d, want 3", got)
	}
	if got := s.FlushDestroyed(); got != 0 {
		t.Fatalf("second flush reclaimed %d, want 0", got)
	}
}

func TestProbeRejections(t *testing.T) {
	s := NewSpawner(testMobTable())

	if err := s.Probe("wild:missing"); err == nil {
		t.Fatal("unregistered kind must fail the probe")
	}
	if err := s.Probe("wild:arrow"); err == nil {
		t.Fatal("projectile must fail the probe (no creature component)")
	}
	if err := s.Probe("wild:ghost"); err == nil {
		t.Fatal("zero-hp template must fail the probe")
	}
	if err := s.Probe("wild:totem"); err == nil {
		t.Fatal("misc entity must fail the probe (no creature component)")
	}
}
