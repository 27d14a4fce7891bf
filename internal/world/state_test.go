package world

import "testing"

func TestStatePlayerLookup(t *testing.T) {
	s := NewState()
	s.AddPlayer(&PlayerInfo{PlayerID: "p1", Name: "Alice"})

	if s.GetByID("p1") == nil {
		t.Fatal("GetByID should find the player")
	}
	if s.GetByName("alice") == nil || s.GetByName("ALICE") == nil {
		t.Fatal("name lookup must be case-insensitive")
	}

	s.RemovePlayer("p1")
	if s.GetByID("p1") != nil || s.GetByName("alice") != nil {
		t.Fatal("removed player must drop out of both indexes")
	}
	if s.PlayerCount() != 0 {
		t.Fatalf("PlayerCount = %d, want 0", s.PlayerCount())
	}
}

func TestStateRejoinRefreshesName(t *testing.T) {
	s := NewState()
	s.AddPlayer(&PlayerInfo{PlayerID: "p1", Name: "Alice"})
	s.AddPlayer(&PlayerInfo{PlayerID: "p1", Name: "Alicia"})

	if s.GetByName("alice") != nil {
		t.Fatal("stale name index entry should be gone")
	}
	if s.GetByName("alicia") == nil {
		t.Fatal("new name should resolve")
	}
	if s.PlayerCount() != 1 {
		t.Fatalf("PlayerCount = %d, want 1", s.PlayerCount())
	}
}

func TestGroundItemExpiry(t *testing.T) {
	s := NewState()
	s.DropItem("p1", "mobdex:gold_coin", 5)

	if removed := s.ExpireGroundItems(); removed != 0 {
		t.Fatalf("fresh item expired: %d", removed)
	}
	for i := 0; i < groundItemTTL; i++ {
		s.Advance()
	}
	if removed := s.ExpireGroundItems(); removed != 1 {
		t.Fatalf("removed = %d, want 1 after TTL", removed)
	}
	if len(s.GroundItems()) != 0 {
		t.Fatal("expired item should be gone")
	}
}

func TestDropItemIgnoresNonPositive(t *testing.T) {
	s := NewState()
	s.DropItem("p1", "mobdex:gold_coin", 0)
	s.DropItem("p1", "mobdex:gold_coin", -3)
	if len(s.GroundItems()) != 0 {
		t.Fatalf("ground = %v, want empty", s.GroundItems())
	}
}
