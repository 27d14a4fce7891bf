package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	body := `
[server]
name = "Test-01"
world_id = "testworld"

[loop]
tick_rate = "100ms"

[exchange]
max_price = 500
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Name != "Test-01" || cfg.Server.WorldID != "testworld" {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Loop.TickRate != 100*time.Millisecond {
		t.Fatalf("tick_rate = %s, want 100ms", cfg.Loop.TickRate)
	}
	if cfg.Exchange.MaxPrice != 500 {
		t.Fatalf("max_price = %d, want 500", cfg.Exchange.MaxPrice)
	}

	// 未覆寫的欄位保留預設值
	if cfg.MobDex.SnapshotTTLTicks != 200 {
		t.Fatalf("snapshot_ttl_ticks = %d, want default 200", cfg.MobDex.SnapshotTTLTicks)
	}
	if cfg.Exchange.CurrencyKind != "mobdex:gold_coin" {
		t.Fatalf("currency_kind = %s", cfg.Exchange.CurrencyKind)
	}
	if cfg.Server.StartTime == 0 {
		t.Fatal("StartTime should be stamped at load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing config must be an error")
	}
}
