package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMobTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mob_list.yaml")
	body := `
mobs:
  - key: "wild:wolf"
    name: "狼"
    category: creature
    hp: 40
    hostile: true
    tameable: true
  - key: "wild:arrow"
    name: "箭"
    category: projectile
    hp: 0
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadMobTable(path)
	if err != nil {
		t.Fatalf("LoadMobTable: %v", err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("Count = %d, want 2", tbl.Count())
	}
	wolf := tbl.Get("wild:wolf")
	if wolf == nil || wolf.HP != 40 || !wolf.Hostile || wolf.Category != CategoryCreature {
		t.Fatalf("wolf = %+v", wolf)
	}
}

func TestLoadMobTableMissingFile(t *testing.T) {
	if _, err := LoadMobTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing mob list must be an error")
	}
}

func TestLoadExclusionTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclusion_list.yaml")
	body := `
namespaces:
  - devtools
kinds:
  - "wild:smoke"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadExclusionTable(path)
	if err != nil {
		t.Fatalf("LoadExclusionTable: %v", err)
	}
	if !tbl.Excluded("devtools:dummy") || !tbl.Excluded("wild:smoke") {
		t.Fatal("entries from file should exclude")
	}
}

func TestLoadExclusionTableMissingFileIsEmpty(t *testing.T) {
	tbl, err := LoadExclusionTable(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing exclusion list should not error: %v", err)
	}
	if tbl.Count() != 0 {
		t.Fatalf("Count = %d, want 0", tbl.Count())
	}
}
