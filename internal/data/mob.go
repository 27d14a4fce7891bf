package data

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mob categories. Only CategoryCreature counts toward the compendium; the
// registry also carries projectiles and misc entities that must be filtered.
const (
	CategoryCreature   = "creature"
	CategoryProjectile = "projectile"
	CategoryMisc       = "misc"
)

// MobTemplate holds static data for a registered entity kind loaded from YAML.
type MobTemplate struct {
	Key      string `yaml:"key"`  // namespaced identifier, e.g. "wildmobs:dire_wolf"
	Name     string `yaml:"name"` // display name
	Category string `yaml:"category"`
	HP       int32  `yaml:"hp"`
	Hostile  bool   `yaml:"hostile"`
	Tameable bool   `yaml:"tameable"`
}

// Namespace returns the part of the key before the first colon.
func (t *MobTemplate) Namespace() string {
	if i := strings.IndexByte(t.Key, ':'); i >= 0 {
		return t.Key[:i]
	}
	return ""
}

type mobListFile struct {
	Mobs []MobTemplate `yaml:"mobs"`
}

// MobTable holds all registered entity kind templates indexed by key.
type MobTable struct {
	templates map[string]*MobTemplate
}

// LoadMobTable loads entity kind templates from a YAML file.
func LoadMobTable(path string) (*MobTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mob_list: %w", err)
	}
	var f mobListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mob_list: %w", err)
	}
	return NewMobTable(f.Mobs), nil
}

// NewMobTable builds a table from templates already in memory (tests, tools).
func NewMobTable(mobs []MobTemplate) *MobTable {
	t := &MobTable{templates: make(map[string]*MobTemplate, len(mobs))}
	for i := range mobs {
		m := &mobs[i]
		t.templates[m.Key] = m
	}
	return t
}

// Get returns a template by key, or nil if the kind is not registered.
func (t *MobTable) Get(key string) *MobTemplate {
	return t.templates[key]
}

// Has reports whether the kind is currently registered.
func (t *MobTable) Has(key string) bool {
	_, ok := t.templates[key]
	return ok
}

// Keys returns all registered kind keys in ascending order.
func (t *MobTable) Keys() []string {
	keys := make([]string, 0, len(t.templates))
	for k := range t.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered templates.
func (t *MobTable) Count() int {
	return len(t.templates)
}
