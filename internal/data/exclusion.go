package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExclusionTable 保存圖鑑排除名單：整個命名空間或個別 kind key。
// 被排除的 kind 不列入可追蹤總數，也不會被記錄為玩家發現。
type ExclusionTable struct {
	kinds      map[string]struct{}
	namespaces map[string]struct{}
}

type exclusionListFile struct {
	Kinds      []string `yaml:"kinds"`
	Namespaces []string `yaml:"namespaces"`
}

// LoadExclusionTable 從 YAML 載入排除名單。檔案不存在時回傳空名單。
func LoadExclusionTable(path string) (*ExclusionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewExclusionTable(nil, nil), nil
		}
		return nil, fmt.Errorf("read exclusion_list: %w", err)
	}
	var f exclusionListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse exclusion_list: %w", err)
	}
	return NewExclusionTable(f.Kinds, f.Namespaces), nil
}

// NewExclusionTable 由已在記憶體中的名單建表（測試用）。
func NewExclusionTable(kinds, namespaces []string) *ExclusionTable {
	t := &ExclusionTable{
		kinds:      make(map[string]struct{}, len(kinds)),
		namespaces: make(map[string]struct{}, len(namespaces)),
	}
	for _, k := range kinds {
		t.kinds[k] = struct{}{}
	}
	for _, ns := range namespaces {
		t.namespaces[ns] = struct{}{}
	}
	return t
}

// Excluded 回報 kind 是否被個別排除或整個命名空間被排除。
func (t *ExclusionTable) Excluded(key string) bool {
	if _, ok := t.kinds[key]; ok {
		return true
	}
	if i := strings.IndexByte(key, ':'); i >= 0 {
		if _, ok := t.namespaces[key[:i]]; ok {
			return true
		}
	}
	return false
}

// Count 回傳排除條目總數。
func (t *ExclusionTable) Count() int {
	return len(t.kinds) + len(t.namespaces)
}
