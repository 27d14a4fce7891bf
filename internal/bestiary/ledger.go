package bestiary

// DiscoveryRecord 是單一玩家的圖鑑持久狀態。Kinds 只增不減；
// Completed 單向（一旦 true 永不重設）。Dirty 表示自上次存檔後有變動。
type DiscoveryRecord struct {
	Kinds           map[string]struct{}
	ReceivedStarter bool
	Completed       bool
	Dirty           bool
}

// DiscoveryLedger 保存每位玩家已發現的 kind 集合與兩個一次性旗標。
// 純儲存 + 冪等變更；只在遊戲迴圈 goroutine 上存取。
// 讀取時以目前的可追蹤規則過濾，容忍排除名單或註冊表跨重啟變動後
// 殘留的歷史條目。
type DiscoveryLedger struct {
	catalog *Catalog
	records map[string]*DiscoveryRecord
}

func NewDiscoveryLedger(catalog *Catalog) *DiscoveryLedger {
	return &DiscoveryLedger{
		catalog: catalog,
		records: make(map[string]*DiscoveryRecord, 64),
	}
}

// record 延遲建立玩家紀錄。不存在即為預設空狀態。
func (l *DiscoveryLedger) record(playerID string) *DiscoveryRecord {
	r := l.records[playerID]
	if r == nil {
		r = &DiscoveryRecord{Kinds: make(map[string]struct{}, 16)}
		l.records[playerID] = r
	}
	return r
}

// LoadRecord 由持久層還原一筆紀錄（不標記 dirty）。
func (l *DiscoveryLedger) LoadRecord(playerID string, kinds []string, starter, completed bool) {
	r := &DiscoveryRecord{
		Kinds:           make(map[string]struct{}, len(kinds)),
		ReceivedStarter: starter,
		Completed:       completed,
	}
	for _, k := range kinds {
		r.Kinds[k] = struct{}{}
	}
	l.records[playerID] = r
}

// IsDiscovered 回報玩家是否已發現該 kind。不可追蹤的 kind 一律 false。
func (l *DiscoveryLedger) IsDiscovered(playerID, kind string) bool {
	if !l.catalog.Trackable(kind) {
		return false
	}
	r := l.records[playerID]
	if r == nil {
		return false
	}
	_, ok := r.Kinds[kind]
	return ok
}

// MarkDiscovered 記錄一次發現。kind 不可追蹤或已存在時為 no-op 並回傳
// false；否則加入集合、標記 dirty、回傳 true。
func (l *DiscoveryLedger) MarkDiscovered(playerID, kind string) bool {
	if !l.catalog.Trackable(kind) {
		return false
	}
	r := l.record(playerID)
	if _, ok := r.Kinds[kind]; ok {
		return false
	}
	r.Kinds[kind] = struct{}{}
	r.Dirty = true
	return true
}

// Discovered 回傳玩家已發現且目前仍可追蹤的 kind 集合（複本）。
func (l *DiscoveryLedger) Discovered(playerID string) map[string]struct{} {
	r := l.records[playerID]
	if r == nil {
		return map[string]struct{}{}
	}
	out := make(map[string]struct{}, len(r.Kinds))
	for k := range r.Kinds {
		if l.catalog.Trackable(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// DiscoveredCount 回傳過濾後的已發現數。完成判定永遠用這個新鮮讀取，
// 不走快照快取。
func (l *DiscoveryLedger) DiscoveredCount(playerID string) int {
	r := l.records[playerID]
	if r == nil {
		return 0
	}
	count := 0
	for k := range r.Kinds {
		if l.catalog.Trackable(k) {
			count++
		}
	}
	return count
}

// RawDiscovered 回傳未過濾的原始集合。呼叫端只可讀取，不可修改。
func (l *DiscoveryLedger) RawDiscovered(playerID string) map[string]struct{} {
	r := l.records[playerID]
	if r == nil {
		return nil
	}
	return r.Kinds
}

// MarkComplete 設定一次性完成旗標。已完成時回傳 false（冪等）。
func (l *DiscoveryLedger) MarkComplete(playerID string) bool {
	r := l.record(playerID)
	if r.Completed {
		return false
	}
	r.Completed = true
	r.Dirty = true
	return true
}

// Completed 回報玩家是否已完成圖鑑。
func (l *DiscoveryLedger) Completed(playerID string) bool {
	r := l.records[playerID]
	return r != nil && r.Completed
}

// HasReceivedStarterItem 回報玩家是否已領過初始道具。
func (l *DiscoveryLedger) HasReceivedStarterItem(playerID string) bool {
	r := l.records[playerID]
	return r != nil && r.ReceivedStarter
}

// MarkReceivedStarterItem 標記初始道具已發放。已標記時回傳 false。
func (l *DiscoveryLedger) MarkReceivedStarterItem(playerID string) bool {
	r := l.record(playerID)
	if r.ReceivedStarter {
		return false
	}
	r.ReceivedStarter = true
	r.Dirty = true
	return true
}

// Known 回報玩家是否已有載入的紀錄（持久層用）。
func (l *DiscoveryLedger) Known(playerID string) bool {
	_, ok := l.records[playerID]
	return ok
}

// DirtyRecords 走訪所有 dirty 紀錄。fn 回傳 true 表示已成功存檔，
// 旗標會被清除。
func (l *DiscoveryLedger) DirtyRecords(fn func(playerID string, r *DiscoveryRecord) bool) {
	for id, r := range l.records {
		if !r.Dirty {
			continue
		}
		if fn(id, r) {
			r.Dirty = false
		}
	}
}
