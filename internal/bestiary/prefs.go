package bestiary

// PrefRecord 是單一玩家的交易偏好。
type PrefRecord struct {
	Accepting bool
	Dirty     bool
}

// Preferences 保存每位玩家的「接受報價」旗標，預設關閉。
// 關閉時其他玩家無法對該玩家發出報價。
type Preferences struct {
	records map[string]*PrefRecord
}

func NewPreferences() *Preferences {
	return &Preferences{
		records: make(map[string]*PrefRecord, 32),
	}
}

// LoadRecord 由持久層還原一筆紀錄（不標記 dirty）。
func (p *Preferences) LoadRecord(playerID string, accepting bool) {
	p.records[playerID] = &PrefRecord{Accepting: accepting}
}

// Accepting 回報玩家目前是否接受報價。沒有紀錄即為預設 false。
func (p *Preferences) Accepting(playerID string) bool {
	r := p.records[playerID]
	return r != nil && r.Accepting
}

// SetAccepting 設定旗標。值沒變時不標記 dirty。
func (p *Preferences) SetAccepting(playerID string, accepting bool) {
	r := p.records[playerID]
	if r == nil {
		if !accepting {
			return // default is already false
		}
		r = &PrefRecord{}
		p.records[playerID] = r
	}
	if r.Accepting == accepting {
		return
	}
	r.Accepting = accepting
	r.Dirty = true
}

// Known 回報玩家是否已有載入的紀錄（持久層用）。
func (p *Preferences) Known(playerID string) bool {
	_, ok := p.records[playerID]
	return ok
}

// DirtyRecords 走訪所有 dirty 紀錄。fn 回傳 true 表示已成功存檔。
func (p *Preferences) DirtyRecords(fn func(playerID string, r *PrefRecord) bool) {
	for id, r := range p.records {
		if !r.Dirty {
			continue
		}
		if fn(id, r) {
			r.Dirty = false
		}
	}
}
