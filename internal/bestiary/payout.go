package bestiary

// PayoutRecord 是單一玩家待領取的貨幣累積，按貨幣 kind 分開計。
type PayoutRecord struct {
	Owed  map[string]int
	Dirty bool
}

// PayoutLedger 保存賣方尚未領取的交易款項（託管）。買方付款永遠先進
// 這裡而不是直接進賣方背包，讓結算與賣方當下是否在線、背包是否有
// 空位脫鉤。只在遊戲迴圈 goroutine 上存取。
type PayoutLedger struct {
	records map[string]*PayoutRecord
}

func NewPayoutLedger() *PayoutLedger {
	return &PayoutLedger{
		records: make(map[string]*PayoutRecord, 32),
	}
}

func (l *PayoutLedger) record(playerID string) *PayoutRecord {
	r := l.records[playerID]
	if r == nil {
		r = &PayoutRecord{Owed: make(map[string]int, 2)}
		l.records[playerID] = r
	}
	return r
}

// LoadRecord 由持久層還原一筆紀錄（不標記 dirty）。
func (l *PayoutLedger) LoadRecord(playerID string, owed map[string]int) {
	r := &PayoutRecord{Owed: make(map[string]int, len(owed))}
	for k, v := range owed {
		if v > 0 {
			r.Owed[k] = v
		}
	}
	l.records[playerID] = r
}

// Add 增加玩家的待領款項。
func (l *PayoutLedger) Add(playerID, currencyKind string, amount int) {
	if amount <= 0 {
		return
	}
	r := l.record(playerID)
	r.Owed[currencyKind] += amount
	r.Dirty = true
}

// Total 回傳玩家所有貨幣的待領總量。
func (l *PayoutLedger) Total(playerID string) int {
	r := l.records[playerID]
	if r == nil {
		return 0
	}
	total := 0
	for _, v := range r.Owed {
		total += v
	}
	return total
}

// TakeAll 原子地取出並清空玩家的所有待領款項。第二次呼叫回傳空 map。
func (l *PayoutLedger) TakeAll(playerID string) map[string]int {
	r := l.records[playerID]
	if r == nil || len(r.Owed) == 0 {
		return map[string]int{}
	}
	out := r.Owed
	r.Owed = make(map[string]int, 2)
	r.Dirty = true
	return out
}

// Known 回報玩家是否已有載入的紀錄（持久層用）。
func (l *PayoutLedger) Known(playerID string) bool {
	_, ok := l.records[playerID]
	return ok
}

// DirtyRecords 走訪所有 dirty 紀錄。fn 回傳 true 表示已成功存檔。
func (l *PayoutLedger) DirtyRecords(fn func(playerID string, r *PayoutRecord) bool) {
	for id, r := range l.records {
		if !r.Dirty {
			continue
		}
		if fn(id, r) {
			r.Dirty = false
		}
	}
}
