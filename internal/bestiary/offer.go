package bestiary

// Offer 是一筆未決的圖鑑交易報價：sender 以 price 單位貨幣為 receiver
// 解鎖一個 kind。只存在於記憶體，掛在 receiver 的收件匣；接受、拒絕
// 或到期掃除時移除。每個 ID 恰好被其中一種終態消耗一次。
type Offer struct {
	ID           int64 // monotonic, unique for the world run
	SenderID     string
	SenderName   string
	ReceiverID   string
	ReceiverName string
	Kind         string
	Price        int
	CurrencyKind string
	ExpiresAt    int64 // world tick; expired when now >= ExpiresAt
}

// Expired 回報報價在 now 時是否已到期。到期邊界 tick 本身算到期。
func (o *Offer) Expired(now int64) bool {
	return now >= o.ExpiresAt
}
