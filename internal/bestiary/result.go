package bestiary

// Result 是交易所與領取操作的結果碼。分成四類：
// 驗證拒絕（輸入本來就不合法）、容量/頻率拒絕（配額或冷卻）、
// 競態失敗（檢查到提交之間狀態變了 — 「你太慢了」）、以及成功。
// 客戶端依類別區分「這本來就不行」和「剛好被搶先」。
type Result int

const (
	ResultOK Result = iota

	// 驗證拒絕 — 無副作用，不記錄為錯誤
	ResultDisabled
	ResultUnknownKind
	ResultSelfTarget
	ResultReceiverOffline
	ResultSenderLacksKind
	ResultReceiverHasKind
	ResultNotAccepting

	// 容量 / 頻率拒絕
	ResultCooldown
	ResultSenderQuota
	ResultInboxFull

	// 競態失敗
	ResultNotFound
	ResultExpired
	ResultAlreadyDiscovered
	ResultInsufficientFunds
	ResultFailed

	// 成功結果
	ResultAccepted
	ResultDeclined
	ResultClaimed
	ResultNothingToClaim
)

// Class 是結果碼的類別。
type Class int

const (
	ClassOK Class = iota
	ClassValidation
	ClassCapacity
	ClassRace
)

// Class 回傳結果碼所屬的類別。
func (r Result) Class() Class {
	switch r {
	case ResultDisabled, ResultUnknownKind, ResultSelfTarget, ResultReceiverOffline,
		ResultSenderLacksKind, ResultReceiverHasKind, ResultNotAccepting:
		return ClassValidation
	case ResultCooldown, ResultSenderQuota, ResultInboxFull:
		return ClassCapacity
	case ResultNotFound, ResultExpired, ResultAlreadyDiscovered,
		ResultInsufficientFunds, ResultFailed:
		return ClassRace
	default:
		return ClassOK
	}
}

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultDisabled:
		return "disabled"
	case ResultUnknownKind:
		return "unknown_kind"
	case ResultSelfTarget:
		return "self_target"
	case ResultReceiverOffline:
		return "receiver_offline"
	case ResultSenderLacksKind:
		return "sender_lacks_kind"
	case ResultReceiverHasKind:
		return "receiver_has_kind"
	case ResultNotAccepting:
		return "not_accepting"
	case ResultCooldown:
		return "cooldown"
	case ResultSenderQuota:
		return "sender_quota"
	case ResultInboxFull:
		return "inbox_full"
	case ResultNotFound:
		return "not_found"
	case ResultExpired:
		return "expired"
	case ResultAlreadyDiscovered:
		return "already_discovered"
	case ResultInsufficientFunds:
		return "insufficient_funds"
	case ResultFailed:
		return "failed"
	case ResultAccepted:
		return "accepted"
	case ResultDeclined:
		return "declined"
	case ResultClaimed:
		return "claimed"
	case ResultNothingToClaim:
		return "nothing_to_claim"
	default:
		return "unknown"
	}
}
