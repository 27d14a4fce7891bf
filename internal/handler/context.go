package handler

import (
	"github.com/mobdex/server/internal/bestiary"
	"github.com/mobdex/server/internal/config"
	"github.com/mobdex/server/internal/core/event"
	"github.com/mobdex/server/internal/data"
	"github.com/mobdex/server/internal/persist"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// DiscoveryManager 是圖鑑系統對指令層的介面。由 system.DiscoverySystem 實作。
type DiscoveryManager interface {
	// Discover 記錄一次發現，回傳是否為新發現。
	Discover(p *world.PlayerInfo, kind, source string) bool
	DiscoveredCount(playerID string) int
	TotalTrackable() int
	// CompletionPercent 回傳完成度，基數 10000（萬分比）。
	CompletionPercent(playerID string) int
	Completed(playerID string) bool
	// Candidates 回傳玩家的快照候選清單（已驗證、排序）。
	Candidates(playerID string) []string
	// ClearCaches 清空快照與驗證快取（管理指令 / 世界停止）。
	ClearCaches()
}

// ExchangeManager 是交易所對指令層的介面。由 system.ExchangeSystem 實作。
type ExchangeManager interface {
	CreateOffer(sender *world.PlayerInfo, receiverID, kind string, price int) (bestiary.Result, *bestiary.Offer)
	Respond(receiver *world.PlayerInfo, offerID int64, accept bool) (bestiary.Result, *bestiary.Offer)
	SetAccepting(p *world.PlayerInfo, accepting bool)
	Accepting(playerID string) bool
	// AcceptingPlayers 回傳目前接受報價的線上玩家名稱，
	// 依名稱不分大小寫排序；exclude 排除自己。
	AcceptingPlayers(excludePlayerID string) []string
	Inbox(playerID string) []*bestiary.Offer
	PendingTotal(playerID string) int
	Claim(p *world.PlayerInfo) (bestiary.Result, int)
}

// Deps holds shared dependencies injected into all command handlers.
type Deps struct {
	Config     *config.Config
	Log        *zap.Logger
	World      *world.State
	Mobs       *data.MobTable
	Exclusions *data.ExclusionTable
	Bus        *event.Bus

	Catalog   *bestiary.Catalog
	Ledger    *bestiary.DiscoveryLedger
	Payouts   *bestiary.PayoutLedger
	Prefs     *bestiary.Preferences
	Snapshots *bestiary.SnapshotCache
	Validity  *bestiary.ValidityCache

	Discovery DiscoveryManager
	Exchange  ExchangeManager

	DiscoveryRepo *persist.DiscoveryRepo
	PayoutRepo    *persist.PayoutRepo
	PrefRepo      *persist.PreferenceRepo
}
