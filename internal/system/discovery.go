package system

import (
	"fmt"

	"github.com/mobdex/server/internal/core/event"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// DiscoverySystem 負責發現記錄的業務邏輯：寫入帳本、快照失效、
// 事件發佈、完成偵測。實作 handler.DiscoveryManager 介面。
type DiscoverySystem struct {
	deps *handler.Deps
}

// NewDiscoverySystem 建立發現系統。
func NewDiscoverySystem(deps *handler.Deps) *DiscoverySystem {
	return &DiscoverySystem{deps: deps}
}

// Discover 記錄一次發現。kind 不可追蹤或已發現時回傳 false。
// 成功時立即讓該玩家的快照失效，下一次讀取就能看到新 kind，
// 不等 TTL 過期。
func (s *DiscoverySystem) Discover(p *world.PlayerInfo, kind, source string) bool {
	if !s.deps.Config.MobDex.Enabled {
		return false
	}
	if !s.deps.Ledger.MarkDiscovered(p.PlayerID, kind) {
		return false
	}

	s.deps.Snapshots.Invalidate(p.PlayerID)
	event.Emit(s.deps.Bus, event.MobDiscovered{
		WorldID:  s.deps.Config.Server.WorldID,
		PlayerID: p.PlayerID,
		Kind:     kind,
		Source:   source,
	})
	p.Tell(fmt.Sprintf("圖鑑新增：%s", kind))

	s.deps.Log.Debug("記錄發現",
		zap.String("player", p.Name),
		zap.String("kind", kind),
		zap.String("source", source),
	)

	s.OnMobDiscovered(p.PlayerID)
	return true
}

// OnMobDiscovered 是完成偵測器。已完成的玩家直接跳過；總數未知時
// 不做事。完成轉換靠 MarkComplete 的冪等性保證至多發出一次通知 —
// 同一玩家的併發發現事件不會重複觸發完成。
func (s *DiscoverySystem) OnMobDiscovered(playerID string) {
	if s.deps.Ledger.Completed(playerID) {
		return
	}
	total := s.deps.Catalog.TotalTrackable()
	if total <= 0 {
		return
	}
	// 這裡永遠用新鮮的過濾讀取，不走快照 — 完成是一次性事件
	if s.deps.Ledger.DiscoveredCount(playerID) < total {
		return
	}
	if !s.deps.Ledger.MarkComplete(playerID) {
		return // 另一次呼叫已先完成
	}

	event.Emit(s.deps.Bus, event.CompendiumCompleted{
		WorldID:  s.deps.Config.Server.WorldID,
		PlayerID: playerID,
		Total:    total,
	})
	if p := s.deps.World.GetByID(playerID); p != nil {
		p.Tell("圖鑑完成！所有生物都已收錄。")
	}
	s.deps.Log.Info("圖鑑完成",
		zap.String("player_id", playerID),
		zap.Int("total", total),
	)
}

// DiscoveredCount 回傳過濾後的已發現數。
func (s *DiscoverySystem) DiscoveredCount(playerID string) int {
	return s.deps.Ledger.DiscoveredCount(playerID)
}

// TotalTrackable 回傳可追蹤 kind 總數。
func (s *DiscoverySystem) TotalTrackable() int {
	return s.deps.Catalog.TotalTrackable()
}

// CompletionPercent 回傳完成度，基數 10000，範圍 [0, 10000]。
// 總數未知時為 0。
func (s *DiscoverySystem) CompletionPercent(playerID string) int {
	total := s.deps.Catalog.TotalTrackable()
	if total <= 0 {
		return 0
	}
	percent := s.deps.Ledger.DiscoveredCount(playerID) * 10000 / total
	if percent < 0 {
		percent = 0
	}
	if percent > 10000 {
		percent = 10000
	}
	return percent
}

// Completed 回報玩家是否已完成圖鑑。
func (s *DiscoverySystem) Completed(playerID string) bool {
	return s.deps.Ledger.Completed(playerID)
}

// Candidates 回傳玩家的快照候選清單。
func (s *DiscoverySystem) Candidates(playerID string) []string {
	snap := s.deps.Snapshots.Resolve(s.deps.World.Tick(), playerID, false)
	return snap.Candidates
}

// ClearCaches 清空快照與驗證快取。圖鑑總數快取不受影響。
func (s *DiscoverySystem) ClearCaches() {
	s.deps.Snapshots.ClearAll()
	s.deps.Validity.ClearAll()
}
