package handler

import (
	"context"
	"time"

	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// HandleJoin 處理玩家進入世界：註冊到世界狀態、載入持久區域、
// 首次加入時發放初始道具。
func HandleJoin(p *world.PlayerInfo, deps *Deps) {
	deps.World.AddPlayer(p)
	loadPlayerRegions(p.PlayerID, deps)
	grantStarterItem(p, deps)

	deps.Log.Info("玩家進入世界",
		zap.String("player", p.Name),
		zap.String("player_id", p.PlayerID),
	)
}

// HandleLeave 處理玩家離開世界。Dirty 紀錄留給存檔系統沖寫。
func HandleLeave(playerID string, deps *Deps) {
	deps.World.RemovePlayer(playerID)
}

// loadPlayerRegions 延遲載入玩家的三個持久區域。已載入過或沒有
// 資料庫（測試）時跳過。
func loadPlayerRegions(playerID string, deps *Deps) {
	worldID := deps.Config.Server.WorldID

	if deps.DiscoveryRepo != nil && !deps.Ledger.Known(playerID) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		row, err := deps.DiscoveryRepo.Load(ctx, worldID, playerID)
		cancel()
		if err != nil {
			deps.Log.Error("載入圖鑑紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
		} else if row != nil {
			deps.Ledger.LoadRecord(playerID, row.Kinds, row.ReceivedStarter, row.Completed)
		}
	}

	if deps.PayoutRepo != nil && !deps.Payouts.Known(playerID) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		owed, err := deps.PayoutRepo.Load(ctx, worldID, playerID)
		cancel()
		if err != nil {
			deps.Log.Error("載入託管紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
		} else if len(owed) > 0 {
			deps.Payouts.LoadRecord(playerID, owed)
		}
	}

	if deps.PrefRepo != nil && !deps.Prefs.Known(playerID) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		accepting, found, err := deps.PrefRepo.Load(ctx, worldID, playerID)
		cancel()
		if err != nil {
			deps.Log.Error("載入偏好紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
		} else if found {
			deps.Prefs.LoadRecord(playerID, accepting)
		}
	}
}

// grantStarterItem 首次加入時發放一本圖鑑手冊。旗標冪等，重複加入不再發。
func grantStarterItem(p *world.PlayerInfo, deps *Deps) {
	if !deps.Config.MobDex.Enabled {
		return
	}
	if !deps.Ledger.MarkReceivedStarterItem(p.PlayerID) {
		return
	}
	kind := deps.Config.MobDex.StarterItemKind
	placed := p.Inv.Grant(kind, 1)
	if placed < 1 {
		deps.World.DropItem(p.PlayerID, kind, 1)
	}
	p.Tell("獲得了圖鑑手冊。")
}
