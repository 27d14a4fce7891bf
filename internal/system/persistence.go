package system

import (
	"context"
	"sort"
	"time"

	"github.com/mobdex/server/internal/bestiary"
	coresys "github.com/mobdex/server/internal/core/system"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/persist"
	"go.uber.org/zap"
)

// PersistenceSystem 定期將 dirty 的圖鑑 / 託管 / 偏好紀錄批次寫回
// 資料庫。存檔失敗的紀錄保留 dirty 旗標，下個週期重試。
type PersistenceSystem struct {
	deps      *handler.Deps
	tickCount int
	interval  int // flush every N ticks
}

func NewPersistenceSystem(deps *handler.Deps, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{deps: deps, interval: intervalTicks}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush 立即沖寫所有 dirty 紀錄。關機時也由主迴圈直接呼叫，
// 確保不遺失資料。
func (s *PersistenceSystem) Flush() {
	if s.deps.DiscoveryRepo == nil {
		return
	}
	worldID := s.deps.Config.Server.WorldID
	saved := 0

	s.deps.Ledger.DirtyRecords(func(playerID string, r *bestiary.DiscoveryRecord) bool {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		kinds := make([]string, 0, len(r.Kinds))
		for k := range r.Kinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)

		err := s.deps.DiscoveryRepo.Save(ctx, &persist.DiscoveryRow{
			WorldID:         worldID,
			PlayerID:        playerID,
			Kinds:           kinds,
			ReceivedStarter: r.ReceivedStarter,
			Completed:       r.Completed,
		})
		if err != nil {
			s.deps.Log.Error("儲存圖鑑紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
			return false
		}
		saved++
		return true
	})

	s.deps.Payouts.DirtyRecords(func(playerID string, r *bestiary.PayoutRecord) bool {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.deps.PayoutRepo.Save(ctx, worldID, playerID, r.Owed); err != nil {
			s.deps.Log.Error("儲存託管紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
			return false
		}
		saved++
		return true
	})

	s.deps.Prefs.DirtyRecords(func(playerID string, r *bestiary.PrefRecord) bool {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.deps.PrefRepo.Save(ctx, worldID, playerID, r.Accepting); err != nil {
			s.deps.Log.Error("儲存偏好紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
			return false
		}
		saved++
		return true
	})

	if saved > 0 {
		s.deps.Log.Debug("批次存檔完成", zap.Int("records", saved))
	}
}
