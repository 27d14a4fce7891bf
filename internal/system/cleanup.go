package system

import (
	"fmt"
	"time"

	"github.com/mobdex/server/internal/bestiary"
	coresys "github.com/mobdex/server/internal/core/system"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem 在 tick 結尾清掉過期的地面物品、回收探測實體,
// 並把玩家的待送聊天訊息輸出到主控台。
type CleanupSystem struct {
	ws      *world.State
	spawner *bestiary.Spawner
	log     *zap.Logger
}

func NewCleanupSystem(ws *world.State, spawner *bestiary.Spawner, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{ws: ws, spawner: spawner, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if removed := s.ws.ExpireGroundItems(); removed > 0 {
		s.log.Debug("地面物品過期清除", zap.Int("count", removed))
	}
	if reclaimed := s.spawner.FlushDestroyed(); reclaimed > 0 {
		s.log.Debug("探測實體回收", zap.Int("count", reclaimed))
	}
	s.ws.AllPlayers(func(p *world.PlayerInfo) {
		for _, line := range p.Outbox {
			fmt.Printf("  \033[90m[%s]\033[0m %s\n", p.Name, line)
		}
		p.Outbox = p.Outbox[:0]
	})
}
