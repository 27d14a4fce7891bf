package system

import (
	"strings"
	"testing"

	"github.com/mobdex/server/internal/bestiary"
	"github.com/mobdex/server/internal/config"
	"github.com/mobdex/server/internal/core/event"
	"github.com/mobdex/server/internal/data"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// testEnv 組裝一個不接資料庫的完整遊戲環境:兩種可追蹤生物
// (wild:wolf、wild:bear),dev 命名空間被排除。
type testEnv struct {
	deps      *handler.Deps
	discovery *DiscoverySystem
	exchange  *ExchangeSystem
	ws        *world.State
	spawner   *bestiary.Spawner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mobs := data.NewMobTable([]data.MobTemplate{
		{Key: "wild:wolf", Name: "狼", Category: data.CategoryCreature, HP: 10},
		{Key: "wild:bear", Name: "熊", Category: data.CategoryCreature, HP: 20},
		{Key: "dev:dummy", Name: "假人", Category: data.CategoryCreature, HP: 5},
	})
	excl := data.NewExclusionTable(nil, []string{"dev"})
	log := zap.NewNop()

	spawner := bestiary.NewSpawner(mobs)
	catalog := bestiary.NewCatalog(mobs, excl, spawner, log)
	validity := bestiary.NewValidityCache(spawner, 200, log)
	ledger := bestiary.NewDiscoveryLedger(catalog)
	snapshots := bestiary.NewSnapshotCache(ledger, catalog, validity, 200, 256)

	deps := &handler.Deps{
		Config:     config.Defaults(),
		Log:        log,
		World:      world.NewState(),
		Mobs:       mobs,
		Exclusions: excl,
		Bus:        event.NewBus(),
		Catalog:    catalog,
		Ledger:     ledger,
		Payouts:    bestiary.NewPayoutLedger(),
		Prefs:      bestiary.NewPreferences(),
		Snapshots:  snapshots,
		Validity:   validity,
	}
	discovery := NewDiscoverySystem(deps)
	exchange := NewExchangeSystem(deps, discovery)
	deps.Discovery = discovery
	deps.Exchange = exchange

	return &testEnv{
		deps:      deps,
		discovery: discovery,
		exchange:  exchange,
		ws:        deps.World,
		spawner:   spawner,
	}
}

// join 讓一位玩家上線(含初始道具發放)。
func (e *testEnv) join(name string) *world.PlayerInfo {
	p := &world.PlayerInfo{PlayerID: strings.ToLower(name), Name: name}
	handler.HandleJoin(p, e.deps)
	return p
}

// advance 前進 n 個世界 tick。
func (e *testEnv) advance(n int) {
	for i := 0; i < n; i++ {
		e.ws.Advance()
	}
}

// dispatch 模擬一次事件派送:swap 後投遞上個 tick 的事件。
func (e *testEnv) dispatch() {
	e.deps.Bus.SwapBuffers()
	e.deps.Bus.DispatchAll()
}
