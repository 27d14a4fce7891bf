package system

import (
	"time"

	"github.com/mobdex/server/internal/core/event"
	coresys "github.com/mobdex/server/internal/core/system"
)

// EventDispatchSystem 在每個 tick 開頭旋轉事件緩衝並派送上一個
// tick 發佈的事件給所有訂閱者（網路同步、Lua 橋接等協作者）。
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
