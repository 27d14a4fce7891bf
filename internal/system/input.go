package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	coresys "github.com/mobdex/server/internal/core/system"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// ConsoleInputSystem 以標準輸入作為指令來源:營運人員在主控台
// 模擬玩家會話並下達圖鑑指令。每行一個指令:
//
//	join <名稱> [admin]   讓玩家上線
//	leave <名稱>          讓玩家離線
//	<名稱> .<指令> ...    以該玩家身分執行聊天指令
//
// 讀取在獨立 goroutine 進行,行緩衝後由遊戲迴圈每 tick 取出,
// 單 tick 有處理上限,避免貼上大量指令時卡住迴圈。
type ConsoleInputSystem struct {
	deps  *handler.Deps
	lines chan string
	max   int
}

func NewConsoleInputSystem(deps *handler.Deps, maxPerTick int) *ConsoleInputSystem {
	if maxPerTick <= 0 {
		maxPerTick = 32
	}
	s := &ConsoleInputSystem{
		deps:  deps,
		lines: make(chan string, 256),
		max:   maxPerTick,
	}
	go s.readLoop()
	return s
}

func (s *ConsoleInputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ConsoleInputSystem) readLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.lines <- line
	}
	close(s.lines)
}

func (s *ConsoleInputSystem) Update(_ time.Duration) {
	for i := 0; i < s.max; i++ {
		select {
		case line, ok := <-s.lines:
			if !ok {
				return
			}
			s.handle(line)
		default:
			return
		}
	}
}

func (s *ConsoleInputSystem) handle(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "join":
		if len(fields) < 2 {
			fmt.Println("  用法: join <名稱> [admin]")
			return
		}
		name := fields[1]
		p := s.deps.World.GetByName(name)
		if p == nil {
			p = &world.PlayerInfo{
				// 主控台會話以小寫名稱作為穩定 id,重複上線沿用同一份紀錄
				PlayerID: strings.ToLower(name),
				Name:     name,
			}
		}
		p.Admin = len(fields) > 2 && fields[2] == "admin"
		handler.HandleJoin(p, s.deps)
		s.deps.Log.Info("玩家上線", zap.String("player", name), zap.Bool("admin", p.Admin))
	case "leave":
		if len(fields) < 2 {
			fmt.Println("  用法: leave <名稱>")
			return
		}
		p := s.deps.World.GetByName(fields[1])
		if p == nil {
			fmt.Printf("  玩家不在線上: %s\n", fields[1])
			return
		}
		handler.HandleLeave(p.PlayerID, s.deps)
		s.deps.Log.Info("玩家離線", zap.String("player", p.Name))
	default:
		p := s.deps.World.GetByName(fields[0])
		if p == nil {
			fmt.Printf("  玩家不在線上: %s\n", fields[0])
			return
		}
		cmd := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		if !handler.HandleCommand(p, cmd, s.deps) {
			fmt.Printf("  不是指令: %s\n", cmd)
		}
	}
}
