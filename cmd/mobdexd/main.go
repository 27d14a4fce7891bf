package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mobdex/server/internal/bestiary"
	"github.com/mobdex/server/internal/config"
	"github.com/mobdex/server/internal/core/event"
	coresys "github.com/mobdex/server/internal/core/system"
	"github.com/mobdex/server/internal/data"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/persist"
	"github.com/mobdex/server/internal/scripting"
	"github.com/mobdex/server/internal/system"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName, worldID string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             MobDex  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      怪物圖鑑 · Go 遊戲伺服器模組         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m伺服器:\033[0m %s \033[90m(世界: %s)\033[0m\n\n", serverName, worldID)
}

func printSection(title string) {
	// Use rune count for CJK width calculation (each CJK char = 2 columns)
	displayWidth := 0
	for _, r := range title {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	lineLen := 46 - displayWidth - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	// Use display width for CJK characters
	displayWidth := 0
	for _, r := range label {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	dotsLen := 42 - displayWidth - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("MOBDEX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.WorldID)

	// 3. Connect to PostgreSQL, run migrations, merge legacy regions
	printSection("資料庫")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("PostgreSQL 連線成功")

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK("資料庫遷移完成")

	if err := persist.MigrateLegacyRegions(ctx, db, cfg.Server.WorldID, log); err != nil {
		return fmt.Errorf("legacy region merge: %w", err)
	}
	printOK("舊版分區合併完成")
	fmt.Println()

	// 4. Create repositories
	discoveryRepo := persist.NewDiscoveryRepo(db)
	payoutRepo := persist.NewPayoutRepo(db)
	prefRepo := persist.NewPreferenceRepo(db)

	// 5. Load data tables
	printSection("資料載入")

	mobTable, err := data.LoadMobTable(cfg.MobDex.MobListPath)
	if err != nil {
		return fmt.Errorf("load mob table: %w", err)
	}
	printStat("怪物模板", mobTable.Count())

	exclTable, err := data.LoadExclusionTable(cfg.MobDex.ExclusionListPath)
	if err != nil {
		return fmt.Errorf("load exclusion table: %w", err)
	}
	printStat("排除條目", exclTable.Count())

	// 6. Build world state and compendium core
	worldState := world.NewState()

	spawner := bestiary.NewSpawner(mobTable)
	catalog := bestiary.NewCatalog(mobTable, exclTable, spawner, log)
	validity := bestiary.NewValidityCache(spawner, cfg.MobDex.InvalidKindTTLTicks, log)
	ledger := bestiary.NewDiscoveryLedger(catalog)
	payouts := bestiary.NewPayoutLedger()
	prefs := bestiary.NewPreferences()
	snapshots := bestiary.NewSnapshotCache(ledger, catalog, validity,
		cfg.MobDex.SnapshotTTLTicks, cfg.MobDex.SnapshotCacheSize)

	bus := event.NewBus()

	// 7. Initialize Lua scripting engine and wire it to the event bus
	luaEngine, err := scripting.NewEngine(cfg.MobDex.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	scripting.RegisterBridge(bus, luaEngine)
	printOK("Lua 腳本載入完成")
	fmt.Println()

	// 8. Wire dependencies and domain systems
	deps := &handler.Deps{
		Config:     cfg,
		Log:        log,
		World:      worldState,
		Mobs:       mobTable,
		Exclusions: exclTable,
		Bus:        bus,

		Catalog:   catalog,
		Ledger:    ledger,
		Payouts:   payouts,
		Prefs:     prefs,
		Snapshots: snapshots,
		Validity:  validity,

		DiscoveryRepo: discoveryRepo,
		PayoutRepo:    payoutRepo,
		PrefRepo:      prefRepo,
	}
	discoverySys := system.NewDiscoverySystem(deps)
	exchangeSys := system.NewExchangeSystem(deps, discoverySys)
	deps.Discovery = discoverySys
	deps.Exchange = exchangeSys

	// 9. Register tick systems
	runner := coresys.NewRunner()
	runner.Register(system.NewConsoleInputSystem(deps, cfg.Loop.MaxCommandsPerTick))
	runner.Register(system.NewEventDispatchSystem(bus))
	persistSys := system.NewPersistenceSystem(deps, cfg.Loop.AutosaveTicks)
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(worldState, spawner, log))

	// 10. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printSection("伺服器就緒")
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Loop.TickRate))
	printReady("主控台指令: join <名稱> [admin] / leave <名稱> / <名稱> .help")
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			worldState.Advance()
			runner.Tick(cfg.Loop.TickRate)
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			// Flush dirty records before stopping
			persistSys.Flush()
			log.Info("伺服器已停止")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
