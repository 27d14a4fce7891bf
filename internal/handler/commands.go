package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobdex/server/internal/bestiary"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
)

// HandleCommand processes a "." prefixed chat command.
// Returns true if the text was a command (consumed), false otherwise.
func HandleCommand(player *world.PlayerInfo, text string, deps *Deps) bool {
	if !strings.HasPrefix(text, ".") {
		return false
	}

	parts := strings.Fields(text[1:]) // strip leading "."
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		cmdHelp(player)
	case "dexstats", "dex":
		cmdStats(player, deps)
	case "dexlist":
		cmdList(player, deps)
	case "offer":
		cmdOffer(player, args, deps)
	case "accept":
		cmdRespond(player, args, true, deps)
	case "decline":
		cmdRespond(player, args, false, deps)
	case "offers":
		cmdOffers(player, deps)
	case "trading":
		cmdTrading(player, args, deps)
	case "traders":
		cmdTraders(player, deps)
	case "claim":
		cmdClaim(player, deps)
	case "discover":
		cmdDiscover(player, args, deps)
	case "clearcache":
		cmdClearCache(player, deps)
	default:
		return false
	}
	return true
}

func cmdHelp(p *world.PlayerInfo) {
	p.Tell(".dexstats — 圖鑑進度")
	p.Tell(".dexlist — 已發現的生物")
	p.Tell(".offer <玩家> <kind> <價格> — 發出解鎖報價")
	p.Tell(".accept/.decline <編號> — 回應報價")
	p.Tell(".offers — 查看收件匣")
	p.Tell(".trading on|off — 開關接受報價")
	p.Tell(".traders — 目前接受報價的玩家")
	p.Tell(".claim — 領取交易款項")
}

// cmdStats 顯示發現數、總數與完成度（萬分比換算成百分比顯示）。
func cmdStats(p *world.PlayerInfo, deps *Deps) {
	discovered := deps.Discovery.DiscoveredCount(p.PlayerID)
	total := deps.Discovery.TotalTrackable()
	percent := deps.Discovery.CompletionPercent(p.PlayerID)
	p.Tell(fmt.Sprintf("圖鑑進度：%d / %d（%d.%02d%%）",
		discovered, total, percent/100, percent%100))
	if deps.Discovery.Completed(p.PlayerID) {
		p.Tell("圖鑑已完成！")
	}
}

func cmdList(p *world.PlayerInfo, deps *Deps) {
	candidates := deps.Discovery.Candidates(p.PlayerID)
	if len(candidates) == 0 {
		p.Tell("尚未發現任何生物。")
		return
	}
	p.Tell(fmt.Sprintf("已發現 %d 種生物：", len(candidates)))
	p.Tell(strings.Join(candidates, ", "))
}

func cmdOffer(p *world.PlayerInfo, args []string, deps *Deps) {
	if len(args) < 3 {
		p.Tell("用法：.offer <玩家> <kind> <價格>")
		return
	}
	target := deps.World.GetByName(args[0])
	if target == nil {
		p.Tell("找不到該玩家。")
		return
	}
	price, err := strconv.Atoi(args[2])
	if err != nil || price < 0 {
		p.Tell("價格必須是非負整數。")
		return
	}
	result, offer := deps.Exchange.CreateOffer(p, target.PlayerID, args[1], price)
	if result != bestiary.ResultOK {
		p.Tell(resultMessage(result))
		return
	}
	p.Tell(fmt.Sprintf("報價 #%d 已送出給 %s。", offer.ID, offer.ReceiverName))
}

func cmdRespond(p *world.PlayerInfo, args []string, accept bool, deps *Deps) {
	if len(args) < 1 {
		p.Tell("用法：.accept/.decline <編號>")
		return
	}
	offerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		p.Tell("報價編號格式錯誤。")
		return
	}
	result, _ := deps.Exchange.Respond(p, offerID, accept)
	switch result {
	case bestiary.ResultAccepted, bestiary.ResultDeclined:
		// 雙方通知由交易所發送
	default:
		p.Tell(resultMessage(result))
	}
}

func cmdOffers(p *world.PlayerInfo, deps *Deps) {
	inbox := deps.Exchange.Inbox(p.PlayerID)
	if len(inbox) == 0 {
		p.Tell("收件匣沒有報價。")
		return
	}
	for _, o := range inbox {
		p.Tell(fmt.Sprintf("#%d  %s 出售 %s，價格 %d", o.ID, o.SenderName, o.Kind, o.Price))
	}
}

func cmdTrading(p *world.PlayerInfo, args []string, deps *Deps) {
	if len(args) < 1 {
		if deps.Exchange.Accepting(p.PlayerID) {
			p.Tell("目前接受報價中。")
		} else {
			p.Tell("目前不接受報價。")
		}
		return
	}
	switch strings.ToLower(args[0]) {
	case "on":
		deps.Exchange.SetAccepting(p, true)
	case "off":
		deps.Exchange.SetAccepting(p, false)
	default:
		p.Tell("用法：.trading on|off")
	}
}

func cmdTraders(p *world.PlayerInfo, deps *Deps) {
	names := deps.Exchange.AcceptingPlayers(p.PlayerID)
	if len(names) == 0 {
		p.Tell("目前沒有玩家接受報價。")
		return
	}
	p.Tell("接受報價的玩家：" + strings.Join(names, ", "))
}

func cmdClaim(p *world.PlayerInfo, deps *Deps) {
	result, total := deps.Exchange.Claim(p)
	if result == bestiary.ResultNothingToClaim {
		p.Tell("沒有待領取的款項。")
		return
	}
	p.Tell(fmt.Sprintf("已領取 %d 單位貨幣。", total))
}

// cmdDiscover 管理指令：直接記錄一次發現。
func cmdDiscover(p *world.PlayerInfo, args []string, deps *Deps) {
	if !p.Admin {
		return
	}
	if len(args) < 1 {
		p.Tell("用法：.discover <kind>")
		return
	}
	if deps.Discovery.Discover(p, args[0], "admin") {
		p.Tell(fmt.Sprintf("已記錄發現：%s", args[0]))
	} else {
		p.Tell("該 kind 無法追蹤或已發現。")
	}
}

// cmdClearCache 管理指令：清空快照與驗證快取。圖鑑總數不受影響。
func cmdClearCache(p *world.PlayerInfo, deps *Deps) {
	if !p.Admin {
		return
	}
	deps.Discovery.ClearCaches()
	p.Tell("快取已清空。")
	deps.Log.Info("管理員清空快取", zap.String("player", p.Name))
}

// resultMessage 將結果碼轉成對玩家顯示的訊息。
func resultMessage(r bestiary.Result) string {
	switch r {
	case bestiary.ResultDisabled:
		return "交易功能目前關閉。"
	case bestiary.ResultUnknownKind:
		return "沒有這種生物。"
	case bestiary.ResultSelfTarget:
		return "不能對自己發出報價。"
	case bestiary.ResultReceiverOffline:
		return "對方不在線上。"
	case bestiary.ResultSenderLacksKind:
		return "你還沒發現這種生物。"
	case bestiary.ResultReceiverHasKind:
		return "對方已經發現這種生物。"
	case bestiary.ResultNotAccepting:
		return "對方目前不接受報價。"
	case bestiary.ResultCooldown:
		return "發送太快，請稍候再試。"
	case bestiary.ResultSenderQuota:
		return "你的未決報價已達上限。"
	case bestiary.ResultInboxFull:
		return "對方的收件匣已滿。"
	case bestiary.ResultNotFound:
		return "找不到該報價。"
	case bestiary.ResultExpired:
		return "該報價已過期。"
	case bestiary.ResultAlreadyDiscovered:
		return "你已經發現這種生物了。"
	case bestiary.ResultInsufficientFunds:
		return "貨幣不足。"
	case bestiary.ResultFailed:
		return "交易失敗。"
	default:
		return "操作失敗。"
	}
}
