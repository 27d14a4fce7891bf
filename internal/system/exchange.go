package system

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mobdex/server/internal/bestiary"
	"github.com/mobdex/server/internal/core/event"
	"github.com/mobdex/server/internal/handler"
	"github.com/mobdex/server/internal/world"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ExchangeSystem 負責報價交易所：發起、回應、到期掃除、託管結算、
// 款項領取。實作 handler.ExchangeManager 介面。
// 報價只存在記憶體，按 receiver 分收件匣；所有操作都在遊戲迴圈
// goroutine 上執行。
type ExchangeSystem struct {
	deps      *handler.Deps
	discovery *DiscoverySystem

	inboxes     map[string][]*bestiary.Offer
	nextSendAt  map[string]int64 // sender 冷卻：下次允許發送的 tick
	nextOfferID int64
	collator    *collate.Collator
}

// NewExchangeSystem 建立交易所系統。
func NewExchangeSystem(deps *handler.Deps, discovery *DiscoverySystem) *ExchangeSystem {
	return &ExchangeSystem{
		deps:       deps,
		discovery:  discovery,
		inboxes:    make(map[string][]*bestiary.Offer, 32),
		nextSendAt: make(map[string]int64, 32),
		collator:   collate.New(language.Und, collate.IgnoreCase),
	}
}

// CreateOffer 發起一筆報價。前置檢查依序執行，每一項失敗都是
// 無副作用的獨立拒絕。成功時價格被夾到 [0, MaxPrice]（付款關閉
// 時強制為 0 — 超額要求靜默縮減而不是拒絕）。
func (s *ExchangeSystem) CreateOffer(sender *world.PlayerInfo, receiverID, kind string, price int) (bestiary.Result, *bestiary.Offer) {
	now := s.deps.World.Tick()
	s.sweep(now)

	cfg := s.deps.Config.Exchange
	if !cfg.Enabled {
		return bestiary.ResultDisabled, nil
	}
	if !s.deps.Catalog.Trackable(kind) {
		return bestiary.ResultUnknownKind, nil
	}
	if sender.PlayerID == receiverID {
		return bestiary.ResultSelfTarget, nil
	}
	receiver := s.deps.World.GetByID(receiverID)
	if receiver == nil || !receiver.Connected {
		return bestiary.ResultReceiverOffline, nil
	}
	if !s.deps.Ledger.IsDiscovered(sender.PlayerID, kind) {
		return bestiary.ResultSenderLacksKind, nil
	}
	if s.deps.Ledger.IsDiscovered(receiverID, kind) {
		return bestiary.ResultReceiverHasKind, nil
	}
	if !s.deps.Prefs.Accepting(receiverID) {
		return bestiary.ResultNotAccepting, nil
	}
	if now < s.nextSendAt[sender.PlayerID] {
		return bestiary.ResultCooldown, nil
	}
	if s.openOffersFrom(sender.PlayerID) >= cfg.MaxOffersPerSender {
		return bestiary.ResultSenderQuota, nil
	}
	if len(s.inboxes[receiverID]) >= cfg.MaxOffersPerTarget {
		return bestiary.ResultInboxFull, nil
	}

	if price < 0 {
		price = 0
	}
	if price > cfg.MaxPrice {
		price = cfg.MaxPrice
	}
	if !cfg.PaymentEnabled {
		price = 0
	}

	s.nextOfferID++
	offer := &bestiary.Offer{
		ID:           s.nextOfferID,
		SenderID:     sender.PlayerID,
		SenderName:   sender.Name,
		ReceiverID:   receiverID,
		ReceiverName: receiver.Name,
		Kind:         kind,
		Price:        price,
		CurrencyKind: cfg.CurrencyKind,
		ExpiresAt:    now + cfg.OfferTTLTicks,
	}
	s.inboxes[receiverID] = append(s.inboxes[receiverID], offer)
	s.nextSendAt[sender.PlayerID] = now + cfg.SenderCooldownTicks

	sender.Tell(fmt.Sprintf("已向 %s 發出報價 #%d（%s，%d）。",
		receiver.Name, offer.ID, kind, price))
	receiver.Tell(fmt.Sprintf("%s 向你出售 %s，價格 %d。輸入 .accept %d 接受。",
		sender.Name, kind, price, offer.ID))

	event.Emit(s.deps.Bus, event.OfferCreated{
		OfferID:    offer.ID,
		SenderID:   offer.SenderID,
		ReceiverID: offer.ReceiverID,
		Kind:       kind,
		Price:      price,
	})
	s.deps.Log.Debug("報價已建立",
		zap.Int64("offer_id", offer.ID),
		zap.String("sender", sender.Name),
		zap.String("receiver", receiver.Name),
		zap.String("kind", kind),
		zap.Int("price", price),
	)
	return bestiary.ResultOK, offer
}

// Respond 回應收件匣中的一筆報價。報價先無條件從收件匣移除
//（至多消耗一次），再評估結果。
func (s *ExchangeSystem) Respond(receiver *world.PlayerInfo, offerID int64, accept bool) (bestiary.Result, *bestiary.Offer) {
	now := s.deps.World.Tick()
	s.sweep(now)

	inbox := s.inboxes[receiver.PlayerID]
	idx := -1
	for i, o := range inbox {
		if o.ID == offerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// 不存在、已被回應、或剛被掃除 — 一律「找不到」
		return bestiary.ResultNotFound, nil
	}
	offer := inbox[idx]
	s.inboxes[receiver.PlayerID] = append(inbox[:idx], inbox[idx+1:]...)

	// 邊界 tick 防禦：掃除後理論上不會再遇到，但到期就是到期
	if offer.Expired(now) {
		s.notifyExpired(offer)
		return bestiary.ResultExpired, offer
	}

	if !accept {
		s.tellBoth(offer, fmt.Sprintf("%s 拒絕了報價 #%d。", receiver.Name, offer.ID),
			fmt.Sprintf("已拒絕報價 #%d。", offer.ID))
		s.emitResolved(offer, "declined")
		return bestiary.ResultDeclined, offer
	}

	// 防禦性重驗：sender 的發現不可撤銷，但狀態總要再看一次
	if !s.deps.Ledger.IsDiscovered(offer.SenderID, offer.Kind) {
		s.failOffer(offer, "sender 已不持有該發現")
		return bestiary.ResultFailed, offer
	}
	// receiver 可能已透過另一筆報價取得 — 「你太慢了」而非無效輸入
	if s.deps.Ledger.IsDiscovered(receiver.PlayerID, offer.Kind) {
		receiver.Tell("你已經發現這種生物了。")
		s.emitResolved(offer, "failed")
		return bestiary.ResultAlreadyDiscovered, offer
	}

	// 付款：先扣款、再入託管、最後解鎖。順序保證不會
	// 「扣了款卻沒入託管」或「入了託管卻不解鎖」。
	if offer.Price > 0 {
		if receiver.Inv.Count(offer.CurrencyKind) < offer.Price {
			receiver.Tell("貨幣不足。")
			s.emitResolved(offer, "failed")
			return bestiary.ResultInsufficientFunds, offer
		}
		if !receiver.Inv.Remove(offer.CurrencyKind, offer.Price) {
			receiver.Tell("貨幣不足。")
			s.emitResolved(offer, "failed")
			return bestiary.ResultInsufficientFunds, offer
		}
		// 付款永遠入託管，不直接交給賣方 — 結算與賣方在線
		// 與否、背包是否有空位脫鉤
		s.ensurePayoutLoaded(offer.SenderID)
		s.deps.Payouts.Add(offer.SenderID, offer.CurrencyKind, offer.Price)
	}

	if !s.deps.Ledger.MarkDiscovered(receiver.PlayerID, offer.Kind) {
		// 依前面的檢查不應到達；視為硬失敗而不是靜默成功，
		// 避免為 no-op 付款
		s.deps.Log.Error("解鎖意外失敗",
			zap.Int64("offer_id", offer.ID),
			zap.String("receiver", receiver.Name),
			zap.String("kind", offer.Kind),
		)
		s.failOffer(offer, "解鎖失敗")
		return bestiary.ResultFailed, offer
	}

	s.deps.Snapshots.Invalidate(receiver.PlayerID)
	event.Emit(s.deps.Bus, event.MobDiscovered{
		WorldID:  s.deps.Config.Server.WorldID,
		PlayerID: receiver.PlayerID,
		Kind:     offer.Kind,
		Source:   "trade",
	})
	s.discovery.OnMobDiscovered(receiver.PlayerID)

	s.tellBoth(offer,
		fmt.Sprintf("%s 接受了報價 #%d，%d 單位貨幣已入你的待領款項。", receiver.Name, offer.ID, offer.Price),
		fmt.Sprintf("已接受報價 #%d，圖鑑新增：%s。", offer.ID, offer.Kind))
	s.emitResolved(offer, "accepted")
	s.deps.Log.Info("報價成交",
		zap.Int64("offer_id", offer.ID),
		zap.String("sender", offer.SenderName),
		zap.String("receiver", offer.ReceiverName),
		zap.String("kind", offer.Kind),
		zap.Int("price", offer.Price),
	)
	return bestiary.ResultAccepted, offer
}

// SetAccepting 設定玩家是否接受報價。
func (s *ExchangeSystem) SetAccepting(p *world.PlayerInfo, accepting bool) {
	s.deps.Prefs.SetAccepting(p.PlayerID, accepting)
	if accepting {
		p.Tell("已開啟接受報價。")
	} else {
		p.Tell("已關閉接受報價。")
	}
}

// Accepting 回報玩家是否接受報價。
func (s *ExchangeSystem) Accepting(playerID string) bool {
	return s.deps.Prefs.Accepting(playerID)
}

// AcceptingPlayers 回傳目前接受報價的線上玩家名稱，依名稱不分
// 大小寫排序。
func (s *ExchangeSystem) AcceptingPlayers(excludePlayerID string) []string {
	var names []string
	s.deps.World.AllPlayers(func(p *world.PlayerInfo) {
		if p.PlayerID == excludePlayerID {
			return
		}
		if s.deps.Prefs.Accepting(p.PlayerID) {
			names = append(names, p.Name)
		}
	})
	sort.Slice(names, func(i, j int) bool {
		return s.collator.CompareString(names[i], names[j]) < 0
	})
	return names
}

// Inbox 回傳玩家收件匣的複本（先做到期掃除）。
func (s *ExchangeSystem) Inbox(playerID string) []*bestiary.Offer {
	s.sweep(s.deps.World.Tick())
	inbox := s.inboxes[playerID]
	out := make([]*bestiary.Offer, len(inbox))
	copy(out, inbox)
	return out
}

// PendingTotal 回傳玩家待領款項總量。
func (s *ExchangeSystem) PendingTotal(playerID string) int {
	return s.deps.Payouts.Total(playerID)
}

// Claim 原子地取出玩家的所有待領款項並轉成實體物品：先填背包
//（自動按堆疊上限拆分），放不下的掉在地面。
func (s *ExchangeSystem) Claim(p *world.PlayerInfo) (bestiary.Result, int) {
	s.sweep(s.deps.World.Tick())
	s.ensurePayoutLoaded(p.PlayerID)

	owed := s.deps.Payouts.TakeAll(p.PlayerID)
	if len(owed) == 0 {
		return bestiary.ResultNothingToClaim, 0
	}

	total := 0
	for kind, amount := range owed {
		placed := p.Inv.Grant(kind, amount)
		if leftover := amount - placed; leftover > 0 {
			s.deps.World.DropItem(p.PlayerID, kind, leftover)
			p.Tell(fmt.Sprintf("背包已滿，%d 單位 %s 掉落在地面。", leftover, kind))
		}
		total += amount
	}

	event.Emit(s.deps.Bus, event.PayoutClaimed{PlayerID: p.PlayerID, Total: total})
	s.deps.Log.Info("款項已領取",
		zap.String("player", p.Name),
		zap.Int("total", total),
	)
	return bestiary.ResultClaimed, total
}

// openOffersFrom 統計 sender 在所有收件匣中的未決報價數。
func (s *ExchangeSystem) openOffersFrom(senderID string) int {
	count := 0
	for _, inbox := range s.inboxes {
		for _, o := range inbox {
			if o.SenderID == senderID {
				count++
			}
		}
	}
	return count
}

// sweep 移除所有已到期的報價。在每個交易所操作開頭機會性執行，
// 不靠獨立計時器。移除前先通知雙方。
func (s *ExchangeSystem) sweep(now int64) {
	for receiverID, inbox := range s.inboxes {
		kept := inbox[:0]
		for _, o := range inbox {
			if !o.Expired(now) {
				kept = append(kept, o)
				continue
			}
			s.notifyExpired(o)
			s.emitResolved(o, "expired")
		}
		if len(kept) == 0 {
			delete(s.inboxes, receiverID)
		} else {
			s.inboxes[receiverID] = kept
		}
	}
}

// ensurePayoutLoaded 確保賣方的託管紀錄已從資料庫載入。賣方可能
// 離線，直接在新紀錄上累加會在下次存檔時蓋掉既有款項。
func (s *ExchangeSystem) ensurePayoutLoaded(playerID string) {
	if s.deps.PayoutRepo == nil || s.deps.Payouts.Known(playerID) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	owed, err := s.deps.PayoutRepo.Load(ctx, s.deps.Config.Server.WorldID, playerID)
	if err != nil {
		s.deps.Log.Error("載入託管紀錄失敗", zap.String("player_id", playerID), zap.Error(err))
		return
	}
	s.deps.Payouts.LoadRecord(playerID, owed)
}

func (s *ExchangeSystem) notifyExpired(o *bestiary.Offer) {
	s.tellBoth(o,
		fmt.Sprintf("給 %s 的報價 #%d 已過期。", o.ReceiverName, o.ID),
		fmt.Sprintf("%s 的報價 #%d 已過期。", o.SenderName, o.ID))
}

func (s *ExchangeSystem) failOffer(o *bestiary.Offer, reason string) {
	s.tellBoth(o,
		fmt.Sprintf("報價 #%d 交易失敗。", o.ID),
		fmt.Sprintf("報價 #%d 交易失敗。", o.ID))
	s.emitResolved(o, "failed")
	s.deps.Log.Warn("報價交易失敗",
		zap.Int64("offer_id", o.ID),
		zap.String("reason", reason),
	)
}

// tellBoth 分別通知報價雙方（任一方離線則跳過該方）。
func (s *ExchangeSystem) tellBoth(o *bestiary.Offer, senderMsg, receiverMsg string) {
	if p := s.deps.World.GetByID(o.SenderID); p != nil {
		p.Tell(senderMsg)
	}
	if p := s.deps.World.GetByID(o.ReceiverID); p != nil {
		p.Tell(receiverMsg)
	}
}

func (s *ExchangeSystem) emitResolved(o *bestiary.Offer, outcome string) {
	event.Emit(s.deps.Bus, event.OfferResolved{
		OfferID:    o.ID,
		SenderID:   o.SenderID,
		ReceiverID: o.ReceiverID,
		Kind:       o.Kind,
		Outcome:    outcome,
	})
}
