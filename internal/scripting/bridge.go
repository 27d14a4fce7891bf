package scripting

import (
	"strconv"

	"github.com/mobdex/server/internal/core/event"
)

// RegisterBridge 把事件總線上的圖鑑事件轉發給腳本引擎。
// 每種事件只對應一個固定的 event_id 與扁平字串 payload,
// 腳本端只需實作 on_mobdex_event 一個進入點。
func RegisterBridge(bus *event.Bus, e *Engine) {
	event.Subscribe(bus, func(ev event.MobDiscovered) {
		e.Dispatch("mob_discovered", map[string]string{
			"world_id":  ev.WorldID,
			"player_id": ev.PlayerID,
			"kind":      ev.Kind,
			"source":    ev.Source,
		})
	})
	event.Subscribe(bus, func(ev event.CompendiumCompleted) {
		e.Dispatch("compendium_completed", map[string]string{
			"world_id":  ev.WorldID,
			"player_id": ev.PlayerID,
			"total":     strconv.Itoa(ev.Total),
		})
	})
	event.Subscribe(bus, func(ev event.OfferCreated) {
		e.Dispatch("offer_created", map[string]string{
			"offer_id":    strconv.FormatInt(ev.OfferID, 10),
			"sender_id":   ev.SenderID,
			"receiver_id": ev.ReceiverID,
			"kind":        ev.Kind,
			"price":       strconv.Itoa(ev.Price),
		})
	})
	event.Subscribe(bus, func(ev event.OfferResolved) {
		e.Dispatch("offer_resolved", map[string]string{
			"offer_id":    strconv.FormatInt(ev.OfferID, 10),
			"sender_id":   ev.SenderID,
			"receiver_id": ev.ReceiverID,
			"kind":        ev.Kind,
			"outcome":     ev.Outcome,
		})
	})
	event.Subscribe(bus, func(ev event.PayoutClaimed) {
		e.Dispatch("payout_claimed", map[string]string{
			"player_id": ev.PlayerID,
			"total":     strconv.Itoa(ev.Total),
		})
	})
}
