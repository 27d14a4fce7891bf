package world

// GroundItem 代表掉落在地面的物品（背包滿時的領取溢出）。
type GroundItem struct {
	Kind      string
	Count     int
	OwnerID   string // 原本應收到物品的玩家
	DroppedAt int64  // 掉落時的 tick
}

// 地面物品存活時間：6000 tick ≈ 5 分鐘。
const groundItemTTL = 6000

// DropItem 將物品放到地面。
func (s *State) DropItem(ownerID, kind string, count int) {
	if count <= 0 {
		return
	}
	s.ground = append(s.ground, GroundItem{
		Kind:      kind,
		Count:     count,
		OwnerID:   ownerID,
		DroppedAt: s.tick,
	})
}

// GroundItems 回傳目前地面物品的唯讀切片。
func (s *State) GroundItems() []GroundItem {
	return s.ground
}

// ExpireGroundItems 移除已超過存活時間的地面物品，回傳移除數量。
func (s *State) ExpireGroundItems() int {
	kept := s.ground[:0]
	removed := 0
	for _, g := range s.ground {
		if s.tick-g.DroppedAt >= groundItemTTL {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	s.ground = kept
	return removed
}
