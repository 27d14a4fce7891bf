package world

const (
	MainSlots = 36 // main inventory capacity
	MaxStack  = 64 // per-slot stack limit
)

// ItemStack is one inventory slot's content.
type ItemStack struct {
	Kind  string // namespaced item kind key
	Count int
}

// Inventory holds a player's item slots: a fixed main grid plus one off-hand
// slot. Accessed only from the game loop goroutine.
type Inventory struct {
	Main    []*ItemStack // nil entry = empty slot, len == MainSlots
	OffHand *ItemStack
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		Main: make([]*ItemStack, MainSlots),
	}
}

// Count returns how many units of the kind the player holds across the main
// grid and the off-hand slot.
func (inv *Inventory) Count(kind string) int {
	total := 0
	for _, st := range inv.Main {
		if st != nil && st.Kind == kind {
			total += st.Count
		}
	}
	if inv.OffHand != nil && inv.OffHand.Kind == kind {
		total += inv.OffHand.Count
	}
	return total
}

// Remove takes exactly n units of the kind, draining main slots first and the
// off-hand slot as overflow. Returns false and changes nothing when the
// player holds fewer than n units.
func (inv *Inventory) Remove(kind string, n int) bool {
	if n <= 0 {
		return true
	}
	if inv.Count(kind) < n {
		return false
	}
	remaining := n
	for i, st := range inv.Main {
		if remaining == 0 {
			break
		}
		if st == nil || st.Kind != kind {
			continue
		}
		take := st.Count
		if take > remaining {
			take = remaining
		}
		st.Count -= take
		remaining -= take
		if st.Count == 0 {
			inv.Main[i] = nil
		}
	}
	if remaining > 0 && inv.OffHand != nil && inv.OffHand.Kind == kind {
		take := inv.OffHand.Count
		if take > remaining {
			take = remaining
		}
		inv.OffHand.Count -= take
		remaining -= take
		if inv.OffHand.Count == 0 {
			inv.OffHand = nil
		}
	}
	return remaining == 0
}

// Grant places up to n units of the kind into the main grid, topping up
// existing stacks before opening new slots. Returns how many units were
// placed; the caller drops the remainder on the ground.
func (inv *Inventory) Grant(kind string, n int) int {
	placed := 0
	for _, st := range inv.Main {
		if n == 0 {
			break
		}
		if st == nil || st.Kind != kind || st.Count >= MaxStack {
			continue
		}
		room := MaxStack - st.Count
		if room > n {
			room = n
		}
		st.Count += room
		placed += room
		n -= room
	}
	for i, st := range inv.Main {
		if n == 0 {
			break
		}
		if st != nil {
			continue
		}
		take := n
		if take > MaxStack {
			take = MaxStack
		}
		inv.Main[i] = &ItemStack{Kind: kind, Count: take}
		placed += take
		n -= take
	}
	return placed
}

// FreeSlots returns the number of empty main slots.
func (inv *Inventory) FreeSlots() int {
	free := 0
	for _, st := range inv.Main {
		if st == nil {
			free++
		}
	}
	return free
}
