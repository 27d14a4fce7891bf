package event

// Compendium and exchange event types carried on the Bus.

// MobDiscovered fires when a player records a new creature kind.
type MobDiscovered struct {
	WorldID  string
	PlayerID string
	Kind     string
	Source   string // kill / taming / trade / script / admin
}

// CompendiumCompleted fires exactly once per player, when the last trackable
// kind is recorded.
type CompendiumCompleted struct {
	WorldID  string
	PlayerID string
	Total    int
}

// OfferCreated fires when a trade offer enters a receiver's inbox.
type OfferCreated struct {
	OfferID    int64
	SenderID   string
	ReceiverID string
	Kind       string
	Price      int
}

// OfferResolved fires when an offer leaves its inbox with a terminal outcome.
type OfferResolved struct {
	OfferID    int64
	SenderID   string
	ReceiverID string
	Kind       string
	Outcome    string // accepted / declined / expired / failed
}

// PayoutClaimed fires when a player drains their pending escrow.
type PayoutClaimed struct {
	PlayerID string
	Total    int
}
