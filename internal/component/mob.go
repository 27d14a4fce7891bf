package component

import "github.com/mobdex/server/internal/core/ecs"

// Vitals holds hit points for a spawned entity.
type Vitals struct {
	HP    int32
	MaxHP int32
}

// Behavior holds AI disposition flags.
type Behavior struct {
	Hostile  bool
	Tameable bool
}

// Creature marks an entity as a living creature, as opposed to a projectile
// or other registered entity kind. The compendium only tracks creatures.
type Creature struct {
	Kind string // namespaced kind key
}

// Stores bundles the component stores used by mob instantiation.
type Stores struct {
	Vitals   *ecs.Store[Vitals]
	Behavior *ecs.Store[Behavior]
	Creature *ecs.Store[Creature]
}

// NewStores creates the stores and registers them for bulk entity cleanup.
func NewStores(reg *ecs.Registry) *Stores {
	s := &Stores{
		Vitals:   ecs.NewStore[Vitals](),
		Behavior: ecs.NewStore[Behavior](),
		Creature: ecs.NewStore[Creature](),
	}
	reg.Register(s.Vitals)
	reg.Register(s.Behavior)
	reg.Register(s.Creature)
	return s
}
