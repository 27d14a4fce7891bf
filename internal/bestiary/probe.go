package bestiary

import (
	"fmt"

	"github.com/mobdex/server/internal/component"
	"github.com/mobdex/server/internal/core/ecs"
	"github.com/mobdex/server/internal/data"
)

// Spawner implements Prober by instantiating a throwaway entity from the
// kind's template and checking that it carries the Creature component.
// Probe entities are queued for destruction when Probe returns and reclaimed
// by FlushDestroyed at end of tick.
type Spawner struct {
	mobs   *data.MobTable
	world  *ecs.World
	stores *component.Stores
}

func NewSpawner(mobs *data.MobTable) *Spawner {
	w := ecs.NewWorld()
	return &Spawner{
		mobs:   mobs,
		world:  w,
		stores: component.NewStores(w.Registry()),
	}
}

// Probe instantiates the kind and verifies it behaves as a creature.
// A nil error means the kind is currently spawnable and trackable.
func (s *Spawner) Probe(kind string) error {
	tmpl := s.mobs.Get(kind)
	if tmpl == nil {
		return fmt.Errorf("kind %s not registered", kind)
	}
	if tmpl.HP <= 0 {
		return fmt.Errorf("kind %s has invalid template hp %d", kind, tmpl.HP)
	}

	id := s.world.CreateEntity()
	defer s.world.MarkForDestruction(id)

	s.stores.Vitals.Set(id, &component.Vitals{HP: tmpl.HP, MaxHP: tmpl.HP})
	s.stores.Behavior.Set(id, &component.Behavior{
		Hostile:  tmpl.Hostile,
		Tameable: tmpl.Tameable,
	})
	if tmpl.Category == data.CategoryCreature {
		s.stores.Creature.Set(id, &component.Creature{Kind: kind})
	}

	if !s.stores.Creature.Has(id) {
		return fmt.Errorf("kind %s is not a creature (category %s)", kind, tmpl.Category)
	}
	return nil
}

// FlushDestroyed reclaims all probe entities queued since the last flush,
// returning the number destroyed.
func (s *Spawner) FlushDestroyed() int {
	return s.world.FlushDestroyQueue()
}
