package ecs

// World is the top-level ECS container: entity pool, component store registry,
// and a deferred destruction queue. Probe entities are queued via
// MarkForDestruction and reclaimed in bulk by the end-of-tick cleanup flush;
// DestroyNow is the immediate path for callers that must not leave the entity
// observable past the current call.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyNow removes the entity and its components immediately.
func (w *World) DestroyNow(id EntityID) {
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components,
// returning the number destroyed. Stale ids (already destroyed, or queued
// twice) are skipped.
func (w *World) FlushDestroyQueue() int {
	destroyed := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		destroyed++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
