package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain command queues
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: game logic (exchange sweep, grants)
	PhasePersist                 // 3: batch save of dirty records
	PhaseCleanup                 // 4: destroy queued entities
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
