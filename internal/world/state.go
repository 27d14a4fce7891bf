package world

import "strings"

// PlayerInfo holds in-memory data for a player currently known to the world.
// Accessed only from the game loop goroutine — no locks needed.
type PlayerInfo struct {
	PlayerID  string // stable unique id, assigned by the host engine
	Name      string // display name
	Connected bool
	Admin     bool

	Inv *Inventory // in-memory inventory

	// Outbox collects chat lines queued for this player during the current
	// tick; the presentation layer drains it. Nil-safe via Tell.
	Outbox []string
}

// Tell queues a chat line for the player.
func (p *PlayerInfo) Tell(msg string) {
	p.Outbox = append(p.Outbox, msg)
}

// State is the in-memory world run state: online players, the current tick,
// and items lying on the ground. Single game-loop goroutine only.
type State struct {
	players map[string]*PlayerInfo // by PlayerID
	byName  map[string]*PlayerInfo // by lowercase display name
	tick    int64
	ground  []GroundItem
}

func NewState() *State {
	return &State{
		players: make(map[string]*PlayerInfo, 64),
		byName:  make(map[string]*PlayerInfo, 64),
	}
}

// Tick returns the current world tick.
func (s *State) Tick() int64 { return s.tick }

// Advance increments the world tick by one. Called once per loop iteration.
func (s *State) Advance() int64 {
	s.tick++
	return s.tick
}

// AddPlayer registers a player as connected. Re-adding an existing id
// refreshes the name index.
func (s *State) AddPlayer(p *PlayerInfo) {
	if p.Inv == nil {
		p.Inv = NewInventory()
	}
	p.Connected = true
	if old := s.players[p.PlayerID]; old != nil {
		delete(s.byName, strings.ToLower(old.Name))
	}
	s.players[p.PlayerID] = p
	s.byName[strings.ToLower(p.Name)] = p
}

// RemovePlayer marks a player disconnected and drops them from the indexes.
func (s *State) RemovePlayer(playerID string) {
	p := s.players[playerID]
	if p == nil {
		return
	}
	p.Connected = false
	delete(s.players, playerID)
	delete(s.byName, strings.ToLower(p.Name))
}

// GetByID returns the connected player with the given id, or nil.
func (s *State) GetByID(playerID string) *PlayerInfo {
	return s.players[playerID]
}

// GetByName returns the connected player with the given display name
// (case-insensitive), or nil.
func (s *State) GetByName(name string) *PlayerInfo {
	return s.byName[strings.ToLower(name)]
}

// AllPlayers invokes fn for every connected player.
func (s *State) AllPlayers(fn func(*PlayerInfo)) {
	for _, p := range s.players {
		fn(p)
	}
}

// PlayerCount returns the number of connected players.
func (s *State) PlayerCount() int {
	return len(s.players)
}
