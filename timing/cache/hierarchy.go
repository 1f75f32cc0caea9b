// Package cache provides set-associative cache modeling on Akita cache
// directories.
package cache

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/e20sim/emu"
)

// Status classifies one level's view of an access.
type Status uint8

// Access statuses.
const (
	StatusHit Status = iota
	StatusMiss
	StatusStoreWrite
)

// String returns the status as it appears in the access log.
func (s Status) String() string {
	switch s {
	case StatusHit:
		return "HIT"
	case StatusMiss:
		return "MISS"
	case StatusStoreWrite:
		return "SW"
	default:
		return "?"
	}
}

// AccessEvent records how one level handled one access.
type AccessEvent struct {
	Level  string
	Status Status
	PC     uint16 // address of the accessing instruction
	Addr   uint16
	Row    int
}

// HookPosAccess marks hooks invoked once per level per access, with the
// AccessEvent as the item.
var HookPosAccess = &sim.HookPos{Name: "CacheAccess"}

// Hierarchy is an L1 cache optionally backed by an L2. Stores are written
// through every level; a load moves outward only while it keeps missing.
type Hierarchy struct {
	sim.HookableBase

	levels []*Level
}

var _ emu.MemoryObserver = (*Hierarchy)(nil)

// NewHierarchy builds the levels described by config.
func NewHierarchy(config *HierarchyConfig) (*Hierarchy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	h := &Hierarchy{}
	for i, levelConfig := range config.Levels {
		level, err := NewLevel(LevelName(i), levelConfig)
		if err != nil {
			return nil, err
		}
		h.levels = append(h.levels, level)
	}

	return h, nil
}

// Levels returns the cache levels, L1 first.
func (h *Hierarchy) Levels() []*Level {
	return h.levels
}

// Access runs one memory access through the hierarchy and returns the
// events produced, in level order. Each event is also delivered to the
// attached hooks.
func (h *Hierarchy) Access(addr, pc uint16, isStore bool) []AccessEvent {
	events := make([]AccessEvent, 0, len(h.levels))

	for _, level := range h.levels {
		hit, row := level.Access(addr, isStore)

		event := AccessEvent{
			Level:  level.Name(),
			Status: classify(hit, isStore),
			PC:     pc,
			Addr:   addr,
			Row:    row,
		}
		events = append(events, event)

		h.InvokeHook(sim.HookCtx{
			Pos:  HookPosAccess,
			Item: event,
		})

		if hit && !isStore {
			break
		}
	}

	return events
}

// ObserveAccess lets the hierarchy watch an emulator's data accesses.
func (h *Hierarchy) ObserveAccess(addr, pc uint16, isStore bool) {
	h.Access(addr, pc, isStore)
}

// Reset empties every level.
func (h *Hierarchy) Reset() {
	for _, level := range h.levels {
		level.Reset()
	}
}

func classify(hit, isStore bool) Status {
	switch {
	case isStore:
		return StatusStoreWrite
	case hit:
		return StatusHit
	default:
		return StatusMiss
	}
}
