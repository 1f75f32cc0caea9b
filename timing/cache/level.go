// Package cache provides set-associative cache modeling on Akita cache
// directories.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Statistics holds per-level access counts.
type Statistics struct {
	Loads     uint64
	Stores    uint64
	Hits      uint64 // tag found, loads and stores
	Misses    uint64 // tag absent, loads and stores
	Evictions uint64 // a valid line was replaced
}

// Level is one set-associative cache level. Only tag presence is modeled;
// data always comes from memory.
//
// Each row keeps its lines in recency order: a hit moves the line to the
// back, a miss replaces the line at the front. Empty lines sit at the
// front until filled.
type Level struct {
	name   string
	config Config
	rows   int

	// Akita cache directory for tag/LRU management
	directory *akitacache.DirectoryImpl

	stats Statistics
}

// NewLevel creates a cache level. The config must pass Validate.
func NewLevel(name string, config Config) (*Level, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rows := config.Rows()

	return &Level{
		name:   name,
		config: config,
		rows:   rows,
		directory: akitacache.NewDirectory(
			rows,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}, nil
}

// Name returns the level's name, e.g. "L1".
func (l *Level) Name() string {
	return l.name
}

// Config returns the level configuration.
func (l *Level) Config() Config {
	return l.config
}

// Rows returns the number of rows in the level.
func (l *Level) Rows() int {
	return l.rows
}

// Stats returns the level's statistics.
func (l *Level) Stats() Statistics {
	return l.stats
}

// Locate splits an address into its row index and tag.
func (l *Level) Locate(addr uint16) (row int, tag uint64) {
	blockID := uint64(addr) / uint64(l.config.BlockSize)
	return int(blockID % uint64(l.rows)), blockID / uint64(l.rows)
}

// blockAddr is the block-aligned address the directory uses as its tag.
func (l *Level) blockAddr(addr uint16) uint64 {
	bs := uint64(l.config.BlockSize)
	return (uint64(addr) / bs) * bs
}

// Access looks addr up, then refreshes or installs its line. It returns
// whether the tag was present and the row that was consulted.
func (l *Level) Access(addr uint16, isStore bool) (hit bool, row int) {
	if isStore {
		l.stats.Stores++
	} else {
		l.stats.Loads++
	}

	row, _ = l.Locate(addr)
	blockAddr := l.blockAddr(addr)

	block := l.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		l.stats.Hits++
		l.directory.Visit(block)
		return true, row
	}

	l.stats.Misses++

	victim := l.directory.FindVictim(blockAddr)
	if victim.IsValid {
		l.stats.Evictions++
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	l.directory.Visit(victim)

	return false, row
}

// Contains reports whether addr's block is resident, without touching
// recency.
func (l *Level) Contains(addr uint16) bool {
	block := l.directory.Lookup(0, l.blockAddr(addr))
	return block != nil && block.IsValid
}

// Reset empties every row and clears statistics.
func (l *Level) Reset() {
	l.directory.Reset()
	l.stats = Statistics{}
}
