// Package cache provides set-associative cache modeling on Akita cache
// directories.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MaxLevels is the deepest hierarchy that can be configured.
const MaxLevels = 2

var (
	// ErrInvalidConfig is returned for cache geometry that cannot be built.
	ErrInvalidConfig = errors.New("invalid cache config")

	// ErrInvalidSpec is returned for a malformed cache argument string.
	ErrInvalidSpec = errors.New("invalid cache spec")
)

// Config holds the geometry of one cache level. All sizes are in memory
// words.
type Config struct {
	// Size is the total capacity, excluding metadata.
	Size int `json:"size"`
	// Associativity is the number of lines per row.
	Associativity int `json:"associativity"`
	// BlockSize is the number of words sharing one tag.
	BlockSize int `json:"block_size"`
}

// Rows returns the number of rows (sets) in the level.
func (c Config) Rows() int {
	if c.Associativity <= 0 || c.BlockSize <= 0 {
		return 0
	}
	return c.Size / (c.Associativity * c.BlockSize)
}

// Validate checks that the geometry yields a whole, non-zero number of rows.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be > 0", ErrInvalidConfig)
	}
	if c.Associativity <= 0 {
		return fmt.Errorf("%w: associativity must be > 0", ErrInvalidConfig)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block_size must be > 0", ErrInvalidConfig)
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("%w: size %d is not a multiple of associativity*block_size (%d)",
			ErrInvalidConfig, c.Size, c.Associativity*c.BlockSize)
	}
	return nil
}

// HierarchyConfig lists cache levels from L1 outward. An empty list means
// memory accesses bypass the cache model.
type HierarchyConfig struct {
	Levels []Config `json:"levels"`
}

// Validate checks the level count and every level's geometry.
func (h *HierarchyConfig) Validate() error {
	if len(h.Levels) > MaxLevels {
		return fmt.Errorf("%w: %d levels, at most %d supported",
			ErrInvalidConfig, len(h.Levels), MaxLevels)
	}
	for i, level := range h.Levels {
		if err := level.Validate(); err != nil {
			return fmt.Errorf("%s: %w", LevelName(i), err)
		}
	}
	return nil
}

// ParseSpec parses the command-line form "size,assoc,blocksize" or
// "size,assoc,blocksize,size,assoc,blocksize". The empty string yields an
// empty hierarchy.
func ParseSpec(spec string) (*HierarchyConfig, error) {
	config := &HierarchyConfig{}
	if strings.TrimSpace(spec) == "" {
		return config, nil
	}

	parts := strings.Split(spec, ",")
	if len(parts)%3 != 0 || len(parts)/3 > MaxLevels {
		return nil, fmt.Errorf("%w: expected 3 or 6 values, got %d",
			ErrInvalidSpec, len(parts))
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, part, err)
		}
		values[i] = v
	}

	for i := 0; i < len(values); i += 3 {
		config.Levels = append(config.Levels, Config{
			Size:          values[i],
			Associativity: values[i+1],
			BlockSize:     values[i+2],
		})
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig loads a HierarchyConfig from a JSON file.
func LoadConfig(path string) (*HierarchyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := &HierarchyConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cache config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes a HierarchyConfig to a JSON file.
func (h *HierarchyConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

// LevelName returns the conventional name of the level at index i.
func LevelName(i int) string {
	return "L" + strconv.Itoa(i+1)
}
