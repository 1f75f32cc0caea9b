// Package emu provides functional E20 emulation.
package emu

// MemSize is the number of 16-bit words in E20 memory (13-bit address space).
const MemSize = 1 << 13

// Memory is the E20 main memory. Every address is reduced modulo MemSize
// before use, so there is no out-of-range access.
type Memory struct {
	words [MemSize]uint16
}

// NewMemory creates a zero-filled memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Wrap reduces an address into the memory's address space.
func Wrap(addr uint16) uint16 {
	return addr % MemSize
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint16) uint16 {
	return m.words[Wrap(addr)]
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value uint16) {
	m.words[Wrap(addr)] = value
}

// LoadProgram copies words into memory starting at address 0.
// Words past the end of memory are ignored.
func (m *Memory) LoadProgram(words []uint16) {
	copy(m.words[:], words)
}

// Dump returns a copy of the first n words of memory.
func (m *Memory) Dump(n int) []uint16 {
	if n > MemSize {
		n = MemSize
	}
	if n < 0 {
		n = 0
	}
	out := make([]uint16, n)
	copy(out, m.words[:n])
	return out
}
