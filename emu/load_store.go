// Package emu provides functional E20 emulation.
package emu

// LoadStoreUnit implements E20 load and store operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// Address computes the effective address ($base + imm) mod MemSize.
func (lsu *LoadStoreUnit) Address(base uint8, imm uint16) uint16 {
	return Wrap(lsu.regFile.ReadReg(base) + imm)
}

// LW performs $dst = mem[addr]
func (lsu *LoadStoreUnit) LW(dst uint8, addr uint16) {
	lsu.regFile.WriteReg(dst, lsu.memory.Read(addr))
}

// SW performs mem[addr] = $src
func (lsu *LoadStoreUnit) SW(src uint8, addr uint16) {
	lsu.memory.Write(addr, lsu.regFile.ReadReg(src))
}
