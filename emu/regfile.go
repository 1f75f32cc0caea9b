// Package emu provides functional E20 emulation.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 8

// RegFile represents the E20 register file.
// It contains 8 general-purpose registers ($0-$7) and the program counter.
type RegFile struct {
	// R holds general-purpose registers $0-$7.
	// R[0] is the zero register; the emulator clears it after every step.
	R [NumRegs]uint16

	// PC is the program counter. It is a full 16-bit value; only the
	// fetch is reduced modulo the memory size.
	PC uint16
}

// ReadReg reads a register value. Only the low 3 bits of reg are used.
func (r *RegFile) ReadReg(reg uint8) uint16 {
	return r.R[reg&0x7]
}

// WriteReg writes a value to a register. Writes to $0 are accepted but
// are discarded by ClearZero at the end of the step.
func (r *RegFile) WriteReg(reg uint8, value uint16) {
	r.R[reg&0x7] = value
}

// ClearZero forces $0 back to zero.
func (r *RegFile) ClearZero() {
	r.R[0] = 0
}

// Snapshot returns a copy of the general-purpose registers.
func (r *RegFile) Snapshot() [NumRegs]uint16 {
	return r.R
}
