// Package emu provides functional E20 emulation.
package emu

// ALU implements E20 arithmetic, logic and comparison operations.
// All arithmetic wraps modulo 2^16.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs $dst = $a + $b
func (a *ALU) ADD(dst, ra, rb uint8) {
	a.regFile.WriteReg(dst, a.regFile.ReadReg(ra)+a.regFile.ReadReg(rb))
}

// SUB performs $dst = $a - $b
func (a *ALU) SUB(dst, ra, rb uint8) {
	a.regFile.WriteReg(dst, a.regFile.ReadReg(ra)-a.regFile.ReadReg(rb))
}

// OR performs $dst = $a | $b
func (a *ALU) OR(dst, ra, rb uint8) {
	a.regFile.WriteReg(dst, a.regFile.ReadReg(ra)|a.regFile.ReadReg(rb))
}

// AND performs $dst = $a & $b
func (a *ALU) AND(dst, ra, rb uint8) {
	a.regFile.WriteReg(dst, a.regFile.ReadReg(ra)&a.regFile.ReadReg(rb))
}

// SLT performs $dst = ($a < $b), comparing unsigned.
func (a *ALU) SLT(dst, ra, rb uint8) {
	a.regFile.WriteReg(dst, lessThan(a.regFile.ReadReg(ra), a.regFile.ReadReg(rb)))
}

// ADDI performs $dst = $src + imm, imm already sign-extended.
func (a *ALU) ADDI(dst, src uint8, imm uint16) {
	a.regFile.WriteReg(dst, a.regFile.ReadReg(src)+imm)
}

// SLTI performs $dst = ($src < imm), comparing unsigned against the
// sign-extended immediate.
func (a *ALU) SLTI(dst, src uint8, imm uint16) {
	a.regFile.WriteReg(dst, lessThan(a.regFile.ReadReg(src), imm))
}

func lessThan(x, y uint16) uint16 {
	if x < y {
		return 1
	}
	return 0
}
