// Package emu provides functional E20 emulation.
package emu

import "github.com/sarchlab/e20sim/insts"

// BranchUnit implements E20 jump operations. Each method leaves PC at the
// address of the next instruction to fetch.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// J jumps to an absolute target. It reports whether the jump targets
// its own address, which is the E20 halt condition.
func (b *BranchUnit) J(target uint16) (halt bool) {
	halt = b.regFile.PC == target
	b.regFile.PC = target
	return halt
}

// JAL saves PC+1 to $7, then jumps to target.
func (b *BranchUnit) JAL(target uint16) {
	b.regFile.WriteReg(insts.LinkReg, b.regFile.PC+1)
	b.regFile.PC = target
}

// JR jumps to the address held in a register.
func (b *BranchUnit) JR(ra uint8) {
	b.regFile.PC = b.regFile.ReadReg(ra)
}

// JEQ branches to PC+1+imm when $a == $b, otherwise falls through to PC+1.
func (b *BranchUnit) JEQ(ra, rb uint8, imm uint16) {
	next := b.regFile.PC + 1
	if b.regFile.ReadReg(ra) == b.regFile.ReadReg(rb) {
		next += imm
	}
	b.regFile.PC = next
}
