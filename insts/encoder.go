package insts

// EncodeThreeReg builds an opcode-0 word: opcode | regA | regB | regDst | func.
func EncodeThreeReg(fn uint16, regDst, regA, regB uint8) uint16 {
	return OpcodeThreeReg<<13 |
		uint16(regA&0x7)<<10 |
		uint16(regB&0x7)<<7 |
		uint16(regDst&0x7)<<4 |
		fn&0xF
}

// EncodeTwoReg builds a word of the form opcode | regA | regB | imm7.
// imm is truncated to its low 7 bits, so negative offsets may be passed
// as their 16-bit two's complement.
func EncodeTwoReg(opcode uint16, regA, regB uint8, imm uint16) uint16 {
	return (opcode&0x7)<<13 |
		uint16(regA&0x7)<<10 |
		uint16(regB&0x7)<<7 |
		imm&0x7F
}

// EncodeNoReg builds a word of the form opcode | imm13.
func EncodeNoReg(opcode uint16, target uint16) uint16 {
	return (opcode&0x7)<<13 | target&0x1FFF
}

// EncodeADD encodes add $dst, $a, $b.
func EncodeADD(dst, a, b uint8) uint16 { return EncodeThreeReg(FuncADD, dst, a, b) }

// EncodeSUB encodes sub $dst, $a, $b.
func EncodeSUB(dst, a, b uint8) uint16 { return EncodeThreeReg(FuncSUB, dst, a, b) }

// EncodeOR encodes or $dst, $a, $b.
func EncodeOR(dst, a, b uint8) uint16 { return EncodeThreeReg(FuncOR, dst, a, b) }

// EncodeAND encodes and $dst, $a, $b.
func EncodeAND(dst, a, b uint8) uint16 { return EncodeThreeReg(FuncAND, dst, a, b) }

// EncodeSLT encodes slt $dst, $a, $b.
func EncodeSLT(dst, a, b uint8) uint16 { return EncodeThreeReg(FuncSLT, dst, a, b) }

// EncodeJR encodes jr $a.
func EncodeJR(a uint8) uint16 { return EncodeThreeReg(FuncJR, 0, a, 0) }

// EncodeADDI encodes addi $dst, $src, imm.
func EncodeADDI(dst, src uint8, imm int16) uint16 {
	return EncodeTwoReg(OpcodeADDI, src, dst, uint16(imm))
}

// EncodeSLTI encodes slti $dst, $src, imm.
func EncodeSLTI(dst, src uint8, imm int16) uint16 {
	return EncodeTwoReg(OpcodeSLTI, src, dst, uint16(imm))
}

// EncodeLW encodes lw $dst, imm($addr).
func EncodeLW(dst, addr uint8, imm int16) uint16 {
	return EncodeTwoReg(OpcodeLW, addr, dst, uint16(imm))
}

// EncodeSW encodes sw $src, imm($addr).
func EncodeSW(src, addr uint8, imm int16) uint16 {
	return EncodeTwoReg(OpcodeSW, addr, src, uint16(imm))
}

// EncodeJEQ encodes jeq $a, $b, rel where rel is relative to pc+1.
func EncodeJEQ(a, b uint8, rel int16) uint16 {
	return EncodeTwoReg(OpcodeJEQ, a, b, uint16(rel))
}

// EncodeJ encodes j target.
func EncodeJ(target uint16) uint16 { return EncodeNoReg(OpcodeJ, target) }

// EncodeJAL encodes jal target.
func EncodeJAL(target uint16) uint16 { return EncodeNoReg(OpcodeJAL, target) }
