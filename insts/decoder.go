package insts

// Op represents an E20 operation.
type Op uint8

// E20 operations.
const (
	OpUnknown Op = iota
	OpADD
	OpSUB
	OpOR
	OpAND
	OpSLT
	OpJR
	OpADDI
	OpJ
	OpJAL
	OpLW
	OpSW
	OpJEQ
	OpSLTI
)

var opNames = [...]string{
	OpUnknown: "unknown",
	OpADD:     "add",
	OpSUB:     "sub",
	OpOR:      "or",
	OpAND:     "and",
	OpSLT:     "slt",
	OpJR:      "jr",
	OpADDI:    "addi",
	OpJ:       "j",
	OpJAL:     "jal",
	OpLW:      "lw",
	OpSW:      "sw",
	OpJEQ:     "jeq",
	OpSLTI:    "slti",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown  Format = iota
	FormatThreeReg        // opcode | regA | regB | regDst | func
	FormatTwoReg          // opcode | regA | regB | imm7
	FormatNoReg           // opcode | imm13
)

// Primary opcodes (bits [15:13]).
const (
	OpcodeThreeReg uint16 = 0b000
	OpcodeADDI     uint16 = 0b001
	OpcodeJ        uint16 = 0b010
	OpcodeJAL      uint16 = 0b011
	OpcodeLW       uint16 = 0b100
	OpcodeSW       uint16 = 0b101
	OpcodeJEQ      uint16 = 0b110
	OpcodeSLTI     uint16 = 0b111
)

// Function codes for opcode 0 (bits [3:0]).
const (
	FuncADD uint16 = 0b0000
	FuncSUB uint16 = 0b0001
	FuncOR  uint16 = 0b0010
	FuncAND uint16 = 0b0011
	FuncSLT uint16 = 0b0100
	FuncJR  uint16 = 0b1000
)

// LinkReg is the register JAL writes the return address to.
const LinkReg uint8 = 7

// Instruction represents a decoded E20 instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	Word   uint16 // Raw machine word
	Opcode uint16 // bits [15:13]

	RegA   uint8  // bits [12:10]
	RegB   uint8  // bits [9:7]
	RegDst uint8  // bits [6:4]
	Func   uint16 // bits [3:0]

	// Imm is imm7 (bits [6:0]) sign-extended to 16 bits.
	Imm uint16

	// Target is imm13 (bits [12:0]), an absolute jump address.
	Target uint16
}

// Decoder decodes E20 machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new E20 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit E20 instruction word. Every field is extracted
// regardless of format; Op and Format say which of them are meaningful.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Word:   word,
		Opcode: word >> 13,
		RegA:   uint8((word >> 10) & 0x7),
		RegB:   uint8((word >> 7) & 0x7),
		RegDst: uint8((word >> 4) & 0x7),
		Func:   word & 0xF,
		Imm:    SignExtend7(word & 0x7F),
		Target: word & 0x1FFF,
	}

	switch inst.Opcode {
	case OpcodeThreeReg:
		d.decodeThreeReg(inst)
	case OpcodeADDI:
		d.decodeTwoReg(inst, OpADDI)
	case OpcodeJ:
		d.decodeNoReg(inst, OpJ)
	case OpcodeJAL:
		d.decodeNoReg(inst, OpJAL)
	case OpcodeLW:
		d.decodeTwoReg(inst, OpLW)
	case OpcodeSW:
		d.decodeTwoReg(inst, OpSW)
	case OpcodeJEQ:
		d.decodeTwoReg(inst, OpJEQ)
	case OpcodeSLTI:
		d.decodeTwoReg(inst, OpSLTI)
	}

	return inst
}

// decodeThreeReg selects the operation from the function code.
// Function codes outside the table leave the instruction as OpUnknown.
func (d *Decoder) decodeThreeReg(inst *Instruction) {
	inst.Format = FormatThreeReg

	switch inst.Func {
	case FuncADD:
		inst.Op = OpADD
	case FuncSUB:
		inst.Op = OpSUB
	case FuncOR:
		inst.Op = OpOR
	case FuncAND:
		inst.Op = OpAND
	case FuncSLT:
		inst.Op = OpSLT
	case FuncJR:
		inst.Op = OpJR
	}
}

func (d *Decoder) decodeTwoReg(inst *Instruction, op Op) {
	inst.Format = FormatTwoReg
	inst.Op = op
}

func (d *Decoder) decodeNoReg(inst *Instruction, op Op) {
	inst.Format = FormatNoReg
	inst.Op = op
}

// SignExtend7 widens a 7-bit two's complement value to 16 bits.
func SignExtend7(imm7 uint16) uint16 {
	imm7 &= 0x7F
	if imm7&0x40 != 0 {
		imm7 |= 0xFF80
	}
	return imm7
}
