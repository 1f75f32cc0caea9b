// Package insts provides E20 instruction definitions and decoding.
//
// This package implements decoding of 16-bit E20 machine words into
// structured instruction representations. It supports:
//   - Three-register ALU operations: ADD, SUB, OR, AND, SLT
//   - Register jumps: JR
//   - Two-register immediate operations: ADDI, SLTI, LW, SW, JEQ
//   - Absolute jumps: J, JAL
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x2085) // ADDI $1, $0, 5
//	fmt.Printf("Op: %v, RegB: %d, Imm: %d\n", inst.Op, inst.RegB, inst.Imm)
package insts
