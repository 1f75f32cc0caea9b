// Package emu provides functional E20 emulation.
package emu

import (
	"errors"

	"github.com/sarchlab/e20sim/insts"
)

// ErrStepLimit is returned when a run exceeds its step budget.
var ErrStepLimit = errors.New("max steps reached")

// MemoryObserver is notified of every data memory access before memory is
// touched. pc is the address the accessing instruction was fetched from.
type MemoryObserver interface {
	ObserveAccess(addr, pc uint16, isStore bool)
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true once the program has executed a jump to itself.
	Halted bool

	// Err is set if the step could not be executed.
	Err error
}

// Emulator executes E20 instructions functionally.
type Emulator struct {
	regFile  *RegFile
	memory   *Memory
	decoder  *insts.Decoder
	observer MemoryObserver

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	// Execution state
	halted           bool
	instructionCount uint64
	maxSteps         uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithObserver attaches an observer for data memory accesses, usually a
// cache hierarchy.
func WithObserver(observer MemoryObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observer = observer
	}
}

// WithMaxSteps sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxSteps(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxSteps = max
	}
}

// NewEmulator creates a new E20 emulator with zeroed registers and memory.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder: insts.NewDecoder(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.attach(&RegFile{}, NewMemory())

	return e
}

func (e *Emulator) attach(regFile *RegFile, memory *Memory) {
	e.regFile = regFile
	e.memory = memory
	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile)
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Halted reports whether the program has reached its halt instruction.
func (e *Emulator) Halted() bool {
	return e.halted
}

// LoadProgram loads a program into memory at address 0.
// The program can be either a []uint16 image or a *Memory, which is used
// directly.
func (e *Emulator) LoadProgram(program interface{}) {
	switch p := program.(type) {
	case []uint16:
		e.memory.LoadProgram(p)
	case *Memory:
		e.attach(e.regFile, p)
	}
	e.regFile.PC = 0
}

// Reset resets the emulator to its initial state. The observer is kept.
func (e *Emulator) Reset() {
	e.attach(&RegFile{}, NewMemory())
	e.halted = false
	e.instructionCount = 0
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.halted {
		return StepResult{Halted: true}
	}

	if e.maxSteps > 0 && e.instructionCount >= e.maxSteps {
		return StepResult{Err: ErrStepLimit}
	}

	// 1. Fetch
	fetchAddr := Wrap(e.regFile.PC)
	word := e.memory.Read(fetchAddr)

	// 2. Decode
	inst := e.decoder.Decode(word)

	// 3. Execute
	e.execute(inst, fetchAddr)
	e.regFile.ClearZero()

	e.instructionCount++

	return StepResult{Halted: e.halted}
}

// Run executes instructions until the program halts. It returns
// ErrStepLimit if the step budget runs out first.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Halted {
			return nil
		}
	}
}

// execute applies a decoded instruction fetched from fetchAddr.
func (e *Emulator) execute(inst *insts.Instruction, fetchAddr uint16) {
	switch inst.Op {
	case insts.OpADD:
		e.alu.ADD(inst.RegDst, inst.RegA, inst.RegB)
	case insts.OpSUB:
		e.alu.SUB(inst.RegDst, inst.RegA, inst.RegB)
	case insts.OpOR:
		e.alu.OR(inst.RegDst, inst.RegA, inst.RegB)
	case insts.OpAND:
		e.alu.AND(inst.RegDst, inst.RegA, inst.RegB)
	case insts.OpSLT:
		e.alu.SLT(inst.RegDst, inst.RegA, inst.RegB)
	case insts.OpADDI:
		e.alu.ADDI(inst.RegB, inst.RegA, inst.Imm)
	case insts.OpSLTI:
		e.alu.SLTI(inst.RegB, inst.RegA, inst.Imm)
	case insts.OpLW:
		addr := e.lsu.Address(inst.RegA, inst.Imm)
		e.observe(addr, fetchAddr, false)
		e.lsu.LW(inst.RegB, addr)
	case insts.OpSW:
		addr := e.lsu.Address(inst.RegA, inst.Imm)
		e.observe(addr, fetchAddr, true)
		e.lsu.SW(inst.RegB, addr)
	case insts.OpJR:
		e.branchUnit.JR(inst.RegA)
		return
	case insts.OpJ:
		e.halted = e.branchUnit.J(inst.Target)
		return
	case insts.OpJAL:
		e.branchUnit.JAL(inst.Target)
		return
	case insts.OpJEQ:
		e.branchUnit.JEQ(inst.RegA, inst.RegB, inst.Imm)
		return
	default:
		// Undefined function codes change nothing, not even the PC.
		return
	}

	e.regFile.PC++
}

func (e *Emulator) observe(addr, pc uint16, isStore bool) {
	if e.observer != nil {
		e.observer.ObserveAccess(addr, pc, isStore)
	}
}
