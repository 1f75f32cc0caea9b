package benchmarks

import (
	"github.com/sarchlab/e20sim/emu"
	"github.com/sarchlab/e20sim/insts"
)

// GetMicrobenchmarks returns the standard set of E20 microbenchmarks.
// Each benchmark targets a specific memory access pattern.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		sumLoop(),
		arrayFill(),
		arraySum(),
		functionCalls(),
		stridedAccess(),
		memoryCopy(),
		maxSearch(),
	}
}

// 1. Sum Loop - Arithmetic and branches only, no data accesses
func sumLoop() Benchmark {
	return Benchmark{
		Name:        "sum_loop",
		Description: "Sums 10..1 into $1 - no data memory traffic",
		Program: []uint16{
			insts.EncodeADDI(2, 0, 10), // 0: $2 = 10
			insts.EncodeJEQ(2, 0, 3),   // 1: done -> 5
			insts.EncodeADD(1, 1, 2),   // 2
			insts.EncodeADDI(2, 2, -1), // 3
			insts.EncodeJ(1),           // 4
			insts.EncodeJ(5),           // 5: halt
		},
		ExpectedRegs: map[uint8]uint16{1: 55, 2: 0},
	}
}

// 2. Array Fill - Sequential stores
func arrayFill() Benchmark {
	mem := make(map[uint16]uint16)
	for i := uint16(0); i < 16; i++ {
		mem[48+i] = i
	}

	return Benchmark{
		Name:        "array_fill",
		Description: "Stores 0..15 to mem[48..63] - sequential SW",
		Program: []uint16{
			insts.EncodeADDI(3, 0, 16), // 0: limit
			insts.EncodeADDI(4, 0, 48), // 1: pointer
			insts.EncodeJEQ(2, 3, 4),   // 2: done -> 7
			insts.EncodeSW(2, 4, 0),    // 3
			insts.EncodeADDI(2, 2, 1),  // 4
			insts.EncodeADDI(4, 4, 1),  // 5
			insts.EncodeJ(2),           // 6
			insts.EncodeJ(7),           // 7: halt
		},
		ExpectedRegs: map[uint8]uint16{2: 16, 4: 64},
		ExpectedMem:  mem,
	}
}

// 3. Array Sum - Sequential loads, spatial locality
func arraySum() Benchmark {
	return Benchmark{
		Name:        "array_sum",
		Description: "Sums mem[48..63] = 1..16 - sequential LW",
		Setup: func(memory *emu.Memory) {
			for i := uint16(0); i < 16; i++ {
				memory.Write(48+i, i+1)
			}
		},
		Program: []uint16{
			insts.EncodeADDI(3, 0, 16), // 0: count
			insts.EncodeADDI(4, 0, 48), // 1: pointer
			insts.EncodeJEQ(3, 0, 5),   // 2: done -> 8
			insts.EncodeLW(5, 4, 0),    // 3
			insts.EncodeADD(1, 1, 5),   // 4
			insts.EncodeADDI(4, 4, 1),  // 5
			insts.EncodeADDI(3, 3, -1), // 6
			insts.EncodeJ(2),           // 7
			insts.EncodeJ(8),           // 8: halt
		},
		ExpectedRegs: map[uint8]uint16{1: 136, 3: 0, 4: 64},
	}
}

// 4. Function Calls - JAL/JR linkage through $7
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "Calls a subroutine 4 times - JAL/JR overhead",
		Program: []uint16{
			insts.EncodeADDI(2, 0, 4),  // 0: count
			insts.EncodeJEQ(2, 0, 3),   // 1: done -> 5
			insts.EncodeJAL(6),         // 2
			insts.EncodeADDI(2, 2, -1), // 3
			insts.EncodeJ(1),           // 4
			insts.EncodeJ(5),           // 5: halt
			insts.EncodeADDI(1, 1, 2),  // 6: subroutine
			insts.EncodeJR(7),          // 7
		},
		ExpectedRegs: map[uint8]uint16{1: 8, 2: 0, 7: 3},
	}
}

// 5. Strided Access - Every access maps to the same row of a small
// direct-mapped cache; only the most recent store survives in it
func stridedAccess() Benchmark {
	mem := make(map[uint16]uint16)
	for k := uint16(0); k < 8; k++ {
		mem[32+8*k] = 8 - k
	}

	return Benchmark{
		Name:        "strided_access",
		Description: "Stores then loads 8 words 8 apart - one-row thrashing",
		Program: []uint16{
			insts.EncodeADDI(3, 0, 8),  // 0: count
			insts.EncodeADDI(4, 0, 32), // 1: pointer
			insts.EncodeJEQ(3, 0, 4),   // 2: stores done -> 7
			insts.EncodeSW(3, 4, 0),    // 3
			insts.EncodeADDI(4, 4, 8),  // 4
			insts.EncodeADDI(3, 3, -1), // 5
			insts.EncodeJ(2),           // 6
			insts.EncodeADDI(3, 0, 8),  // 7: count
			insts.EncodeJEQ(3, 0, 5),   // 8: loads done -> 14
			insts.EncodeADDI(4, 4, -8), // 9
			insts.EncodeLW(5, 4, 0),    // 10
			insts.EncodeADD(6, 6, 5),   // 11
			insts.EncodeADDI(3, 3, -1), // 12
			insts.EncodeJ(8),           // 13
			insts.EncodeJ(14),          // 14: halt
		},
		ExpectedRegs: map[uint8]uint16{3: 0, 4: 32, 6: 36},
		ExpectedMem:  mem,
	}
}

// 6. Memory Copy - Interleaved load and store streams
func memoryCopy() Benchmark {
	mem := make(map[uint16]uint16)
	for i := uint16(0); i < 8; i++ {
		mem[80+i] = 10 + i
	}

	return Benchmark{
		Name:        "memory_copy",
		Description: "Copies mem[48..55] to mem[80..87] - LW/SW streams",
		Setup: func(memory *emu.Memory) {
			for i := uint16(0); i < 8; i++ {
				memory.Write(48+i, 10+i)
			}
		},
		Program: []uint16{
			insts.EncodeADDI(3, 0, 8),  // 0: count
			insts.EncodeADDI(4, 0, 48), // 1: source
			insts.EncodeADDI(5, 4, 32), // 2: destination
			insts.EncodeJEQ(3, 0, 6),   // 3: done -> 10
			insts.EncodeLW(1, 4, 0),    // 4
			insts.EncodeSW(1, 5, 0),    // 5
			insts.EncodeADDI(4, 4, 1),  // 6
			insts.EncodeADDI(5, 5, 1),  // 7
			insts.EncodeADDI(3, 3, -1), // 8
			insts.EncodeJ(3),           // 9
			insts.EncodeJ(10),          // 10: halt
		},
		ExpectedRegs: map[uint8]uint16{1: 17, 3: 0, 4: 56, 5: 88},
		ExpectedMem:  mem,
	}
}

// 7. Max Search - Data-dependent branches over an array
func maxSearch() Benchmark {
	values := []uint16{3, 9, 2, 14, 7, 14, 1, 5}

	return Benchmark{
		Name:        "max_search",
		Description: "Finds the maximum of mem[48..55] - SLT and JEQ",
		Setup: func(memory *emu.Memory) {
			for i, v := range values {
				memory.Write(48+uint16(i), v)
			}
		},
		Program: []uint16{
			insts.EncodeADDI(3, 0, 8),  // 0: count
			insts.EncodeADDI(4, 0, 48), // 1: pointer
			insts.EncodeJEQ(3, 0, 7),   // 2: done -> 10
			insts.EncodeLW(5, 4, 0),    // 3
			insts.EncodeSLT(6, 1, 5),   // 4: $6 = $1 < $5
			insts.EncodeJEQ(6, 0, 1),   // 5: not greater -> 7
			insts.EncodeADD(1, 5, 0),   // 6
			insts.EncodeADDI(4, 4, 1),  // 7
			insts.EncodeADDI(3, 3, -1), // 8
			insts.EncodeJ(2),           // 9
			insts.EncodeJ(10),          // 10: halt
		},
		ExpectedRegs: map[uint8]uint16{1: 14, 3: 0},
	}
}
