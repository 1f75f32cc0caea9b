package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/e20sim/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		regFile.PC = 100
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("J", func() {
		It("should jump to the target", func() {
			halt := branchUnit.J(200)

			Expect(halt).To(BeFalse())
			Expect(regFile.PC).To(Equal(uint16(200)))
		})

		It("should report a halt on a jump to itself", func() {
			halt := branchUnit.J(100)

			Expect(halt).To(BeTrue())
			Expect(regFile.PC).To(Equal(uint16(100)))
		})
	})

	Describe("JAL", func() {
		It("should save the return address to $7", func() {
			regFile.WriteReg(7, 0xDEAD)

			branchUnit.JAL(20)

			Expect(regFile.PC).To(Equal(uint16(20)))
			Expect(regFile.ReadReg(7)).To(Equal(uint16(101)))
		})
	})

	Describe("JR", func() {
		It("should jump to the register value without masking", func() {
			regFile.WriteReg(3, 0x9000)

			branchUnit.JR(3)

			Expect(regFile.PC).To(Equal(uint16(0x9000)))
		})
	})

	Describe("JEQ", func() {
		It("should branch relative to pc+1 when equal", func() {
			regFile.WriteReg(1, 4)
			regFile.WriteReg(2, 4)

			branchUnit.JEQ(1, 2, 5)

			Expect(regFile.PC).To(Equal(uint16(106)))
		})

		It("should branch backward with a negative immediate", func() {
			branchUnit.JEQ(0, 0, 0xFFFD) // -3

			Expect(regFile.PC).To(Equal(uint16(98)))
		})

		It("should fall through when not equal", func() {
			regFile.WriteReg(1, 4)

			branchUnit.JEQ(1, 2, 5)

			Expect(regFile.PC).To(Equal(uint16(101)))
		})
	})
})
