package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/e20sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("ADD", func() {
		It("should add two registers", func() {
			regFile.WriteReg(1, 100)
			regFile.WriteReg(2, 50)

			alu.ADD(3, 1, 2)

			Expect(regFile.ReadReg(3)).To(Equal(uint16(150)))
		})

		It("should wrap on overflow", func() {
			regFile.WriteReg(1, 0xFFFF)
			regFile.WriteReg(2, 2)

			alu.ADD(3, 1, 2)

			Expect(regFile.ReadReg(3)).To(Equal(uint16(1)))
		})
	})

	Describe("SUB", func() {
		It("should wrap on underflow", func() {
			regFile.WriteReg(1, 1)
			regFile.WriteReg(2, 2)

			alu.SUB(3, 1, 2)

			Expect(regFile.ReadReg(3)).To(Equal(uint16(0xFFFF)))
		})
	})

	Describe("OR and AND", func() {
		BeforeEach(func() {
			regFile.WriteReg(1, 0xF0F0)
			regFile.WriteReg(2, 0x0FF0)
		})

		It("should OR", func() {
			alu.OR(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint16(0xFFF0)))
		})

		It("should AND", func() {
			alu.AND(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint16(0x00F0)))
		})
	})

	Describe("SLT", func() {
		It("should compare unsigned", func() {
			regFile.WriteReg(1, 0xFFFF)
			regFile.WriteReg(2, 0x0001)

			alu.SLT(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint16(0)))

			alu.SLT(3, 2, 1)
			Expect(regFile.ReadReg(3)).To(Equal(uint16(1)))
		})

		It("should be false for equal operands", func() {
			regFile.WriteReg(1, 9)
			regFile.WriteReg(2, 9)

			alu.SLT(3, 1, 2)
			Expect(regFile.ReadReg(3)).To(Equal(uint16(0)))
		})
	})

	Describe("ADDI", func() {
		It("should add a sign-extended negative immediate", func() {
			regFile.WriteReg(1, 10)

			alu.ADDI(2, 1, 0xFFFF)

			Expect(regFile.ReadReg(2)).To(Equal(uint16(9)))
		})
	})

	Describe("SLTI", func() {
		It("should compare against the sign-extended immediate as unsigned", func() {
			regFile.WriteReg(1, 1000)

			// imm7 = -1 widens to 0xFFFF, which every other value is below.
			alu.SLTI(2, 1, 0xFFFF)
			Expect(regFile.ReadReg(2)).To(Equal(uint16(1)))

			alu.SLTI(2, 1, 5)
			Expect(regFile.ReadReg(2)).To(Equal(uint16(0)))
		})
	})
})
