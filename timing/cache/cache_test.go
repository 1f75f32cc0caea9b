package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/e20sim/timing/cache"
)

var _ = Describe("Level", func() {
	newLevel := func(size, assoc, blockSize int) *cache.Level {
		level, err := cache.NewLevel("L1", cache.Config{
			Size:          size,
			Associativity: assoc,
			BlockSize:     blockSize,
		})
		Expect(err).NotTo(HaveOccurred())
		return level
	}

	It("should reject invalid geometry", func() {
		_, err := cache.NewLevel("L1", cache.Config{Size: 3, Associativity: 2, BlockSize: 1})
		Expect(err).To(MatchError(cache.ErrInvalidConfig))
	})

	Describe("Locate", func() {
		It("should split an address into row and tag", func() {
			// 16 words, 2-way, 2-word blocks -> 4 rows
			level := newLevel(16, 2, 2)

			row, tag := level.Locate(13) // block 6
			Expect(row).To(Equal(2))
			Expect(tag).To(Equal(uint64(1)))

			row, tag = level.Locate(0)
			Expect(row).To(Equal(0))
			Expect(tag).To(Equal(uint64(0)))
		})
	})

	Describe("Direct-mapped", func() {
		var level *cache.Level

		BeforeEach(func() {
			level = newLevel(1, 1, 1)
		})

		It("should miss on a cold access", func() {
			hit, row := level.Access(0, false)
			Expect(hit).To(BeFalse())
			Expect(row).To(Equal(0))
		})

		It("should evict A when B maps to the same row", func() {
			hits := []bool{}
			for _, addr := range []uint16{0, 1, 0} {
				hit, _ := level.Access(addr, false)
				hits = append(hits, hit)
			}

			Expect(hits).To(Equal([]bool{false, false, false}))
			Expect(level.Stats().Evictions).To(Equal(uint64(2)))
		})

		It("should hit on a repeated access", func() {
			level.Access(7, false)
			hit, _ := level.Access(7, false)
			Expect(hit).To(BeTrue())
		})
	})

	Describe("Two-way", func() {
		var level *cache.Level

		BeforeEach(func() {
			level = newLevel(2, 2, 1)
		})

		It("should keep A resident after B is installed", func() {
			hits := []bool{}
			for _, addr := range []uint16{0, 1, 0} {
				hit, _ := level.Access(addr, false)
				hits = append(hits, hit)
			}

			Expect(hits).To(Equal([]bool{false, false, true}))
			Expect(level.Stats().Evictions).To(BeZero())
		})

		It("should evict the least recently used line", func() {
			level.Access(0, false) // [A]
			level.Access(1, false) // [A B]
			level.Access(0, false) // [B A]
			level.Access(2, false) // evicts B -> [A C]

			Expect(level.Contains(0)).To(BeTrue())
			Expect(level.Contains(1)).To(BeFalse())
			Expect(level.Contains(2)).To(BeTrue())
		})

		It("should refresh recency on a store as well", func() {
			level.Access(0, false)
			level.Access(1, false)
			level.Access(0, true) // store hit refreshes A
			level.Access(2, false)

			Expect(level.Contains(0)).To(BeTrue())
			Expect(level.Contains(1)).To(BeFalse())
		})

		It("should install the line on a store miss", func() {
			hit, _ := level.Access(5, true)
			Expect(hit).To(BeFalse())
			Expect(level.Contains(5)).To(BeTrue())
		})
	})

	Describe("Blocks", func() {
		It("should hit on a different word of the same block", func() {
			level := newLevel(8, 1, 4)

			level.Access(4, false)
			hit, row := level.Access(7, false)

			Expect(hit).To(BeTrue())
			Expect(row).To(Equal(1))
		})
	})

	Describe("Statistics", func() {
		It("should count loads, stores, hits and misses", func() {
			level := newLevel(4, 1, 1)

			level.Access(0, false)
			level.Access(0, false)
			level.Access(0, true)
			level.Access(1, true)

			Expect(level.Stats()).To(Equal(cache.Statistics{
				Loads:  2,
				Stores: 2,
				Hits:   2,
				Misses: 2,
			}))
		})
	})

	Describe("Reset", func() {
		It("should empty the level", func() {
			level := newLevel(4, 1, 1)
			level.Access(0, false)

			level.Reset()

			Expect(level.Contains(0)).To(BeFalse())
			Expect(level.Stats()).To(BeZero())
		})
	})
})
