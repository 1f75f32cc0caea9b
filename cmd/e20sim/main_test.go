package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/e20sim/insts"
	"github.com/sarchlab/e20sim/loader"
	"github.com/sarchlab/e20sim/timing/cache"
)

var _ = Describe("e20sim", func() {
	var (
		dir            string
		stdout, stderr *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "e20sim")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	writeProgram := func(words ...uint16) string {
		path := filepath.Join(dir, "prog.bin")
		f, err := os.Create(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.Write(f, words)).To(Succeed())
		Expect(f.Close()).To(Succeed())
		return path
	}

	storeProgram := func() string {
		return writeProgram(
			insts.EncodeADDI(1, 0, 5),
			insts.EncodeSW(1, 0, 0),
			insts.EncodeJ(2),
		)
	}

	Describe("without a cache", func() {
		It("should print the final state", func() {
			path := storeProgram()

			Expect(run([]string{path}, stdout, stderr)).To(Equal(0))

			var want strings.Builder
			want.WriteString("Final state:\n\tpc=    2\n")
			for reg := 0; reg < 8; reg++ {
				value := 0
				if reg == 1 {
					value = 5
				}
				want.WriteString(fmt.Sprintf("\t$%d=%5d\n", reg, value))
			}
			want.WriteString(fmt.Sprintf("0005 %04x %04x 0000 0000 0000 0000 0000 \n",
				insts.EncodeSW(1, 0, 0), insts.EncodeJ(2)))
			for line := 1; line < 16; line++ {
				want.WriteString(strings.Repeat("0000 ", 8) + "\n")
			}

			Expect(stdout.String()).To(Equal(want.String()))
			Expect(stderr.String()).To(BeEmpty())
		})

		It("should dump the requested number of words", func() {
			path := storeProgram()

			Expect(run([]string{"-mem", "4", path}, stdout, stderr)).To(Equal(0))

			Expect(stdout.String()).To(HaveSuffix(fmt.Sprintf("\t$7=    0\n0005 %04x %04x 0000 \n",
				insts.EncodeSW(1, 0, 0), insts.EncodeJ(2))))
		})
	})

	Describe("with a cache", func() {
		loadAfterStore := func() string {
			return writeProgram(
				insts.EncodeADDI(1, 0, 5),
				insts.EncodeSW(1, 0, 0),
				insts.EncodeLW(2, 0, 0),
				insts.EncodeLW(3, 0, 4),
				insts.EncodeJ(4),
			)
		}

		It("should print the configuration and the access log", func() {
			path := loadAfterStore()

			Expect(run([]string{"--cache", "4,1,1", path}, stdout, stderr)).To(Equal(0))

			Expect(stdout.String()).To(Equal(
				"Cache L1 has size 4, associativity 1, blocksize 1, rows 4\n" +
					"L1 SW    pc:    1\taddr:    0\trow:   0\n" +
					"L1 HIT   pc:    2\taddr:    0\trow:   0\n" +
					"L1 MISS  pc:    3\taddr:    4\trow:   0\n"))
		})

		It("should log a single store through a one-word cache", func() {
			path := storeProgram()

			Expect(run([]string{"--cache", "1,1,1", path}, stdout, stderr)).To(Equal(0))

			Expect(stdout.String()).To(Equal(
				"Cache L1 has size 1, associativity 1, blocksize 1, rows 1\n" +
					"L1 SW    pc:    1\taddr:    0\trow:   0\n"))
		})

		It("should accept flags after the filename", func() {
			path := loadAfterStore()

			Expect(run([]string{path, "--cache", "4,1,1"}, stdout, stderr)).To(Equal(0))
			Expect(stdout.String()).To(HavePrefix("Cache L1 has size 4"))
		})

		It("should consult L2 only on stores and L1 misses", func() {
			path := loadAfterStore()

			Expect(run([]string{"--cache", "4,1,1,8,2,1", path}, stdout, stderr)).To(Equal(0))

			Expect(stdout.String()).To(Equal(
				"Cache L1 has size 4, associativity 1, blocksize 1, rows 4\n" +
					"Cache L2 has size 8, associativity 2, blocksize 1, rows 4\n" +
					"L1 SW    pc:    1\taddr:    0\trow:   0\n" +
					"L2 SW    pc:    1\taddr:    0\trow:   0\n" +
					"L1 HIT   pc:    2\taddr:    0\trow:   0\n" +
					"L1 MISS  pc:    3\taddr:    4\trow:   0\n" +
					"L2 MISS  pc:    3\taddr:    4\trow:   0\n"))
		})

		It("should read the hierarchy from a JSON file", func() {
			path := loadAfterStore()
			configPath := filepath.Join(dir, "cache.json")
			config := &cache.HierarchyConfig{Levels: []cache.Config{
				{Size: 4, Associativity: 1, BlockSize: 1},
			}}
			Expect(config.SaveConfig(configPath)).To(Succeed())

			Expect(run([]string{"-cache-config", configPath, path}, stdout, stderr)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("L1 MISS  pc:    3"))
		})

		It("should print the final state when asked", func() {
			path := loadAfterStore()

			Expect(run([]string{"-state", "--cache", "4,1,1", path}, stdout, stderr)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("Final state:\n\tpc=    4\n"))
		})

		It("should print a summary with -v", func() {
			path := loadAfterStore()

			Expect(run([]string{"-v", "--cache", "4,1,1", path}, stdout, stderr)).To(Equal(0))
			Expect(stderr.String()).To(ContainSubstring("Instructions executed: 5\n"))
			Expect(stderr.String()).To(ContainSubstring(
				"L1: loads 2, stores 1, hits 1, misses 2, evictions 1\n"))
		})
	})

	Describe("errors", func() {
		It("should print usage for -h", func() {
			Expect(run([]string{"-h"}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("[--cache CACHE] filename"))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should print usage without a filename", func() {
			Expect(run(nil, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("positional arguments:"))
		})

		It("should reject a second filename", func() {
			path := storeProgram()

			Expect(run([]string{path, path}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("usage"))
		})

		It("should reject an unknown flag", func() {
			path := storeProgram()

			Expect(run([]string{"--bogus", path}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("usage"))
		})

		It("should report a missing file", func() {
			Expect(run([]string{filepath.Join(dir, "missing.bin")}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("can't open file"))
		})

		It("should report a malformed program", func() {
			path := filepath.Join(dir, "bad.bin")
			Expect(os.WriteFile(path, []byte("hello\n"), 0o644)).To(Succeed())

			Expect(run([]string{path}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("can't parse line"))
		})

		It("should report an invalid cache config", func() {
			path := storeProgram()

			Expect(run([]string{"--cache", "4,1", path}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("Invalid cache config"))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should stop at the step budget and still print the state", func() {
			path := writeProgram(insts.EncodeJR(0))

			Expect(run([]string{"-max-steps", "100", path}, stdout, stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("max steps reached"))
			Expect(stdout.String()).To(HavePrefix("Final state:\n\tpc=    0\n"))
		})
	})
})
