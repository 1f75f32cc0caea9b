// Package loader provides loading of E20 machine-code text files.
//
// Each line of a machine-code file sets one memory word:
//
//	ram[0] = 16'b0010000010000101;  // addi $1, $0, 5
//
// Addresses must start at 0 and increase by one per line.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/sarchlab/e20sim/emu"
)

var (
	// ErrParse is returned for a line that is not a ram assignment.
	ErrParse = errors.New("can't parse line")

	// ErrOutOfSequence is returned when addresses are not contiguous from 0.
	ErrOutOfSequence = errors.New("memory addresses encountered out of sequence")

	// ErrTooBig is returned when the program does not fit in memory.
	ErrTooBig = errors.New("program too big for memory")
)

var lineRE = regexp.MustCompile(`^ram\[(\d+)\] = 16'b(\d+);.*$`)

// Program represents a loaded machine-code image ready for execution.
type Program struct {
	// Words holds the image; Words[i] is loaded at address i.
	Words []uint16
}

// Len returns the number of words in the image.
func (p *Program) Len() int {
	return len(p.Words)
}

// Memory returns a fresh memory holding the image at address 0.
func (p *Program) Memory() *emu.Memory {
	memory := emu.NewMemory()
	memory.LoadProgram(p.Words)
	return memory
}

// Load reads a machine-code file.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads machine-code text from r.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, line)
		}

		addr, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, line, err)
		}

		word, err := strconv.ParseUint(m[2], 2, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, line, err)
		}

		if addr != uint64(len(prog.Words)) {
			return nil, fmt.Errorf("%w: %d", ErrOutOfSequence, addr)
		}

		if addr >= emu.MemSize {
			return nil, ErrTooBig
		}

		prog.Words = append(prog.Words, uint16(word))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read machine code: %w", err)
	}

	return prog, nil
}

// Write emits words in machine-code text form, one line per word.
func Write(w io.Writer, words []uint16) error {
	bw := bufio.NewWriter(w)
	for addr, word := range words {
		if _, err := fmt.Fprintf(bw, "ram[%d] = 16'b%016b;\n", addr, word); err != nil {
			return err
		}
	}
	return bw.Flush()
}
