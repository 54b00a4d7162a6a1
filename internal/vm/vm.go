package vm

import (
	"bufio"
	"fmt"
	"io"
	"runtime/debug"
)

// RunResult carries the outcome of a full run back to the CLI layer.
type RunResult struct {
	ExitCode int
	Halted   bool
	FinalPC  uint32
}

// VM is the emulator core: instruction memory, data memory, the
// virtual-routine scratch buffer, the register file, PC, and the heap
// bank arena. It owns no I/O beyond the writer/reader handed to it at
// construction (spec §4.6, §5: single-threaded, synchronous, no
// suspension points).
type VM struct {
	instMem []byte
	dataMem []byte
	virtMem []byte

	regs registerFile
	pc   uint32
	heap heap

	out *bufio.Writer
	in  *bufio.Reader
}

// NewVM builds a VM from exactly-1024-byte instruction and data memory
// images (spec §6). It does not copy them defensively; the caller
// hands over ownership.
func NewVM(instMem, dataMem []byte, stdout io.Writer, stdin io.Reader) (*VM, error) {
	if len(instMem) != InstMemSize {
		return nil, fmt.Errorf("instruction memory must be %d bytes, got %d", InstMemSize, len(instMem))
	}
	if len(dataMem) != DataMemSize {
		return nil, fmt.Errorf("data memory must be %d bytes, got %d", DataMemSize, len(dataMem))
	}
	return &VM{
		instMem: instMem,
		dataMem: dataMem,
		virtMem: make([]byte, VirtMemSize),
		out:     bufio.NewWriter(stdout),
		in:      bufio.NewReader(stdin),
	}, nil
}

// Run executes until halt, fall-through past instruction memory, or a
// fatal error, and returns the resulting exit status (spec §6).
func (v *VM) Run() RunResult {
	return v.run(nil)
}

// RunDebug is Run but invokes step after every executed instruction,
// for the harness's convenience single-step mode (SPEC_FULL §4.6.1).
// It has no effect on ISA-visible behavior.
func (v *VM) RunDebug(step func(pc uint32, d Decoded)) RunResult {
	return v.run(step)
}

// run disables the garbage collector for the duration of the fetch
// loop and restores the previous setting on return (grounded on the
// teacher's RunProgram). Heap banks still grow lazily while it runs.
func (v *VM) run(step func(uint32, Decoded)) RunResult {
	prevGC := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(prevGC)

	for {
		if v.pc >= InstMemSize {
			v.out.Flush()
			return RunResult{ExitCode: 0, Halted: false, FinalPC: v.pc}
		}

		d, err := v.step()
		if step != nil {
			step(v.pc, d)
		}
		if err != nil {
			if err == errHalted {
				v.out.Flush()
				return RunResult{ExitCode: 0, Halted: true, FinalPC: v.pc}
			}
			v.dumpFailure(err)
			v.out.Flush()
			return RunResult{ExitCode: 1, Halted: false, FinalPC: v.pc}
		}
	}
}

func (v *VM) dumpFailure(err error) {
	word := fetchWord(v.instMem, v.pc)
	if err == errUnknownInstruction {
		fmt.Fprintf(v.out, "Instruction Not Implemented: 0x%08x\n", word)
	} else {
		fmt.Fprintf(v.out, "Illegal Operation: 0x%08x\n", word)
	}
	fmt.Fprintf(v.out, "PC = 0x%08x;\n", v.pc)
	v.writeRegisterDump()
}

func (v *VM) writeRegisterDump() {
	for i := 0; i < NumRegs; i++ {
		fmt.Fprintf(v.out, "R[%d] = 0x%08x;\n", i, uint32(v.regs.get(uint32(i))))
	}
}
