package vm

import "fmt"

// Virtual-routine addresses (spec §4.5). Writes (stores) use rs2 as a
// payload and perform an output or management side effect; reads
// (loads) perform an input or dump side effect and then reclassify so
// the normal load path returns whatever landed in the scratch buffer.
const (
	vrPutChar    = 0x0800
	vrPutInt     = 0x0804
	vrPutHex     = 0x0808
	vrHalt       = 0x080C
	vrGetChar    = 0x0812
	vrGetInt     = 0x0816
	vrDumpPC     = 0x0820
	vrDumpRegs   = 0x0824
	vrDumpMemory = 0x0828
	vrHeapAlloc  = 0x0830
	vrHeapFree   = 0x0834
)

// route implements MemoryRouter (spec §4.5): it validates the effective
// address of a load/store, performs any virtual-routine side effect,
// and rewrites d.Op to the concrete variant the Executor should
// dispatch next. A non-nil error always ends the run: errIllegalOperation
// for an illegal access, or errHalted for a halt request.
func (v *VM) route(d *Decoded, addr uint32) error {
	if inVirtMem(addr) {
		return v.routeVirtual(d, addr)
	}
	if !inAddressSpace(addr) {
		return errIllegalOperation
	}
	if inInstMem(addr) {
		if d.Op.isStore() {
			return errIllegalOperation
		}
		d.Op = reclassifyInst(d.Op)
		return nil
	}
	if inHeap(addr) {
		d.Op = reclassifyHeap(d.Op)
		return nil
	}
	if inDataMem(addr) {
		return nil
	}
	return errIllegalOperation
}

func (v *VM) routeVirtual(d *Decoded, addr uint32) error {
	isStore := d.Op.isStore()
	rs2 := v.regs.get(d.Rs2)

	switch {
	case addr == vrPutChar && isStore:
		v.out.WriteByte(byte(rs2))
	case addr == vrPutInt && isStore:
		fmt.Fprintf(v.out, "%d", rs2)
	case addr == vrPutHex && isStore:
		fmt.Fprintf(v.out, "%x", uint32(rs2))
	case addr == vrHalt && isStore:
		v.out.WriteString("CPU Halt Requested\n")
		return errHalted
	case addr == vrDumpMemory && isStore:
		idx := uint32(rs2)
		if idx > DataMemSize-varchBytes {
			return errIllegalOperation
		}
		word := loadWord(v.dataMem, idx)
		fmt.Fprintf(v.out, "%08x\n", uint32(word))
		storeWord(v.virtMem, vrDumpMemory-VirtMemBase, word)
	case addr == vrHeapAlloc && isStore:
		if a, ok := v.heap.allocate(uint32(rs2)); ok {
			v.regs.set(28, int32(a))
		} else {
			v.regs.set(28, 0)
		}
	case addr == vrHeapFree && isStore:
		if err := v.heap.free(uint32(rs2)); err != nil {
			return errIllegalOperation
		}
	case addr == vrGetChar && !isStore:
		ch, _ := v.in.ReadByte()
		storeByte(v.virtMem, vrGetChar-VirtMemBase, int32(ch))
		d.Op = reclassifyVirt(d.Op)
	case addr == vrGetInt && !isStore:
		var n int32
		fmt.Fscan(v.in, &n)
		storeWord(v.virtMem, vrGetInt-VirtMemBase, n)
		d.Op = reclassifyVirt(d.Op)
	case addr == vrDumpPC && !isStore:
		fmt.Fprintf(v.out, "%08x\n", v.pc)
		d.Op = reclassifyVirt(d.Op)
	case addr == vrDumpRegs && !isStore:
		v.writeRegisterDump()
		d.Op = reclassifyVirt(d.Op)
	case addr == vrDumpMemory && !isStore:
		d.Op = reclassifyVirt(d.Op)
	default:
		return errIllegalOperation
	}
	if d.Op != OpLbVirt && d.Op != OpLhVirt && d.Op != OpLwVirt && d.Op != OpLbuVirt && d.Op != OpLhuVirt {
		d.Op = OpHandled
	}
	return nil
}

func reclassifyInst(op Op) Op {
	switch op {
	case OpLb:
		return OpLbInst
	case OpLh:
		return OpLhInst
	case OpLw:
		return OpLwInst
	case OpLbu:
		return OpLbuInst
	case OpLhu:
		return OpLhuInst
	default:
		return op
	}
}

func reclassifyVirt(op Op) Op {
	switch op {
	case OpLb:
		return OpLbVirt
	case OpLh:
		return OpLhVirt
	case OpLw:
		return OpLwVirt
	case OpLbu:
		return OpLbuVirt
	case OpLhu:
		return OpLhuVirt
	default:
		return op
	}
}

func reclassifyHeap(op Op) Op {
	switch op {
	case OpLb:
		return OpLbHeap
	case OpLh:
		return OpLhHeap
	case OpLw:
		return OpLwHeap
	case OpLbu:
		return OpLbuHeap
	case OpLhu:
		return OpLhuHeap
	case OpSb:
		return OpSbHeap
	case OpSh:
		return OpShHeap
	case OpSw:
		return OpSwHeap
	default:
		return op
	}
}
