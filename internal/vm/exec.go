package vm

// step fetches, decodes, validates and dispatches exactly one
// instruction (spec §4.6), then advances PC and re-zeros register 0.
func (v *VM) step() (Decoded, error) {
	word := fetchWord(v.instMem, v.pc)
	d := decodeInstruction(word)

	if d.Op == OpUnknown {
		return d, errUnknownInstruction
	}
	if d.Rd >= NumRegs || d.Rs1 >= NumRegs || d.Rs2 >= NumRegs {
		return d, errIllegalOperation
	}

	switch {
	case d.Op.isMemoryOp():
		addr := uint32(v.regs.get(d.Rs1) + d.Imm)
		if err := v.route(&d, addr); err != nil {
			return d, err
		}
		if err := v.execMemory(d, addr); err != nil {
			return d, err
		}
	case d.Op.isControlOp():
		target := int64(v.pc) + int64(d.Imm)
		if target < 0 || target > InstMemSize || target%4 != 0 {
			return d, errIllegalOperation
		}
		v.execControl(d)
	default:
		v.execALU(d)
	}

	v.pc += 4
	v.regs.zeroWriteback()
	return d, nil
}

func (v *VM) execALU(d Decoded) {
	switch d.Op {
	case OpAdd:
		execAdd(&v.regs, d)
	case OpAddi:
		execAddi(&v.regs, d)
	case OpSub:
		execSub(&v.regs, d)
	case OpLui:
		execLui(&v.regs, d)
	case OpXor:
		execXor(&v.regs, d)
	case OpXori:
		execXori(&v.regs, d)
	case OpOr:
		execOr(&v.regs, d)
	case OpOri:
		execOri(&v.regs, d)
	case OpAnd:
		execAnd(&v.regs, d)
	case OpAndi:
		execAndi(&v.regs, d)
	case OpSll:
		execSll(&v.regs, d)
	case OpSrl:
		execSrl(&v.regs, d)
	case OpSra:
		execSra(&v.regs, d)
	case OpSlt:
		execSlt(&v.regs, d)
	case OpSlti:
		execSlti(&v.regs, d)
	case OpSltu:
		execSltu(&v.regs, d)
	case OpSltiu:
		execSltiu(&v.regs, d)
	}
}

func (v *VM) execControl(d Decoded) {
	switch d.Op {
	case OpBeq:
		execBeq(&v.regs, &v.pc, d)
	case OpBne:
		execBne(&v.regs, &v.pc, d)
	case OpBlt:
		execBlt(&v.regs, &v.pc, d)
	case OpBltu:
		execBltu(&v.regs, &v.pc, d)
	case OpBge:
		execBge(&v.regs, &v.pc, d)
	case OpBgeu:
		execBgeu(&v.regs, &v.pc, d)
	case OpJal:
		execJal(&v.regs, &v.pc, d)
	case OpJalr:
		execJalr(&v.regs, &v.pc, d)
	}
}

// execMemory dispatches a (possibly reclassified) memory op to the
// concrete region it now targets. addr is the original effective
// address computed before routing; region-relative indices are
// derived here from it.
func (v *VM) execMemory(d Decoded, addr uint32) error {
	switch d.Op {
	case OpHandled:
		return nil

	case OpLb:
		v.regs.set(d.Rd, loadByte(v.dataMem, addr-DataMemBase))
	case OpLh:
		v.regs.set(d.Rd, loadHalf(v.dataMem, addr-DataMemBase))
	case OpLw:
		v.regs.set(d.Rd, loadWord(v.dataMem, addr-DataMemBase))
	case OpLbu:
		v.regs.set(d.Rd, loadByteU(v.dataMem, addr-DataMemBase))
	case OpLhu:
		v.regs.set(d.Rd, loadHalfU(v.dataMem, addr-DataMemBase))
	case OpSb:
		storeByte(v.dataMem, addr-DataMemBase, v.regs.get(d.Rs2))
	case OpSh:
		storeHalf(v.dataMem, addr-DataMemBase, v.regs.get(d.Rs2))
	case OpSw:
		storeWord(v.dataMem, addr-DataMemBase, v.regs.get(d.Rs2))

	case OpLbInst:
		v.regs.set(d.Rd, loadByte(v.instMem, addr-InstMemBase))
	case OpLhInst:
		v.regs.set(d.Rd, loadHalf(v.instMem, addr-InstMemBase))
	case OpLwInst:
		v.regs.set(d.Rd, loadWord(v.instMem, addr-InstMemBase))
	case OpLbuInst:
		v.regs.set(d.Rd, loadByteU(v.instMem, addr-InstMemBase))
	case OpLhuInst:
		v.regs.set(d.Rd, loadHalfU(v.instMem, addr-InstMemBase))

	case OpLbVirt:
		v.regs.set(d.Rd, loadByte(v.virtMem, addr-VirtMemBase))
	case OpLhVirt:
		v.regs.set(d.Rd, loadHalf(v.virtMem, addr-VirtMemBase))
	case OpLwVirt:
		v.regs.set(d.Rd, loadWord(v.virtMem, addr-VirtMemBase))
	case OpLbuVirt:
		v.regs.set(d.Rd, loadByteU(v.virtMem, addr-VirtMemBase))
	case OpLhuVirt:
		v.regs.set(d.Rd, loadHalfU(v.virtMem, addr-VirtMemBase))

	case OpLbHeap:
		return v.execHeapLoad(d, addr, 1, true)
	case OpLhHeap:
		return v.execHeapLoad(d, addr, 2, true)
	case OpLwHeap:
		return v.execHeapLoad(d, addr, varchBytes, true)
	case OpLbuHeap:
		return v.execHeapLoad(d, addr, 1, false)
	case OpLhuHeap:
		return v.execHeapLoad(d, addr, 2, false)
	case OpSbHeap:
		return v.execHeapStore(d, addr, 1)
	case OpShHeap:
		return v.execHeapStore(d, addr, 2)
	case OpSwHeap:
		return v.execHeapStore(d, addr, varchBytes)
	}
	return nil
}

func (v *VM) execHeapLoad(d Decoded, addr uint32, width uint32, signed bool) error {
	var value int32
	var ok bool
	if signed {
		value, ok = v.heap.loadMultiSigned(addr, width)
	} else {
		value, ok = v.heap.loadMulti(addr, width)
	}
	if !ok {
		return errIllegalOperation
	}
	v.regs.set(d.Rd, value)
	return nil
}

func (v *VM) execHeapStore(d Decoded, addr uint32, width uint32) error {
	if !v.heap.storeMulti(addr, width, v.regs.get(d.Rs2)) {
		return errIllegalOperation
	}
	return nil
}
