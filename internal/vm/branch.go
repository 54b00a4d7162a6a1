package vm

// Branch and jump operations (spec §4.2). Each receives the current PC
// by pointer; on a taken branch they set *pc = *pc + imm - 4, the -4
// compensating for the unconditional +4 the Executor performs after
// dispatch.

func execBeq(r *registerFile, pc *uint32, d Decoded) {
	if r.get(d.Rs1) == r.get(d.Rs2) {
		branchTo(pc, d.Imm)
	}
}

func execBne(r *registerFile, pc *uint32, d Decoded) {
	if r.get(d.Rs1) != r.get(d.Rs2) {
		branchTo(pc, d.Imm)
	}
}

func execBlt(r *registerFile, pc *uint32, d Decoded) {
	if r.get(d.Rs1) < r.get(d.Rs2) {
		branchTo(pc, d.Imm)
	}
}

func execBltu(r *registerFile, pc *uint32, d Decoded) {
	if uint32(r.get(d.Rs1)) < uint32(r.get(d.Rs2)) {
		branchTo(pc, d.Imm)
	}
}

func execBge(r *registerFile, pc *uint32, d Decoded) {
	if r.get(d.Rs1) >= r.get(d.Rs2) {
		branchTo(pc, d.Imm)
	}
}

func execBgeu(r *registerFile, pc *uint32, d Decoded) {
	if uint32(r.get(d.Rs1)) >= uint32(r.get(d.Rs2)) {
		branchTo(pc, d.Imm)
	}
}

func execJal(r *registerFile, pc *uint32, d Decoded) {
	r.set(d.Rd, int32(*pc+4))
	branchTo(pc, d.Imm)
}

// execJalr sets PC from rs1 before writing rd, so that rd == rs1 still
// observes the pre-jump value of rs1 (order matters, spec §4.2).
func execJalr(r *registerFile, pc *uint32, d Decoded) {
	next := *pc + 4
	*pc = uint32(r.get(d.Rs1)+d.Imm) - 4
	r.set(d.Rd, int32(next))
}

func branchTo(pc *uint32, imm int32) {
	*pc = uint32(int64(*pc) + int64(imm) - 4)
}
