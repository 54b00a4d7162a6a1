package vm

// Pure register transformations for the arithmetic, logic and
// comparison operations (spec §4.2). Each takes the decoded fields and
// the register file and writes rd; none of them touch memory or PC.

func execAdd(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)+r.get(d.Rs2))
}

func execAddi(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)+d.Imm)
}

func execSub(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)-r.get(d.Rs2))
}

func execLui(r *registerFile, d Decoded) {
	r.set(d.Rd, d.Imm)
}

func execXor(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)^r.get(d.Rs2))
}

func execXori(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)^d.Imm)
}

func execOr(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)|r.get(d.Rs2))
}

func execOri(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)|d.Imm)
}

func execAnd(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)&r.get(d.Rs2))
}

func execAndi(r *registerFile, d Decoded) {
	r.set(d.Rd, r.get(d.Rs1)&d.Imm)
}

func execSll(r *registerFile, d Decoded) {
	shamt := uint32(r.get(d.Rs2)) & 0x1F
	r.set(d.Rd, r.get(d.Rs1)<<shamt)
}

func execSrl(r *registerFile, d Decoded) {
	shamt := uint32(r.get(d.Rs2)) & 0x1F
	r.set(d.Rd, int32(uint32(r.get(d.Rs1))>>shamt))
}

func execSra(r *registerFile, d Decoded) {
	shamt := uint32(r.get(d.Rs2)) & 0x1F
	r.set(d.Rd, r.get(d.Rs1)>>shamt)
}

func execSlt(r *registerFile, d Decoded) {
	r.set(d.Rd, boolToInt32(r.get(d.Rs1) < r.get(d.Rs2)))
}

func execSlti(r *registerFile, d Decoded) {
	r.set(d.Rd, boolToInt32(r.get(d.Rs1) < d.Imm))
}

func execSltu(r *registerFile, d Decoded) {
	r.set(d.Rd, boolToInt32(uint32(r.get(d.Rs1)) < uint32(r.get(d.Rs2))))
}

func execSltiu(r *registerFile, d Decoded) {
	r.set(d.Rd, boolToInt32(uint32(r.get(d.Rs1)) < uint32(d.Imm)))
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
