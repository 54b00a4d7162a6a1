package vm

import "testing"

func TestDecodeAddi(t *testing.T) {
	d := decodeInstruction(asmADDI(5, 0, 42))
	if d.Op != OpAddi || d.Rd != 5 || d.Rs1 != 0 || d.Imm != 42 {
		t.Fatalf("unexpected decode: %+v", d)
	}
}

func TestDecodeAddiNegativeImmSignExtends(t *testing.T) {
	d := decodeInstruction(asmADDI(1, 0, -1))
	if d.Imm != -1 {
		t.Fatalf("expected sign-extended -1, got %d", d.Imm)
	}
}

func TestDecodeStoreImmediateSplitAcrossFields(t *testing.T) {
	d := decodeInstruction(asmSW(0, 5, 0x7FF))
	if d.Op != OpSw || d.Imm != 0x7FF {
		t.Fatalf("unexpected S-type decode: %+v", d)
	}
}

func TestDecodeBranchImmediateIsEven(t *testing.T) {
	d := decodeInstruction(asmBEQ(1, 2, -8))
	if d.Op != OpBeq || d.Imm != -8 {
		t.Fatalf("unexpected B-type decode: %+v", d)
	}
}

func TestDecodeLuiLoadsUpperBitsOnly(t *testing.T) {
	d := decodeInstruction(asmLUI(6, 0xDEADC))
	if d.Op != OpLui || uint32(d.Imm) != 0xDEADC000 {
		t.Fatalf("expected 0xDEADC000, got 0x%x", uint32(d.Imm))
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	d := decodeInstruction(0xFFFFFFFF)
	if d.Op != OpUnknown {
		t.Fatalf("expected OpUnknown for 0xFFFFFFFF, got %v", d.Op)
	}
}
