package vm

import "encoding/binary"

// Minimal instruction encoders used only by tests to build raw
// instruction-memory images without needing an assembler.

func putWord(mem []byte, addr uint32, word uint32) {
	binary.LittleEndian.PutUint32(mem[addr:addr+4], word)
}

func encodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeI(opcode, funct3, rd, rs1, imm12 uint32) uint32 {
	return (imm12&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeS(opcode, funct3, rs1, rs2, imm12 uint32) uint32 {
	hi := (imm12 >> 5) & 0x7F
	lo := imm12 & 0x1F
	return hi<<25 | rs2<<20 | rs1<<15 | funct3<<12 | lo<<7 | opcode
}

func encodeB(opcode, funct3, rs1, rs2, imm13 uint32) uint32 {
	b12 := (imm13 >> 12) & 0x1
	b10_5 := (imm13 >> 5) & 0x3F
	b4_1 := (imm13 >> 1) & 0xF
	b11 := (imm13 >> 11) & 0x1
	return b12<<31 | b10_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | b4_1<<8 | b11<<7 | opcode
}

func encodeU(opcode, rd, imm20 uint32) uint32 {
	return (imm20&0xFFFFF)<<12 | rd<<7 | opcode
}

func encodeJ(opcode, rd, imm21 uint32) uint32 {
	b20 := (imm21 >> 20) & 0x1
	b10_1 := (imm21 >> 1) & 0x3FF
	b11 := (imm21 >> 11) & 0x1
	b19_12 := (imm21 >> 12) & 0xFF
	return b20<<31 | b10_1<<21 | b11<<20 | b19_12<<12 | rd<<7 | opcode
}

// Opcode values per spec §4.1.
const (
	opR     = 0b0110011
	opI     = 0b0010011
	opLoad  = 0b0000011
	opStore = 0b0100011
	opBr    = 0b1100011
	opLui   = 0b0110111
	opJal   = 0b1101111
	opJalr  = 0b1100111
)

func asmADDI(rd, rs1 uint32, imm int32) uint32 { return encodeI(opI, 0b000, rd, rs1, uint32(imm)) }
func asmLUI(rd uint32, imm20 uint32) uint32     { return encodeU(opLui, rd, imm20) }
func asmSW(rs1, rs2 uint32, imm int32) uint32   { return encodeS(opStore, 0b010, rs1, rs2, uint32(imm)) }
func asmLW(rd, rs1 uint32, imm int32) uint32    { return encodeI(opLoad, 0b010, rd, rs1, uint32(imm)) }
func asmBEQ(rs1, rs2 uint32, imm int32) uint32  { return encodeB(opBr, 0b000, rs1, rs2, uint32(imm)) }
func asmADD(rd, rs1, rs2 uint32) uint32         { return encodeR(opR, 0b000, 0b0000000, rd, rs1, rs2) }

// virtBaseReg is a scratch register test programs load with 0x0800 so
// that virtual-routine addresses (which all have bit 11 set and so
// cannot live in a sign-extended 12-bit immediate by themselves) can be
// reached as virtBaseReg + small positive offset.
const virtBaseReg = 30

// loadVirtBase emits the two instructions that set virtBaseReg to 0x0800.
func loadVirtBase() []uint32 {
	return []uint32{
		asmADDI(virtBaseReg, 0, 1024),
		asmADD(virtBaseReg, virtBaseReg, virtBaseReg),
	}
}

// asmVirtSW stores rs2 to a virtual-routine address via virtBaseReg.
func asmVirtSW(rs2 uint32, routine int32) uint32 {
	return asmSW(virtBaseReg, rs2, routine-0x0800)
}
