package vm

// Little-endian byte/half/word load and store over a flat byte buffer
// (spec §4.3). idx is already the buffer-relative index: the caller
// (MemoryRouter / Executor) has subtracted the region's base address.
// Misaligned access is legal (spec §5) and produces the same bytewise
// little-endian result as an aligned one.

func loadByte(mem []byte, idx uint32) int32 {
	return int32(int8(mem[idx]))
}

func loadByteU(mem []byte, idx uint32) int32 {
	return int32(mem[idx])
}

func loadHalf(mem []byte, idx uint32) int32 {
	v := uint16(mem[idx]) | uint16(mem[idx+1])<<8
	return int32(int16(v))
}

func loadHalfU(mem []byte, idx uint32) int32 {
	v := uint16(mem[idx]) | uint16(mem[idx+1])<<8
	return int32(v)
}

func loadWord(mem []byte, idx uint32) int32 {
	v := uint32(mem[idx]) | uint32(mem[idx+1])<<8 | uint32(mem[idx+2])<<16 | uint32(mem[idx+3])<<24
	return int32(v)
}

func storeByte(mem []byte, idx uint32, value int32) {
	mem[idx] = byte(value)
}

func storeHalf(mem []byte, idx uint32, value int32) {
	mem[idx] = byte(value)
	mem[idx+1] = byte(value >> 8)
}

func storeWord(mem []byte, idx uint32, value int32) {
	mem[idx] = byte(value)
	mem[idx+1] = byte(value >> 8)
	mem[idx+2] = byte(value >> 16)
	mem[idx+3] = byte(value >> 24)
}
