package vm

import "errors"

var errHeapNotAllocated = errors.New("free: address does not name an allocated chunk")

// bank is one 64-byte unit of heap storage (spec §3 MemoryBank).
// nextInChunk marks whether the following bank in the arena continues
// the same allocation; free walks this flag to find a chunk's end.
type bank struct {
	data        [BankSize]byte
	allocated   bool
	nextInChunk bool
}

// heap is a bank arena indexed by position in the ordered sequence
// (spec §9): bank i always corresponds to address BaseAddr + i*BankSize,
// so lookups by address are a direct division rather than a linked-list
// walk. Banks are created lazily on first use and retained (possibly
// marked free) for reuse by later allocations.
type heap struct {
	banks []bank
}

func ceilDivBank(size uint32) uint32 {
	if size == 0 {
		return 1
	}
	return (size + BankSize - 1) / BankSize
}

// allocate implements spec §4.4 allocate(size): first-fit over the
// existing arena, extending it (reusing any trailing free banks) when
// no existing run is large enough. Returns (0, false) on failure.
func (h *heap) allocate(size uint32) (uint32, bool) {
	required := ceilDivBank(size)
	if required > NumBanks {
		return 0, false
	}

	if len(h.banks) == 0 {
		h.growAndMark(0, required)
		return BaseAddr, true
	}

	if start, ok := h.findFreeRun(required); ok {
		h.markAllocated(start, required)
		return BaseAddr + start*BankSize, true
	}

	newStart := uint32(h.lastAllocatedIndex() + 1)
	if newStart+required > NumBanks {
		return 0, false
	}
	h.growAndMark(newStart, required)
	return BaseAddr + newStart*BankSize, true
}

// findFreeRun scans the existing arena (no extension) for the first run
// of `required` consecutive unallocated banks.
func (h *heap) findFreeRun(required uint32) (uint32, bool) {
	run := uint32(0)
	for i, b := range h.banks {
		if b.allocated {
			run = 0
			continue
		}
		run++
		if run == required {
			return uint32(i+1) - required, true
		}
	}
	return 0, false
}

// lastAllocatedIndex returns the index of the rightmost allocated bank,
// or -1 if every bank in the arena is free.
func (h *heap) lastAllocatedIndex() int {
	last := -1
	for i, b := range h.banks {
		if b.allocated {
			last = i
		}
	}
	return last
}

// growAndMark extends the arena so indices [start, start+count) exist,
// then marks that run allocated with chunk-boundary flags set.
func (h *heap) growAndMark(start, count uint32) {
	need := int(start + count)
	for len(h.banks) < need {
		h.banks = append(h.banks, bank{})
	}
	h.markAllocated(start, count)
}

func (h *heap) markAllocated(start, count uint32) {
	for i := start; i < start+count; i++ {
		h.banks[i].allocated = true
		h.banks[i].nextInChunk = i != start+count-1
	}
}

// free implements spec §4.4 free(address): round down to a bank
// boundary, locate the bank, and clear forward through the chunk while
// the current bank's own nextInChunk flag says the chunk continues.
func (h *heap) free(address uint32) error {
	aligned := address - address%BankSize
	if aligned < BaseAddr {
		return errHeapNotAllocated
	}
	idx := (aligned - BaseAddr) / BankSize
	if idx >= uint32(len(h.banks)) || !h.banks[idx].allocated {
		return errHeapNotAllocated
	}

	for i := idx; i < uint32(len(h.banks)); i++ {
		continues := h.banks[i].nextInChunk
		h.banks[i].allocated = false
		h.banks[i].data = [BankSize]byte{}
		if !continues {
			break
		}
	}
	return nil
}

// resolve implements spec §4.4 resolve(address): round down to a bank
// boundary and return the bank iff it exists and is allocated.
func (h *heap) resolve(address uint32) (*bank, bool) {
	if !inHeap(address) {
		return nil, false
	}
	aligned := address - address%BankSize
	idx := (aligned - BaseAddr) / BankSize
	if idx >= uint32(len(h.banks)) || !h.banks[idx].allocated {
		return nil, false
	}
	return &h.banks[idx], true
}

func (h *heap) byteAt(addr uint32) (byte, bool) {
	b, ok := h.resolve(addr)
	if !ok {
		return 0, false
	}
	return b.data[addr%BankSize], true
}

// loadMulti reads width (1, 2 or 4) little-endian bytes starting at
// address, resolving each byte's own bank independently so a straddling
// access transparently spans banks (spec §4.4).
func (h *heap) loadMulti(address uint32, width uint32) (int32, bool) {
	var buf [4]byte
	for i := uint32(0); i < width; i++ {
		b, ok := h.byteAt(address + i)
		if !ok {
			return 0, false
		}
		buf[i] = b
	}

	switch width {
	case 1:
		return int32(buf[0]), true
	case 2:
		return loadHalfU(buf[:], 0), true
	default:
		return loadWord(buf[:], 0), true
	}
}

// loadMultiSigned is loadMulti but sign-extends the loaded width.
func (h *heap) loadMultiSigned(address uint32, width uint32) (int32, bool) {
	v, ok := h.loadMulti(address, width)
	if !ok {
		return 0, false
	}
	switch width {
	case 1:
		return int32(int8(v)), true
	case 2:
		return int32(int16(v)), true
	default:
		return v, true
	}
}

// storeMulti writes width little-endian bytes of value starting at
// address. Every byte's bank is validated before any byte is written,
// so a failing straddling store leaves the heap untouched.
func (h *heap) storeMulti(address uint32, width uint32, value int32) bool {
	var buf [4]byte
	switch width {
	case 1:
		storeByte(buf[:], 0, value)
	case 2:
		storeHalf(buf[:], 0, value)
	default:
		storeWord(buf[:], 0, value)
	}

	banks := make([]*bank, width)
	for i := uint32(0); i < width; i++ {
		b, ok := h.resolve(address + i)
		if !ok {
			return false
		}
		banks[i] = b
	}
	for i := uint32(0); i < width; i++ {
		banks[i].data[(address+i)%BankSize] = buf[i]
	}
	return true
}
