package inflate

// huffman is a canonical Huffman decode table built from a list of code
// lengths, in the representation used by Mark Adler's puff.c reference
// decoder: counts[n] is the number of codes of length n, and symbols lists
// the symbols in order of (length, symbol value), which is exactly the
// order canonical codes assign bit patterns in.
type huffman struct {
	counts  [16]uint16
	symbols []uint16
}

// buildHuffman constructs the canonical decode table for the given code
// lengths (0 meaning "symbol unused").
func buildHuffman(lengths []uint8) *huffman {
	h := &huffman{symbols: make([]uint16, len(lengths))}
	for _, l := range lengths {
		h.counts[l]++
	}
	h.counts[0] = 0

	var offsets [16]uint16
	for l := 1; l < 16; l++ {
		offsets[l] = offsets[l-1] + h.counts[l-1]
	}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		h.symbols[offsets[l]] = uint16(sym)
		offsets[l]++
	}
	return h
}

// decodeState is the resumable cursor for walking a single symbol through a
// huffman table bit by bit, following puff.c's decode() loop unrolled into
// an explicit, suspendable step so a symbol can straddle two Decompress
// calls when input runs out mid-code.
type decodeState struct {
	active bool
	code   int
	first  int
	index  int
	length int
}

func (d *decodeState) reset() { *d = decodeState{} }

// step consumes bits from br one at a time, advancing the canonical-code
// walk. It returns (symbol, true, true) once a full code is decoded,
// (0, false, false) if br ran out of bits (the caller must retry step later
// with the same decodeState, which preserves the partial walk), or
// (0, true, false) if the bits form no valid code (a malformed stream).
func (h *huffman) step(d *decodeState, br *bitReader) (int, bool, bool) {
	d.active = true
	for {
		bit, ok := br.getBit()
		if !ok {
			return 0, false, false
		}
		d.code |= bit
		count := int(h.counts[d.length+1])
		d.length++
		if d.code-d.first < count {
			sym := h.symbols[d.index+(d.code-d.first)]
			d.reset()
			return int(sym), true, true
		}
		d.index += count
		d.first += count
		d.first <<= 1
		d.code <<= 1
		if d.length >= 15 {
			// Malformed stream: no valid code of this length exists.
			d.reset()
			return 0, true, false
		}
	}
}
