package colorconvert

import "github.com/deepteams/png/internal/pngcore"

// These three expansions run in place against the predictor worker's
// destination scanline buffer, which is already strided for its final RGBA
// width (Stride >= 4, per the DataProvider contract in SPEC_FULL.md §4.8)
// and carries prediction's raw 1/2/3-byte sample at the leading bytes of
// each pixel's slot. Each function reads that sample before overwriting
// the same slot with the full 4-byte RGBA value; pixels are processed left
// to right so a given slot's own leading bytes are always read before
// they are clobbered.
//
// The caller controls *when* a scanline is expanded, not just how: a
// DataProvider may hand back the same backing storage as both a row's
// current scanline and a later row's filter reference, so expanding a
// row's raw sample into RGBA before every row that might still read it as
// a reference has run is a correctness bug, not just a style choice (most
// visibly for GrayscaleAlpha, whose raw sample's second byte is the alpha
// channel a future Up/Average/Paeth filter reads back). See
// internal/worker/worker.go's handlePredict.

// ExpandGrayscaleInPlace expands an 8-bit grayscale sample per pixel slot
// into (y,y,y,0xFF), or (y,y,y,0x00) where the sample matches a tRNS
// chroma-key gray value.
func ExpandGrayscaleInPlace(buf []byte, transparency pngcore.Transparency, width, stride int) {
	for p := 0; p < width; p++ {
		di := p * stride
		y := buf[di]
		alpha := byte(0xFF)
		if transparency.Kind == pngcore.TransparencyChromaKey && transparency.ChromaKey[0] == y {
			alpha = 0x00
		}
		buf[di+0] = y
		buf[di+1] = y
		buf[di+2] = y
		buf[di+3] = alpha
	}
}

// ExpandGrayscaleAlphaInPlace expands a 2-byte (y, a) sample per pixel slot
// into (y, y, y, a).
func ExpandGrayscaleAlphaInPlace(buf []byte, width, stride int) {
	for p := 0; p < width; p++ {
		di := p * stride
		y, a := buf[di], buf[di+1]
		buf[di+0] = y
		buf[di+1] = y
		buf[di+2] = y
		buf[di+3] = a
	}
}

// ExpandRGBInPlace fills in the alpha byte for a 3-byte (r,g,b) sample per
// pixel slot, applying tRNS chroma-key transparency.
func ExpandRGBInPlace(buf []byte, transparency pngcore.Transparency, width, stride int) {
	for p := 0; p < width; p++ {
		di := p * stride
		r, g, b := buf[di], buf[di+1], buf[di+2]
		alpha := byte(0xFF)
		if transparency.Kind == pngcore.TransparencyChromaKey &&
			transparency.ChromaKey[0] == r && transparency.ChromaKey[1] == g && transparency.ChromaKey[2] == b {
			alpha = 0x00
		}
		buf[di+3] = alpha
	}
}
