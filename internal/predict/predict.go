// Package predict implements the five PNG scanline prediction filters as
// reversers: given a filtered (compact) source scanline and the already
// reconstructed previous scanline, it writes the reconstructed pixels into
// a destination scanline at a caller-chosen byte stride, so the same
// kernel serves both the natural raster (stride == bpp) and in-place Adam7
// deinterlacing (stride spans the full deinterlaced row).
//
// Dispatch is a single check in Reconstruct: a packed fast path, used when
// stride equals the pixel width and the offset is zero, or the portable
// per-pixel fallback that handles every stride. Both paths implement the
// identical arithmetic. There is no alignment-gated path and no SIMD.
package predict

import "github.com/deepteams/png/internal/pngcore"

// Reconstruct reverses one scanline's filter in place into dest.
//
//   - src is the compact filtered scanline, width*bpp bytes, with its
//     leading predictor-selector byte already stripped by the caller.
//   - prev is the already-reconstructed scanline directly above this one,
//     addressed at the same stride as dest; pass a zero-filled slice of
//     the same length as dest for the first scanline of a level of detail.
//   - dest and prev must have length >= offset + (width-1)*stride + bpp.
//
// bpp is the whole-byte pixel width (color depth / 8, minimum 1).
func Reconstruct(predictor pngcore.Predictor, dest, src, prev []byte, width, bpp, stride, offset int) error {
	if stride == bpp && offset == 0 {
		return reconstructPacked(predictor, dest, src, prev, width, bpp)
	}
	return reconstructStrided(predictor, dest, src, prev, width, bpp, stride, offset)
}

// reconstructStrided is the portable fallback: one pixel at a time, at an
// arbitrary destination stride and starting offset.
func reconstructStrided(predictor pngcore.Predictor, dest, src, prev []byte, width, bpp, stride, offset int) error {
	for p := 0; p < width; p++ {
		si := p * bpp
		di := offset + p*stride
		for j := 0; j < bpp; j++ {
			x := src[si+j]
			var a, c byte
			if p > 0 {
				a = dest[di-stride+j]
				c = prev[di-stride+j]
			}
			b := prev[di+j]
			dest[di+j] = x + predictByte(predictor, a, b, c)
		}
	}
	return nil
}

// reconstructPacked is the fast path used when the destination is
// contiguous (stride == bpp, offset == 0): source and destination share
// the same addressing, so there is no separate "di" to compute.
func reconstructPacked(predictor pngcore.Predictor, dest, src, prev []byte, width, bpp int) error {
	n := width * bpp
	for i := 0; i < n; i++ {
		var a, c byte
		if i >= bpp {
			a = dest[i-bpp]
			c = prev[i-bpp]
		}
		b := prev[i]
		dest[i] = src[i] + predictByte(predictor, a, b, c)
	}
	return nil
}

func predictByte(predictor pngcore.Predictor, a, b, c byte) byte {
	switch predictor {
	case pngcore.PredictorNone:
		return 0
	case pngcore.PredictorLeft:
		return a
	case pngcore.PredictorUp:
		return b
	case pngcore.PredictorAverage:
		return byte((int(a) + int(b)) / 2)
	case pngcore.PredictorPaeth:
		return paeth(a, b, c)
	default:
		return 0
	}
}

// Aligned reports whether a scanline buffer slice begins and ends on a
// 16-byte boundary in memory, the precondition SPEC_FULL.md §6.4 names for
// an accelerated kernel variant. Reconstruct does not currently special
// case this (there is no real assembly kernel, only the packed/strided
// split above), but the check is exposed so callers and tests can assert
// the alignment invariant the padding scheme in the loader maintains.
func Aligned(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	return uintptrOf(b)%16 == 0
}
