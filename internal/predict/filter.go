package predict

import "github.com/deepteams/png/internal/pngcore"

// Filter applies a predictor forward (the encode-side operation), producing
// the compact filtered bytes that Reconstruct would reverse back to
// recon given the same prev. It exists for round-trip testing the kernels
// against the invariant in SPEC_FULL.md §10: re-filtering reconstructed
// output against the same references reproduces the original filtered
// bytes.
func Filter(predictor pngcore.Predictor, dst, recon, prev []byte, width, bpp, stride, offset int) {
	for p := 0; p < width; p++ {
		si := p * bpp
		di := offset + p*stride
		for j := 0; j < bpp; j++ {
			var a, c byte
			if p > 0 {
				a = recon[di-stride+j]
				c = prev[di-stride+j]
			}
			b := prev[di+j]
			dst[si+j] = recon[di+j] - predictByte(predictor, a, b, c)
		}
	}
}
