package predict

import (
	"bytes"
	"testing"

	"github.com/deepteams/png/internal/pngcore"
)

func TestReconstructNone(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	prev := make([]byte, 4)
	dest := make([]byte, 4)
	if err := Reconstruct(pngcore.PredictorNone, dest, src, prev, 4, 1, 1, 0); err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !bytes.Equal(dest, src) {
		t.Fatalf("None filter should reproduce source bytes, got %v want %v", dest, src)
	}
}

func TestReconstructLeft(t *testing.T) {
	// width=3, bpp=1: first pixel has no left neighbor (a=0).
	src := []byte{10, 5, 5}
	prev := make([]byte, 3)
	dest := make([]byte, 3)
	Reconstruct(pngcore.PredictorLeft, dest, src, prev, 3, 1, 1, 0)
	want := []byte{10, 15, 20}
	if !bytes.Equal(dest, want) {
		t.Fatalf("Left: got %v want %v", dest, want)
	}
}

func TestReconstructUp(t *testing.T) {
	src := []byte{3, 3, 3}
	prev := []byte{10, 20, 30}
	dest := make([]byte, 3)
	Reconstruct(pngcore.PredictorUp, dest, src, prev, 3, 1, 1, 0)
	want := []byte{13, 23, 33}
	if !bytes.Equal(dest, want) {
		t.Fatalf("Up: got %v want %v", dest, want)
	}
}

func TestReconstructAverage(t *testing.T) {
	// pixel 0: a=0, b=prev[0]=10 -> avg=5; recon = src+avg
	src := []byte{0, 0}
	prev := []byte{10, 10}
	dest := make([]byte, 2)
	Reconstruct(pngcore.PredictorAverage, dest, src, prev, 2, 1, 1, 0)
	if dest[0] != 5 {
		t.Fatalf("Average pixel 0: got %d want 5", dest[0])
	}
	// pixel 1: a=dest[0]=5, b=prev[1]=10 -> avg=(5+10)/2=7
	if dest[1] != 7 {
		t.Fatalf("Average pixel 1: got %d want 7", dest[1])
	}
}

func TestPaethTieBreak(t *testing.T) {
	// a == b == c: p = a, distances all zero, ties broken toward a.
	if got := paeth(5, 5, 5); got != 5 {
		t.Fatalf("paeth(5,5,5) = %d, want 5", got)
	}
	// Values from the PNG spec's worked Paeth example.
	// a=10 b=20 c=0 -> p=30, pa=20 pb=10 pc=30 -> choose b (20)
	if got := paeth(10, 20, 0); got != 20 {
		t.Fatalf("paeth(10,20,0) = %d, want 20", got)
	}
}

func TestReconstructPaethFixture(t *testing.T) {
	// 2x1 RGB image, one scanline, Paeth filter, first row so prev is all
	// zero and c is always zero. With no left neighbor on pixel 0, a=0 and
	// b=0, so paeth degenerates to 0 for pixel 0, identity passthrough.
	bpp := 3
	width := 2
	src := []byte{1, 2, 3, 4, 5, 6}
	prev := make([]byte, width*bpp)
	dest := make([]byte, width*bpp)
	Reconstruct(pngcore.PredictorPaeth, dest, src, prev, width, bpp, bpp, 0)
	// pixel 0: a=b=c=0 -> predictor 0, recon = src
	if !bytes.Equal(dest[:3], []byte{1, 2, 3}) {
		t.Fatalf("pixel0: got %v want [1 2 3]", dest[:3])
	}
	// pixel 1: a=dest[0:3], b=0, c=0 -> paeth(a,0,0): p=a, pa=0 -> choose a
	want1 := []byte{1 + 4, 2 + 5, 3 + 6}
	if !bytes.Equal(dest[3:6], want1) {
		t.Fatalf("pixel1: got %v want %v", dest[3:6], want1)
	}
}

func TestReconstructStridedMatchesPackedAtUnitStride(t *testing.T) {
	width, bpp := 5, 2
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	prev := []byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	packed := make([]byte, width*bpp)
	Reconstruct(pngcore.PredictorAverage, packed, src, prev, width, bpp, bpp, 0)

	// Strided into a wider buffer, then compare against the packed result
	// at the corresponding offset.
	stride := bpp * 3
	strided := make([]byte, width*stride)
	stridedPrev := make([]byte, width*stride)
	for p := 0; p < width; p++ {
		copy(stridedPrev[p*stride:], prev[p*bpp:p*bpp+bpp])
	}
	Reconstruct(pngcore.PredictorAverage, strided, src, stridedPrev, width, bpp, stride, 0)

	for p := 0; p < width; p++ {
		got := strided[p*stride : p*stride+bpp]
		want := packed[p*bpp : p*bpp+bpp]
		if !bytes.Equal(got, want) {
			t.Fatalf("pixel %d: strided %v != packed %v", p, got, want)
		}
	}
}

func TestFilterReversesReconstruct(t *testing.T) {
	for _, pred := range []pngcore.Predictor{
		pngcore.PredictorNone, pngcore.PredictorLeft, pngcore.PredictorUp,
		pngcore.PredictorAverage, pngcore.PredictorPaeth,
	} {
		width, bpp := 4, 3
		src := []byte{12, 200, 7, 3, 250, 9, 128, 1, 64, 6, 6, 6}
		prev := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

		recon := make([]byte, width*bpp)
		Reconstruct(pred, recon, src, prev, width, bpp, bpp, 0)

		refiltered := make([]byte, width*bpp)
		Filter(pred, refiltered, recon, prev, width, bpp, bpp, 0)

		if !bytes.Equal(refiltered, src) {
			t.Fatalf("predictor %v: Filter(Reconstruct(src)) = %v, want %v", pred, refiltered, src)
		}
	}
}

func TestAligned(t *testing.T) {
	buf := make([]byte, 64)
	base := uintptrOf(buf)
	pad := (16 - int(base%16)) % 16
	if !Aligned(buf[pad:]) {
		t.Fatalf("expected buf[%d:] to be 16-byte aligned", pad)
	}
	if Aligned(buf[pad+8:]) {
		t.Fatalf("buf[%d:] should not be 16-byte aligned", pad+8)
	}
}
