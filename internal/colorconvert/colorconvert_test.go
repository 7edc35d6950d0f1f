package colorconvert

import (
	"testing"

	"github.com/deepteams/png/internal/pngcore"
)

func TestExpandGrayscaleInPlaceOpaque(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 128
	ExpandGrayscaleInPlace(buf, pngcore.Transparency{}, 1, 4)
	want := []byte{128, 128, 128, 0xFF}
	for i, b := range want {
		if buf[i] != b {
			t.Fatalf("byte %d: got %d want %d", i, buf[i], b)
		}
	}
}

func TestExpandGrayscaleInPlaceChromaKey(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 42
	tr := pngcore.Transparency{Kind: pngcore.TransparencyChromaKey, ChromaKey: [3]byte{42, 42, 42}}
	ExpandGrayscaleInPlace(buf, tr, 1, 4)
	if buf[3] != 0x00 {
		t.Fatalf("chroma-keyed gray sample should be transparent, got alpha=%d", buf[3])
	}
}

func TestExpandGrayscaleAlphaInPlace(t *testing.T) {
	buf := make([]byte, 4)
	buf[0], buf[1] = 7, 200
	ExpandGrayscaleAlphaInPlace(buf, 1, 4)
	want := []byte{7, 7, 7, 200}
	for i, b := range want {
		if buf[i] != b {
			t.Fatalf("byte %d: got %d want %d", i, buf[i], b)
		}
	}
}

func TestExpandRGBInPlaceChromaKey(t *testing.T) {
	buf := make([]byte, 4)
	buf[0], buf[1], buf[2] = 10, 20, 30
	tr := pngcore.Transparency{Kind: pngcore.TransparencyChromaKey, ChromaKey: [3]byte{10, 20, 30}}
	ExpandRGBInPlace(buf, tr, 1, 4)
	if buf[3] != 0x00 {
		t.Fatalf("chroma-keyed RGB sample should be transparent, got alpha=%d", buf[3])
	}

	buf2 := make([]byte, 4)
	buf2[0], buf2[1], buf2[2] = 11, 20, 30
	ExpandRGBInPlace(buf2, tr, 1, 4)
	if buf2[3] != 0xFF {
		t.Fatalf("non-matching RGB sample should be opaque, got alpha=%d", buf2[3])
	}
}

func TestBuildPaletteAndLookup(t *testing.T) {
	raw := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}
	tr := pngcore.Transparency{Kind: pngcore.TransparencyIndexed, Indexed: []byte{0x80}}
	pal := BuildPalette(raw, tr)

	e0 := pal.Lookup(0)
	if e0 != [4]byte{255, 0, 0, 0x80} {
		t.Fatalf("index 0: got %v", e0)
	}
	e1 := pal.Lookup(1)
	if e1 != [4]byte{0, 255, 0, 0xFF} {
		t.Fatalf("index 1 (no tRNS entry): got %v, want fully opaque", e1)
	}
	// Out of range.
	if got := pal.Lookup(99); got != [4]byte{0, 0, 0, 0xFF} {
		t.Fatalf("out-of-range lookup: got %v", got)
	}
}

func TestIndexedToRGBA(t *testing.T) {
	raw := []byte{0, 0, 0, 255, 255, 255}
	pal := BuildPalette(raw, pngcore.Transparency{})
	indexed := []byte{0, 1, 0}
	dest := make([]byte, 3*4)
	IndexedToRGBA(dest, indexed, pal, 3, 4, 1)

	want := []byte{
		0, 0, 0, 0xFF,
		255, 255, 255, 0xFF,
		0, 0, 0, 0xFF,
	}
	for i, b := range want {
		if dest[i] != b {
			t.Fatalf("byte %d: got %d want %d", i, dest[i], b)
		}
	}
}
