// Package colorconvert implements indexed, grayscale, and grayscale-alpha
// to 32-bit RGBA expansion, grounded on original_source/prediction.rs's
// convert_indexed_to_rgba / convert_grayscale_to_rgba family, adapted to
// Go's explicit-error idiom and the corrected 8-bit-grayscale alpha rule
// SPEC_FULL.md §6.7 mandates (see DESIGN.md for the deviation from the
// original source, which set alpha to luminance instead of 0xFF).
package colorconvert

import "github.com/deepteams/png/internal/pngcore"

// Palette is the worker-side RGBA palette built from PLTE (+ optional
// tRNS): one 4-byte RGBA entry per index.
type Palette struct {
	entries [][4]byte
}

// BuildPalette constructs an RGBA palette from raw 3-bytes-per-entry PLTE
// data, deriving alpha from the transparency table (entries beyond the
// tRNS table default to fully opaque, matching pngcore.Transparency).
func BuildPalette(rgbPalette []byte, transparency pngcore.Transparency) Palette {
	n := len(rgbPalette) / 3
	entries := make([][4]byte, n)
	for i := 0; i < n; i++ {
		entries[i] = [4]byte{
			rgbPalette[i*3],
			rgbPalette[i*3+1],
			rgbPalette[i*3+2],
			transparency.AlphaForIndex(i),
		}
	}
	return Palette{entries: entries}
}

// Lookup returns the RGBA entry for a palette index, or fully-opaque black
// if the index is out of range (a malformed but non-fatal indexed pixel).
func (p Palette) Lookup(index int) [4]byte {
	if index < 0 || index >= len(p.entries) {
		return [4]byte{0, 0, 0, 0xFF}
	}
	return p.entries[index]
}
