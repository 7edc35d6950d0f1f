package colorconvert

// IndexedToRGBA expands one indexed scanline into an RGBA scanline. Both
// source and destination are addressed at their own caller-reported
// stride (DataProvider.FetchScanlinesForRGBAConversion reports both
// independently, since Adam7 in-place layouts can strand either side at a
// non-compact pitch).
func IndexedToRGBA(dest []byte, indexed []byte, palette Palette, width, rgbaStride, indexedStride int) {
	for p := 0; p < width; p++ {
		entry := palette.Lookup(int(indexed[p*indexedStride]))
		di := p * rgbaStride
		dest[di+0] = entry[0]
		dest[di+1] = entry[1]
		dest[di+2] = entry[2]
		dest[di+3] = entry[3]
	}
}
