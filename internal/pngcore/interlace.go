package pngcore

// LevelOfDetail identifies either the non-interlaced raster or one of the
// seven Adam7 passes (0..=6).
type LevelOfDetail struct {
	Adam7   bool
	Pass    uint8
}

// LODNone is the non-interlaced level of detail.
var LODNone = LevelOfDetail{}

// LODAdam7 constructs the level of detail for Adam7 pass p (0..=6).
func LODAdam7(p uint8) LevelOfDetail {
	return LevelOfDetail{Adam7: true, Pass: p}
}

// IsLast reports whether this is the final Adam7 pass, or the only pass for
// a non-interlaced image.
func (l LevelOfDetail) IsLast() bool {
	return !l.Adam7 || l.Pass == 6
}

// Next advances to the next Adam7 pass, capping at pass 6. Calling Next on
// a non-interlaced LevelOfDetail is a no-op (callers must not do this).
func (l LevelOfDetail) Next() LevelOfDetail {
	if l.Adam7 && l.Pass < 6 {
		return LODAdam7(l.Pass + 1)
	}
	return l
}

// InterlacingInfo maps a scanline's position within its level of detail to
// its address within the deinterlaced output raster.
type InterlacingInfo struct {
	Y      uint32
	Stride uint8
	Offset uint8
}

// adam7Table holds (yOffset, colStride, xOffset) per pass, matching the PNG
// specification's Adam7 pass geometry.
var adam7Table = [7][3]uint32{
	{0, 8, 0},
	{0, 8, 4},
	{4, 4, 0},
	{0, 4, 2},
	{2, 2, 0},
	{0, 2, 1},
	{1, 1, 0},
}

// NewInterlacingInfo computes the row, pixel stride, and pixel offset for
// scanline y of the given level of detail, at the given bits-per-pixel
// color depth.
func NewInterlacingInfo(y uint32, colorDepth uint8, lod LevelOfDetail) InterlacingInfo {
	scale := YScaleFactor(lod)
	bpp := uint32(colorDepth) / 8
	if bpp == 0 {
		bpp = 1
	}

	var yOffset, colStride, xOffset uint32
	if !lod.Adam7 {
		yOffset, colStride, xOffset = 0, 1, 0
	} else {
		row := adam7Table[lod.Pass]
		yOffset, colStride, xOffset = row[0], row[1], row[2]
	}

	return InterlacingInfo{
		Y:      y*scale + yOffset,
		Stride: uint8(colStride * bpp),
		Offset: uint8(xOffset * bpp),
	}
}

// YScaleFactor returns the ratio between rows of the deinterlaced raster and
// rows within the given level of detail.
func YScaleFactor(lod LevelOfDetail) uint32 {
	if !lod.Adam7 {
		return 1
	}
	switch lod.Pass {
	case 0, 1, 2:
		return 8
	case 3, 4:
		return 4
	case 5, 6:
		return 2
	default:
		return 1
	}
}

// PassWidth returns the number of pixels this level of detail contributes
// per row of a deinterlaced raster of the given width, 0 if the image is
// too narrow for this pass to contribute anything.
func PassWidth(width uint32, lod LevelOfDetail) uint32 {
	if !lod.Adam7 {
		return width
	}
	row := adam7Table[lod.Pass]
	colStride, xOffset := row[1], row[2]
	if xOffset >= width {
		return 0
	}
	return (width - xOffset + colStride - 1) / colStride
}

// PassHeight returns the number of rows this level of detail contributes to
// a deinterlaced raster of the given height, 0 if the image is too short.
func PassHeight(height uint32, lod LevelOfDetail) uint32 {
	if !lod.Adam7 {
		return height
	}
	row := adam7Table[lod.Pass]
	yOffset, yScale := row[0], YScaleFactor(lod)
	if yOffset >= height {
		return 0
	}
	return (height - yOffset + yScale - 1) / yScale
}
