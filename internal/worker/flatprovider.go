package worker

import "github.com/deepteams/png/internal/pngcore"

// FlatProvider is a reference DataProvider that backs pixel storage with one
// contiguous []byte per plane, grounded on original_source/simple.rs's
// MemoryDataProvider. It is not part of the core decoder — the caller's
// storage strategy is explicitly out of scope for the loader — so it lives
// here as a demonstration/testing collaborator for the root package's
// loader tests and for cmd/pngprobe, never used by loader.go itself.
//
// Each plane is strided to a 16-byte boundary and padded eight pixels past
// the nominal end, since the final scanline of an Adam7 pass can carry a
// nonzero column offset that would otherwise run past a tight allocation.
type FlatProvider struct {
	width, height uint32
	indexed       bool

	rgbaStride    int
	indexedStride int

	rgba    []byte
	indices []byte

	doneCh chan []byte
}

// NewFlatProvider allocates storage for a width x height image. indexed
// selects whether an 8-bit indexed plane is also allocated, for images whose
// color type is Indexed (PerformRGBAConversion then converts it into rgba).
func NewFlatProvider(width, height uint32, indexed bool) *FlatProvider {
	rgbaStride := align16(int(width) * 4)
	fp := &FlatProvider{
		width:      width,
		height:     height,
		indexed:    indexed,
		rgbaStride: rgbaStride,
		rgba:       make([]byte, rgbaStride*int(height)+8*4),
		doneCh:     make(chan []byte, 1),
	}
	if indexed {
		fp.indexedStride = align16(int(width))
		fp.indices = make([]byte, fp.indexedStride*int(height)+9)
	}
	return fp
}

func align16(n int) int { return (n + 15) &^ 15 }

func (fp *FlatProvider) plane(indexed bool) ([]byte, int) {
	if indexed {
		return fp.indices, fp.indexedStride
	}
	return fp.rgba, fp.rgbaStride
}

func (fp *FlatProvider) FetchScanlinesForPrediction(referenceY *uint32, currentY uint32, lod pngcore.LevelOfDetail, indexed bool) pngcore.ScanlinesForPrediction {
	colorDepth := uint8(32)
	if indexed {
		colorDepth = 8
	}
	plane, stride := fp.plane(indexed)
	cur := pngcore.NewInterlacingInfo(currentY, colorDepth, lod)

	var ref []byte
	if referenceY != nil {
		r := pngcore.NewInterlacingInfo(*referenceY, colorDepth, lod)
		start := int(r.Y)*stride + int(r.Offset)
		ref = plane[start : start+stride]
	}

	start := int(cur.Y)*stride + int(cur.Offset)
	curSlice := plane[start : start+stride]
	return pngcore.ScanlinesForPrediction{
		ReferenceScanline: ref,
		CurrentScanline:   curSlice,
		Stride:            cur.Stride,
	}
}

func (fp *FlatProvider) PredictionCompleteForScanline(uint32, pngcore.LevelOfDetail) {}

func (fp *FlatProvider) FetchScanlinesForRGBAConversion(y uint32, lod pngcore.LevelOfDetail) pngcore.ScanlinesForRGBAConversion {
	rgbaInfo := pngcore.NewInterlacingInfo(y, 32, lod)
	rgbaStart := int(rgbaInfo.Y)*fp.rgbaStride + int(rgbaInfo.Offset)
	sr := pngcore.ScanlinesForRGBAConversion{
		RGBAScanline: fp.rgba[rgbaStart:],
		RGBAStride:   rgbaInfo.Stride,
	}
	if fp.indexed {
		indexedInfo := pngcore.NewInterlacingInfo(y, 8, lod)
		indexedStart := int(indexedInfo.Y)*fp.indexedStride + int(indexedInfo.Offset)
		sr.IndexedScanline = fp.indices[indexedStart:]
		sr.IndexedStride = indexedInfo.Stride
	}
	return sr
}

func (fp *FlatProvider) RGBAConversionCompleteForScanline(uint32, pngcore.LevelOfDetail) {}

// Finished hands the completed RGBA buffer to Wait. It is invoked exactly
// once, from the predictor worker's goroutine, after the last scanline (and
// any deferred indexed-to-RGBA conversion) has landed.
func (fp *FlatProvider) Finished() {
	fp.doneCh <- fp.rgba
}

// Wait blocks until Finished has run and returns the decoded image: a
// big-endian RGBA raster, fp.Stride() bytes per row, fp.Height() rows.
func (fp *FlatProvider) Wait() []byte { return <-fp.doneCh }

// Stride returns the byte distance between successive scanlines of the
// returned RGBA buffer. It may exceed 4*Width() due to alignment padding.
func (fp *FlatProvider) Stride() int { return fp.rgbaStride }

func (fp *FlatProvider) Width() uint32  { return fp.width }
func (fp *FlatProvider) Height() uint32 { return fp.height }
