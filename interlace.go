package png

import "github.com/deepteams/png/internal/pngcore"

// LevelOfDetail identifies either the non-interlaced raster or one of the
// seven Adam7 passes (0..=6).
type LevelOfDetail = pngcore.LevelOfDetail

// LODNone is the non-interlaced level of detail.
var LODNone = pngcore.LODNone

// LODAdam7 constructs the level of detail for Adam7 pass p (0..=6).
func LODAdam7(p uint8) LevelOfDetail { return pngcore.LODAdam7(p) }

// InterlacingInfo maps a scanline's position within its level of detail to
// its address within the deinterlaced output raster.
type InterlacingInfo = pngcore.InterlacingInfo

// NewInterlacingInfo computes the row, pixel stride, and pixel offset for
// scanline y of the given level of detail, at the given bits-per-pixel
// color depth.
func NewInterlacingInfo(y uint32, colorDepth uint8, lod LevelOfDetail) InterlacingInfo {
	return pngcore.NewInterlacingInfo(y, colorDepth, lod)
}

// YScaleFactor returns the ratio between rows of the deinterlaced raster
// and rows within the given level of detail.
func YScaleFactor(lod LevelOfDetail) uint32 { return pngcore.YScaleFactor(lod) }
