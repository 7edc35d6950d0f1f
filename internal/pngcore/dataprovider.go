package pngcore

// DataProvider is the caller-supplied abstraction over pixel storage. The
// predictor worker is its sole caller once installed; implementations must
// be safe to call from the worker's goroutine regardless of which
// goroutine constructed them.
type DataProvider interface {
	// FetchScanlinesForPrediction returns mutable references to the
	// reference (if any) and current destination scanlines for the given
	// level of detail. referenceY, when present, is always less than
	// currentY within the same level of detail.
	FetchScanlinesForPrediction(referenceY *uint32, currentY uint32, lod LevelOfDetail, indexed bool) ScanlinesForPrediction

	// PredictionCompleteForScanline notifies the provider that scanline y
	// of the given level of detail has been reconstructed in place.
	PredictionCompleteForScanline(y uint32, lod LevelOfDetail)

	// FetchScanlinesForRGBAConversion returns the destination RGBA slice
	// and the source indexed slice for scanline y of the given level of
	// detail.
	FetchScanlinesForRGBAConversion(y uint32, lod LevelOfDetail) ScanlinesForRGBAConversion

	// RGBAConversionCompleteForScanline notifies the provider that
	// scanline y of the given level of detail has been converted to RGBA.
	RGBAConversionCompleteForScanline(y uint32, lod LevelOfDetail)

	// Finished is invoked once, after all decode and conversion work has
	// been drained, before the predictor worker terminates.
	Finished()
}

// ScanlinesForPrediction is returned by FetchScanlinesForPrediction.
// ReferenceScanline is nil when there is no row above current within this
// level of detail (the worker substitutes a zero buffer as long as
// CurrentScanline).
type ScanlinesForPrediction struct {
	ReferenceScanline []byte
	CurrentScanline   []byte
	Stride            uint8
}

// ScanlinesForRGBAConversion is returned by FetchScanlinesForRGBAConversion.
type ScanlinesForRGBAConversion struct {
	RGBAScanline    []byte
	IndexedScanline []byte
	RGBAStride      uint8
	IndexedStride   uint8
}
