package png

import "github.com/deepteams/png/internal/pngcore"

// ColorType is the PNG color type byte from IHDR.
type ColorType = pngcore.ColorType

const (
	Grayscale      = pngcore.Grayscale
	RGB            = pngcore.RGB
	Indexed        = pngcore.Indexed
	GrayscaleAlpha = pngcore.GrayscaleAlpha
	RGBAlpha       = pngcore.RGBAlpha
)

// Dimensions is the width/height pair from IHDR.
type Dimensions = pngcore.Dimensions

// Metadata is the immutable-after-IHDR image header.
type Metadata = pngcore.Metadata

// Predictor identifies one of the five PNG scanline filters.
type Predictor = pngcore.Predictor

const (
	PredictorNone    = pngcore.PredictorNone
	PredictorLeft    = pngcore.PredictorLeft
	PredictorUp      = pngcore.PredictorUp
	PredictorAverage = pngcore.PredictorAverage
	PredictorPaeth   = pngcore.PredictorPaeth
)

// TransparencyKind discriminates the three tRNS interpretations.
type TransparencyKind = pngcore.TransparencyKind

const (
	TransparencyNone      = pngcore.TransparencyNone
	TransparencyIndexed   = pngcore.TransparencyIndexed
	TransparencyChromaKey = pngcore.TransparencyChromaKey
)

// Transparency holds the decoded tRNS chunk.
type Transparency = pngcore.Transparency
