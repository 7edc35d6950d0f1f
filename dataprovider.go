package png

import "github.com/deepteams/png/internal/pngcore"

// DataProvider is the caller-supplied abstraction over pixel storage. The
// predictor worker is its sole caller once installed via [Loader.SetDataProvider].
type DataProvider = pngcore.DataProvider

// ScanlinesForPrediction is returned by DataProvider.FetchScanlinesForPrediction.
type ScanlinesForPrediction = pngcore.ScanlinesForPrediction

// ScanlinesForRGBAConversion is returned by
// DataProvider.FetchScanlinesForRGBAConversion.
type ScanlinesForRGBAConversion = pngcore.ScanlinesForRGBAConversion
