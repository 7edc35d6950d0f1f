package png

import "github.com/deepteams/png/internal/pngcore"

// Error is the decoder's error type: a kind (see [ErrorKind]), a short
// message for metadata/unsupported-depth failures, the offending byte for
// a bad predictor selector, and an optional wrapped I/O or entropy-decoding
// cause.
type Error = pngcore.Error

// ErrorKind discriminates the taxonomy of decoder errors.
type ErrorKind = pngcore.ErrorKind

const (
	ErrIO                    = pngcore.ErrIO
	ErrInvalidMetadata       = pngcore.ErrInvalidMetadata
	ErrEntropyDecoding       = pngcore.ErrEntropyDecoding
	ErrInvalidPredictor      = pngcore.ErrInvalidPredictor
	ErrMissingDataProvider   = pngcore.ErrMissingDataProvider
	ErrUnsupportedColorDepth = pngcore.ErrUnsupportedColorDepth
)

// KindError constructs a bare sentinel of the given kind, for use with
// errors.Is(err, png.KindError(png.ErrEntropyDecoding)).
func KindError(kind ErrorKind) *Error { return pngcore.KindError(kind) }
