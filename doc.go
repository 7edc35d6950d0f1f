// Package png implements a parallel PNG decoder: a foreground loader drives
// container parsing and entropy decoding while a background predictor
// worker reverses scanline filters and performs color conversion, so that
// I/O, inflate, and pixel reconstruction overlap.
//
// The package decodes the chunk-framed container (signature, IHDR, PLTE,
// tRNS, IDAT, IEND), the five PNG prediction filters, Adam7 interlacing,
// and indexed/grayscale/grayscale-alpha to RGBA conversion. It does not
// decode write-side PNG, APNG, 16-bit-per-channel output, or color
// management, and it does not own pixel storage: callers supply a
// [DataProvider] that hands back scanline slices from their own buffers.
//
// Basic usage:
//
//	l := png.NewLoader()
//	l.SetDataProvider(myProvider)
//	for more := true; more; {
//		result, err := l.AddData(reader)
//		if err != nil {
//			return err
//		}
//		more = result != png.ResultFinished
//	}
package png
