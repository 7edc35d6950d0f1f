package worker

import (
	"github.com/deepteams/png/internal/colorconvert"
	"github.com/deepteams/png/internal/pngcore"
	"github.com/deepteams/png/internal/predict"
)

// Comm is the loader's handle onto a running predictor worker: two
// channels, one in each direction, matching
// original_source/prediction.rs's MainThreadToPredictorThreadComm.
type Comm struct {
	ToWorker   chan MainToWorkerMsg
	FromWorker chan WorkerToMainMsg
}

// NewComm spawns the predictor worker goroutine and returns the loader's
// communication handle. The inbound channel is bounded at 1: the loader
// self-paces via its scanlines-to-buffer rule (SPEC_FULL.md §7), so an
// unbounded channel is unnecessary; a small buffer lets the loader hand off
// a batch without blocking on the worker's current scanline.
func NewComm() *Comm {
	c := &Comm{
		ToWorker:   make(chan MainToWorkerMsg, 1),
		FromWorker: make(chan WorkerToMainMsg),
	}
	w := &worker{pending: make(map[pngcore.LevelOfDetail]pendingExpansion)}
	go w.run(c)
	return c
}

type worker struct {
	provider     pngcore.DataProvider
	palette      colorconvert.Palette
	transparency pngcore.Transparency
	zeroBuf      []byte

	// pending holds, per level of detail, the most recently reconstructed
	// non-indexed scanline whose RGBA expansion has been deferred one row
	// because its buffer is still needed, unexpanded, as the next row's
	// filter reference. See expandScanline's doc comment.
	pending map[pngcore.LevelOfDetail]pendingExpansion
}

type pendingExpansion struct {
	y         uint32
	buf       []byte
	colorType pngcore.ColorType
	width     int
	stride    int
}

func (w *worker) run(c *Comm) {
	for msg := range c.ToWorker {
		switch m := msg.(type) {
		case SetDataProviderMsg:
			w.provider = m.Provider
		case PredictMsg:
			w.handlePredict(m.Request, c)
		case PerformRGBAConversionMsg:
			w.handleRGBAConversion(m.Request, c)
		case FinishMsg:
			if w.provider != nil {
				w.flushAllPendingExpansions()
				w.provider.Finished()
			}
			close(c.FromWorker)
			return
		}
	}
}

func (w *worker) zeroScanline(n int) []byte {
	if len(w.zeroBuf) < n {
		w.zeroBuf = make([]byte, n)
	}
	return w.zeroBuf[:n]
}

func (w *worker) handlePredict(req pngcore.PredictionRequest, c *Comm) {
	if w.provider == nil {
		c.FromWorker <- NoDataProviderErrorMsg{}
		return
	}

	bpp := int(req.ColorDepth) / 8
	if bpp == 0 {
		bpp = 1
	}
	w.transparency = req.Transparency

	for _, sl := range req.Scanlines {
		width := int(pngcore.PassWidth(req.Width, sl.LOD))
		var refY *uint32
		if sl.Y > 0 {
			y := sl.Y - 1
			refY = &y
		}

		sp := w.provider.FetchScanlinesForPrediction(refY, sl.Y, sl.LOD, req.IndexedColor)
		ref := sp.ReferenceScanline
		if ref == nil {
			ref = w.zeroScanline(len(sp.CurrentScanline))
		}

		src := sl.Data[sl.Offset : sl.Offset+width*bpp]
		predict.Reconstruct(sl.Predictor, sp.CurrentScanline, src, ref, width, bpp, int(sp.Stride), 0)

		c.FromWorker <- ScanlinePredictionCompleteMsg{Y: sl.Y, LOD: sl.LOD, Buffer: sl.Data}

		if req.IndexedColor {
			w.provider.PredictionCompleteForScanline(sl.Y, sl.LOD)
			continue
		}

		// sl.Y's Reconstruct call above has just consumed row sl.Y-1 as its
		// filter reference, so any expansion deferred for that row (within
		// this same LOD) can no longer be read by a future row and is safe
		// to perform now. GrayscaleAlpha's raw 2-byte (grey, alpha) sample
		// shares its second byte with the pixel slot prediction reads back
		// as part of Up/Average/Paeth's (a, b, c) neighborhood on the next
		// row, and FlatProvider's FetchScanlinesForPrediction hands back
		// that same backing storage as both a row's current scanline and
		// the following row's reference — so expanding in place before the
		// next row's Reconstruct call would clobber the raw alpha sample it
		// still needs to read. Expanding with a one-row lag, and flushing
		// the final row of each LOD as soon as its own height confirms no
		// further row will reference it, keeps the raw bytes intact for
		// exactly as long as a future Reconstruct call might need them.
		w.flushPendingExpansion(sl.LOD)
		w.pending[sl.LOD] = pendingExpansion{
			y: sl.Y, buf: sp.CurrentScanline, colorType: req.ColorType,
			width: width, stride: int(sp.Stride),
		}
		if sl.Y+1 >= pngcore.PassHeight(req.Height, sl.LOD) {
			w.flushPendingExpansion(sl.LOD)
		}
	}
}

// flushPendingExpansion expands and retires the scanline deferred for lod,
// if any, notifying the provider that it is now finalized.
func (w *worker) flushPendingExpansion(lod pngcore.LevelOfDetail) {
	p, ok := w.pending[lod]
	if !ok {
		return
	}
	delete(w.pending, lod)
	w.expandScanline(p.buf, p.colorType, p.width, p.stride)
	w.provider.PredictionCompleteForScanline(p.y, lod)
}

// flushAllPendingExpansions retires every level of detail's deferred
// expansion. Normally each LOD's last row is flushed as soon as it is
// reconstructed (handlePredict above); this is a backstop so a premature
// Finish can never leave a reconstructed-but-unexpanded scanline behind.
func (w *worker) flushAllPendingExpansions() {
	for lod := range w.pending {
		w.flushPendingExpansion(lod)
	}
}

// expandScanline performs the non-indexed grayscale/grayscale-alpha/RGB to
// RGBA expansion described in SPEC_FULL.md §6.5, the way
// original_source/prediction.rs does: deferred one row behind prediction,
// so a row is only rewritten into RGBA once it can no longer be read back
// as a future row's raw filter reference. See handlePredict's call site.
func (w *worker) expandScanline(buf []byte, colorType pngcore.ColorType, width, stride int) {
	switch colorType {
	case pngcore.Grayscale:
		colorconvert.ExpandGrayscaleInPlace(buf, w.transparency, width, stride)
	case pngcore.GrayscaleAlpha:
		colorconvert.ExpandGrayscaleAlphaInPlace(buf, width, stride)
	case pngcore.RGB:
		colorconvert.ExpandRGBInPlace(buf, w.transparency, width, stride)
	case pngcore.RGBAlpha:
		// Already full RGBA; Reconstruct wrote all four bytes.
	}
}

func (w *worker) handleRGBAConversion(req pngcore.PerformRGBAConversionRequest, c *Comm) {
	w.palette = colorconvert.BuildPalette(req.RGBPalette, req.Transparency)
	w.transparency = req.Transparency

	lods := []pngcore.LevelOfDetail{pngcore.LODNone}
	if req.Interlaced {
		lods = make([]pngcore.LevelOfDetail, 7)
		for i := range lods {
			lods[i] = pngcore.LODAdam7(uint8(i))
		}
	}

	for _, lod := range lods {
		width := int(pngcore.PassWidth(req.Width, lod))
		if width == 0 {
			continue
		}
		rows := pngcore.PassHeight(req.Height, lod)
		for y := uint32(0); y < rows; y++ {
			sr := w.provider.FetchScanlinesForRGBAConversion(y, lod)
			colorconvert.IndexedToRGBA(sr.RGBAScanline, sr.IndexedScanline, w.palette, width, int(sr.RGBAStride), int(sr.IndexedStride))
			w.provider.RGBAConversionCompleteForScanline(y, lod)
		}
	}

	c.FromWorker <- RGBAConversionCompleteMsg{}
}
