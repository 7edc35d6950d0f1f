// Package worker implements the predictor worker: a goroutine, spawned by
// the loader at construction and torn down by a Finish message, that
// reverses scanline filters and performs indexed/grayscale RGBA expansion
// against a caller-supplied DataProvider. It is the Go rendering of
// original_source/prediction.rs's predictor_thread message loop, using
// channels and a dedicated goroutine in place of mpsc::channel and
// thread::spawn.
package worker

import "github.com/deepteams/png/internal/pngcore"

// MainToWorkerMsg is the sum of messages the loader may send the worker.
type MainToWorkerMsg interface{ isMainToWorkerMsg() }

type SetDataProviderMsg struct{ Provider pngcore.DataProvider }

func (SetDataProviderMsg) isMainToWorkerMsg() {}

type PredictMsg struct{ Request pngcore.PredictionRequest }

func (PredictMsg) isMainToWorkerMsg() {}

type PerformRGBAConversionMsg struct {
	Request pngcore.PerformRGBAConversionRequest
}

func (PerformRGBAConversionMsg) isMainToWorkerMsg() {}

type FinishMsg struct{}

func (FinishMsg) isMainToWorkerMsg() {}

// WorkerToMainMsg is the sum of messages the worker may send the loader.
type WorkerToMainMsg interface{ isWorkerToMainMsg() }

type NoDataProviderErrorMsg struct{}

func (NoDataProviderErrorMsg) isWorkerToMainMsg() {}

// ScanlinePredictionCompleteMsg returns a scanline's backing buffer to the
// loader so it can be recycled into the loader's free-list.
type ScanlinePredictionCompleteMsg struct {
	Y      uint32
	LOD    pngcore.LevelOfDetail
	Buffer []byte
}

func (ScanlinePredictionCompleteMsg) isWorkerToMainMsg() {}

type RGBAConversionCompleteMsg struct{}

func (RGBAConversionCompleteMsg) isWorkerToMainMsg() {}
