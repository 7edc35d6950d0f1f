package pngcore

// Predictor identifies one of the five PNG scanline filters.
type Predictor uint8

const (
	PredictorNone    Predictor = 0
	PredictorLeft    Predictor = 1
	PredictorUp      Predictor = 2
	PredictorAverage Predictor = 3
	PredictorPaeth   Predictor = 4
)

// PredictorFromByte validates a scanline's leading filter-selector byte.
func PredictorFromByte(b byte) (Predictor, bool) {
	if b > byte(PredictorPaeth) {
		return 0, false
	}
	return Predictor(b), true
}

func (p Predictor) String() string {
	switch p {
	case PredictorNone:
		return "None"
	case PredictorLeft:
		return "Left"
	case PredictorUp:
		return "Up"
	case PredictorAverage:
		return "Average"
	case PredictorPaeth:
		return "Paeth"
	default:
		return "Invalid"
	}
}
