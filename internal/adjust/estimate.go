package adjust

import "math"

// guards against products like 35*0.8 = 28.000000000000004
const ceilEpsilon = 1e-9

// Estimator converts a caption's character count to the number of frames a
// decoder needs to load it into the non-displayed buffer.
type Estimator struct {
	FramesPerChar float64
}

func NewEstimator(framesPerChar float64) Estimator {
	return Estimator{FramesPerChar: framesPerChar}
}

// LoadFrames returns ceil(chars * FramesPerChar), saturating at math.MaxInt32.
// A NaN rate loads nothing.
func (e Estimator) LoadFrames(chars int) int {
	if chars <= 0 || math.IsNaN(e.FramesPerChar) || e.FramesPerChar <= 0 {
		return 0
	}
	frames := math.Ceil(float64(chars)*e.FramesPerChar - ceilEpsilon)
	if frames >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(frames)
}
