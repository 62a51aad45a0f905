package pulse

import (
	"fmt"
	"math/rand"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

// Shape selects which analytic envelope Build lays down before adding noise.
type Shape int

const (
	ShapeGaussian Shape = iota
	ShapeSech
	ShapeSquare
	// ShapeCustom adds no envelope: Build returns noise alone, for callers
	// that supply their own amplitude and only want reproducible ASE noise
	// added on top (the "custom" pulseType in getPulse, ssfm_functions.py).
	ShapeCustom
)

// Params collects the parameters shared by every pulse shape Build supports.
type Params struct {
	Shape           Shape
	PeakAmplitude   float64 // sqrt(W)
	DurationS       float64
	OffsetS         float64
	Chirp           float64
	Order           int // meaningful only for ShapeGaussian; Square always uses 100
	CarrierFreqHz   float64
	NoiseAmplitudeW float64 // sqrt(W); 0 disables noise
}

// Build constructs the time-domain field described by p on timeS, adding
// ASE-style noise when p.NoiseAmplitudeW is non-zero. rng is required
// whenever noise is requested, so callers own the seed and can reproduce a
// run exactly (getPulse in ssfm_functions.py).
func Build(timeS []float64, p Params, rng *rand.Rand) ([]complex128, error) {
	var envelope []complex128
	var err error

	switch p.Shape {
	case ShapeGaussian:
		envelope, err = Gaussian(timeS, p.PeakAmplitude, p.DurationS, p.OffsetS, p.Chirp, p.Order, p.CarrierFreqHz)
	case ShapeSech:
		envelope, err = Sech(timeS, p.PeakAmplitude, p.DurationS, p.OffsetS, p.Chirp, p.CarrierFreqHz)
	case ShapeSquare:
		envelope, err = Square(timeS, p.PeakAmplitude, p.DurationS, p.OffsetS, p.Chirp, p.CarrierFreqHz)
	case ShapeCustom:
		envelope = make([]complex128, len(timeS))
	default:
		return nil, fmt.Errorf("%w: unknown pulse shape %v", ssfmerr.ErrInvalidParameter, p.Shape)
	}
	if err != nil {
		return nil, err
	}

	if p.NoiseAmplitudeW == 0 {
		return envelope, nil
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: noise amplitude %g requested without a random source", ssfmerr.ErrInvalidParameter, p.NoiseAmplitudeW)
	}

	noise := ASENoise(timeS, p.NoiseAmplitudeW, rng)
	out := make([]complex128, len(timeS))
	for i := range out {
		out[i] = envelope[i] + noise[i]
	}
	return out, nil
}
