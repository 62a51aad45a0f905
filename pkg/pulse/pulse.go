// Package pulse builds time-domain input fields for the propagator: Gaussian,
// super-Gaussian/square, and hyperbolic-secant shapes, plus additive white
// noise, ported from the reference solver's pulse generators.
package pulse

import (
	"fmt"
	"math"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

// Gaussian returns peakAmplitude*exp(-(1+i*chirp)/2 * ((t-offset)/duration)^(2*order)) * exp(-i*2*pi*carrierFreqHz*t),
// sampled at timeS. duration is the RMS width: the amplitude falls to
// exp(-0.5) of its peak there. order controls the shape, with order=1 a pure
// Gaussian and large order approximating a square pulse (GaussianPulse in
// ssfm_functions.py).
func Gaussian(timeS []float64, peakAmplitude, durationS, offsetS, chirp float64, order int, carrierFreqHz float64) ([]complex128, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: gaussian pulse order %d, must be >= 1", ssfmerr.ErrInvalidParameter, order)
	}
	if durationS <= 0 {
		return nil, fmt.Errorf("%w: gaussian pulse duration %g, must be > 0", ssfmerr.ErrInvalidParameter, durationS)
	}

	out := make([]complex128, len(timeS))
	for i, t := range timeS {
		x := (t - offsetS) / durationS
		envelopeExp := complex(-math.Pow(x, float64(2*order))/2, -chirp*math.Pow(x, float64(2*order))/2)
		carrier := complex(0, -2*math.Pi*carrierFreqHz*t)
		out[i] = complex(peakAmplitude, 0) * cExp(envelopeExp) * cExp(carrier)
	}
	return out, nil
}

// Square returns a super-Gaussian pulse of order 100, which approximates a
// flat-top rectangular pulse of the given duration (squarePulse in
// ssfm_functions.py).
func Square(timeS []float64, peakAmplitude, durationS, offsetS, chirp float64, carrierFreqHz float64) ([]complex128, error) {
	return Gaussian(timeS, peakAmplitude, durationS, offsetS, chirp, 100, carrierFreqHz)
}

// Sech returns peakAmplitude*sech((t-offset)/duration) * exp(-i*chirp/2*((t-offset)/duration)^2) * exp(-i*2*pi*carrierFreqHz*t),
// the fundamental-soliton shape that propagates unchanged under pure
// anomalous-dispersion, pure-Kerr propagation (sechPulse in
// ssfm_functions.py).
func Sech(timeS []float64, peakAmplitude, durationS, offsetS, chirp float64, carrierFreqHz float64) ([]complex128, error) {
	if durationS <= 0 {
		return nil, fmt.Errorf("%w: sech pulse duration %g, must be > 0", ssfmerr.ErrInvalidParameter, durationS)
	}

	out := make([]complex128, len(timeS))
	for i, t := range timeS {
		x := (t - offsetS) / durationS
		amp := peakAmplitude / math.Cosh(x)
		envelopeExp := complex(0, -chirp/2*x*x)
		carrier := complex(0, -2*math.Pi*carrierFreqHz*t)
		out[i] = complex(amp, 0) * cExp(envelopeExp) * cExp(carrier)
	}
	return out, nil
}

func cExp(z complex128) complex128 {
	r := math.Exp(real(z))
	im := imag(z)
	return complex(r*math.Cos(im), r*math.Sin(im))
}
