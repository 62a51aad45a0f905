package grid

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/integrate"
)

// Power returns the instantaneous power |a|^2 at every sample of a time- or
// frequency-domain field.
func Power(field []complex128) []float64 {
	p := make([]float64, len(field))
	for i, v := range field {
		re, im := real(v), imag(v)
		p[i] = re*re + im*im
	}
	return p
}

// Energy integrates the power of field over axis (time in seconds or
// frequency in Hz) using trapezoidal quadrature, matching np.trapz(|a|^2, x)
// in the original solver.
func Energy(axis []float64, field []complex128) float64 {
	return integrate.Trapezoidal(axis, Power(field))
}

// CompareFieldEnergies returns the normalized energy difference between two
// fields sampled on the same implicit axis, matching compare_field_energies
// in ssfm_unit_tests.py: sum(|a-b|^2) / sum(|a|^2), the metric every
// reference scenario in spec §8 is checked against.
func CompareFieldEnergies(a, b []complex128) float64 {
	diff := make([]complex128, len(a))
	cmplxs.SubTo(diff, a, b)

	num := real(cmplxs.Dot(diff, diff))
	den := real(cmplxs.Dot(a, a))
	if den == 0 {
		return num
	}
	return num / den
}

// Phase returns the unwrapped complex argument of pulse, re-zeroed on the
// middle sample (spec §4.1).
func Phase(pulse []complex128) []float64 {
	n := len(pulse)
	phi := make([]float64, n)
	for i, v := range pulse {
		phi[i] = math.Atan2(imag(v), real(v))
	}
	unwrap(phi)

	center := phi[n/2]
	for i := range phi {
		phi[i] -= center
	}
	return phi
}

// unwrap removes 2*pi discontinuities in place, matching numpy.unwrap's
// default behavior (jumps greater than pi are corrected).
func unwrap(phi []float64) {
	for i := 1; i < len(phi); i++ {
		d := phi[i] - phi[i-1]
		for d > math.Pi {
			phi[i] -= 2 * math.Pi
			d = phi[i] - phi[i-1]
		}
		for d < -math.Pi {
			phi[i] += 2 * math.Pi
			d = phi[i] - phi[i-1]
		}
	}
}

// Chirp returns the local chirp at every instance of pulse: the negative
// time-derivative of the local phase divided by 2*pi, extended to the left
// boundary by linear extrapolation of the first phase increment (spec
// §4.1).
func Chirp(timeS []float64, pulse []complex128) []float64 {
	n := len(pulse)
	phi := Phase(pulse)

	chirp := make([]float64, n)
	if n < 2 {
		return chirp
	}

	// dphi/dt at index 0 uses the extrapolated previous sample, matching
	// np.diff(phi, prepend=phi[0]-(phi[1]-phi[0])).
	prevPhi := phi[0] - (phi[1] - phi[0])
	prevT := timeS[0] - (timeS[1] - timeS[0])

	last := prevPhi
	lastT := prevT
	for i := 0; i < n; i++ {
		dphi := phi[i] - last
		dt := timeS[i] - lastT
		chirp[i] = -1.0 / (2 * math.Pi) * dphi / dt
		last = phi[i]
		lastT = timeS[i]
	}
	return chirp
}
