package pulse

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// ASENoise generates additive white noise: amplitudes drawn from a normal
// distribution centered on zero with standard deviation noiseAmplitude
// (units sqrt(W)), each given a phase drawn uniformly from [-pi, pi)
// (noise_ASE in ssfm_functions.py). rng is reified explicitly so a caller can
// reproduce a run bit-for-bit by reusing the same seed.
func ASENoise(timeS []float64, noiseAmplitude float64, rng *rand.Rand) []complex128 {
	amp := distuv.Normal{Mu: 0, Sigma: noiseAmplitude, Src: rng}
	phase := distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: rng}

	out := make([]complex128, len(timeS))
	for i := range timeS {
		a := amp.Rand()
		p := phase.Rand()
		out[i] = complex(a, 0) * cExp(complex(0, p))
	}
	return out
}
