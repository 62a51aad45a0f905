// Package step computes the axial-position schedule a segment propagator
// walks, in either fixed or variable mode (spec §4.3).
package step

import (
	"fmt"
	"math"

	"github.com/syqtju/nlse-ssfm/internal/fiber"
	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

// Mode selects how step sizes are chosen along a segment.
type Mode int

const (
	// Fixed produces a schedule known entirely from L and Approach before
	// propagation starts.
	Fixed Mode = iota
	// Variable grows the step size with z to exploit attenuation.
	Variable
)

// ApproachKind is a closed enumeration of the ways a step size can be
// derived from signal and fiber parameters.
type ApproachKind int

const (
	// FixedCount uses a caller-supplied integer number of equal steps.
	FixedCount ApproachKind = iota
	// Cautious sizes steps from peak power and pulse duration.
	Cautious
	// Approx sizes steps from peak power and the grid's time resolution.
	Approx
)

// Approach is a tagged variant: Kind selects which field is meaningful.
type Approach struct {
	Kind  ApproachKind
	Count int // valid when Kind == FixedCount; must be >= 1
}

// Config is supplied per link run to choose step sizing (spec §3:
// StepConfig).
type Config struct {
	Mode         Mode
	Approach     Approach
	SafetyFactor float64 // s > 0; larger s means smaller variable steps

	// MaxSteps guards the variable-step loop against runaway growth when
	// beta2 or gamma approach zero without exactly hitting the fast path.
	// Zero selects DefaultMaxSteps.
	MaxSteps int
}

// DefaultMaxSteps bounds the variable-step loop absent an explicit MaxSteps.
const DefaultMaxSteps = 1_000_000

// Schedule holds the axial positions and step sizes computed for one
// segment and launched field: z[0]=0, z[M]=L, dz[k]=z[k+1]-z[k].
type Schedule struct {
	Z  []float64
	DZ []float64
}

// Compute derives the schedule for seg given the field launched into it
// (peak power pMax in W, characteristic duration durationS in s) and cfg.
func Compute(seg *fiber.Segment, pMax, durationS, dt float64, cfg Config) (*Schedule, error) {
	if cfg.SafetyFactor <= 0 {
		return nil, fmt.Errorf("%w: step safety factor %g, must be > 0", ssfmerr.ErrInvalidParameter, cfg.SafetyFactor)
	}

	// Degenerate fast path: no nonlinearity or no 2nd-order dispersion means
	// the split-step operators commute, so one step suffices (spec §4.3).
	if seg.Gamma == 0.0 || seg.Beta2() == 0.0 {
		return &Schedule{Z: []float64{0, seg.L}, DZ: []float64{seg.L}}, nil
	}

	switch cfg.Mode {
	case Fixed:
		return computeFixed(seg, pMax, durationS, dt, cfg)
	case Variable:
		return computeVariable(seg, pMax, durationS, dt, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown step mode %v", ssfmerr.ErrInvalidParameter, cfg.Mode)
	}
}

func computeFixed(seg *fiber.Segment, pMax, durationS, dt float64, cfg Config) (*Schedule, error) {
	if cfg.Approach.Kind == FixedCount {
		m := cfg.Approach.Count
		if m < 1 {
			return nil, fmt.Errorf("%w: fixed step count %d, must be >= 1", ssfmerr.ErrInvalidParameter, m)
		}
		z := make([]float64, m+1)
		dz := make([]float64, m)
		step := seg.L / float64(m)
		for k := 0; k <= m; k++ {
			z[k] = float64(k) * step
		}
		z[m] = seg.L
		for k := 0; k < m; k++ {
			dz[k] = z[k+1] - z[k]
		}
		return &Schedule{Z: z, DZ: dz}, nil
	}

	// "cautious" or "approx": a single fixed step evaluated at z=0, repeated
	// until L is reached, with a shorter final step so z_M == L exactly.
	step, err := zstepNL(0, seg, pMax, durationS, dt, cfg.Approach.Kind, cfg.SafetyFactor)
	if err != nil {
		return nil, err
	}

	var z []float64
	z = append(z, 0)
	pos := 0.0
	maxSteps := cfg.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}
	for pos+step < seg.L {
		pos += step
		z = append(z, pos)
		if len(z) > maxSteps {
			return nil, fmt.Errorf("%w: fixed schedule exceeded %d steps", ssfmerr.ErrScheduleOverflow, maxSteps)
		}
	}
	if len(z) == 0 || z[len(z)-1] != seg.L {
		z = append(z, seg.L)
	}

	dz := make([]float64, len(z)-1)
	for k := range dz {
		dz[k] = z[k+1] - z[k]
	}
	return &Schedule{Z: z, DZ: dz}, nil
}

func computeVariable(seg *fiber.Segment, pMax, durationS, dt float64, cfg Config) (*Schedule, error) {
	maxSteps := cfg.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}

	z := []float64{0}
	dz := []float64{}

	pos := 0.0
	for {
		step, err := zstepNL(pos, seg, pMax, durationS, dt, cfg.Approach.Kind, cfg.SafetyFactor)
		if err != nil {
			return nil, err
		}
		if pos+step > seg.L {
			break
		}
		pos += step
		z = append(z, pos)
		dz = append(dz, step)
		if len(dz) > maxSteps {
			return nil, fmt.Errorf("%w: variable schedule exceeded %d steps", ssfmerr.ErrScheduleOverflow, maxSteps)
		}
	}
	dz = append(dz, seg.L-pos)
	z = append(z, seg.L)

	return &Schedule{Z: z, DZ: dz}, nil
}

// zstepNL computes the variable z-step size at axial position zM for the
// given approach kind, matching zstep_NL in the original solver, then clamps
// it to the grid's representable resolution on the low end and the segment
// length on the high end (spec §4.3 tie-breaks and clamps).
func zstepNL(zM float64, seg *fiber.Segment, pMax, durationS, dt float64, kind ApproachKind, safetyFactor float64) (float64, error) {
	beta2 := math.Abs(seg.Beta2())
	alphaNp := seg.AlphaNp()

	var step float64
	switch kind {
	case Cautious:
		denom := (seg.Gamma * pMax * durationS) * (seg.Gamma * pMax * durationS)
		step = math.Pi * beta2 / denom * math.Exp(2*alphaNp*zM) / safetyFactor
	case Approx:
		denom := (seg.Gamma * pMax) * (seg.Gamma * pMax) * durationS * dt
		step = math.Pi * beta2 / denom * math.Exp(2*alphaNp*zM) / safetyFactor
	default:
		return 0, fmt.Errorf("%w: unknown step approach %v", ssfmerr.ErrInvalidParameter, kind)
	}

	if step < dt {
		step = dt
	}
	if step > seg.L {
		step = seg.L
	}
	return step, nil
}
