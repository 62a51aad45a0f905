// Package propagate drives the split-step Fourier method over a fiber
// segment or link, alternating the nonlinear and linear operators along the
// step schedule computed by package step.
package propagate

import (
	"fmt"
	"math"

	"github.com/syqtju/nlse-ssfm/internal/fiber"
	"github.com/syqtju/nlse-ssfm/internal/grid"
	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
	"github.com/syqtju/nlse-ssfm/internal/step"
)

// segmentState is the lifecycle of a Segment propagator: it runs once and
// cannot be restarted.
type segmentState int

const (
	stateReady segmentState = iota
	stateStepping
	stateDone
)

// Segment drives the split-step Fourier method across one fiber.Segment. A
// Segment is single-use: call Run once, then read its Result.
type Segment struct {
	fiber *fiber.Segment
	grid  *grid.Grid
	tr    *grid.Transform
	tol   float64

	state segmentState
}

// NewSegment builds a propagator for seg on g, checking field energy at
// every transform boundary against tol (0 selects grid.DefaultEnergyTolerance).
func NewSegment(seg *fiber.Segment, g *grid.Grid, tol float64) *Segment {
	return &Segment{
		fiber: seg,
		grid:  g,
		tr:    grid.NewTransform(g),
		tol:   tol,
	}
}

// Result holds the field recorded at every axial position visited during a
// Run, in both domains, in order: Pulse/SpectrumMatrix[k] is the field at
// Z[k].
type Result struct {
	Z              []float64
	PulseMatrix    [][]complex128
	SpectrumMatrix [][]complex128
}

// Run propagates launch (a time-domain field sampled on the propagator's
// grid) across the full length of the segment using sched, returning the
// field recorded at every schedule position. Run may be called exactly once
// per Segment.
func (s *Segment) Run(launch []complex128, sched *step.Schedule) (*Result, error) {
	if s.state != stateReady {
		return nil, fmt.Errorf("%w: segment propagator already run", ssfmerr.ErrInvalidParameter)
	}
	s.state = stateStepping

	n := s.grid.N
	if len(launch) != n {
		s.state = stateDone
		return nil, fmt.Errorf("%w: launch field length %d != grid N %d", ssfmerr.ErrInvalidParameter, len(launch), n)
	}

	steps := len(sched.DZ)
	result := &Result{
		Z:              sched.Z,
		PulseMatrix:    make([][]complex128, steps+1),
		SpectrumMatrix: make([][]complex128, steps+1),
	}

	pulse := make([]complex128, n)
	copy(pulse, launch)
	result.PulseMatrix[0] = pulse

	spectrum, err := s.tr.ToFrequency(pulse, s.tol)
	if err != nil {
		s.state = stateDone
		return nil, err
	}
	result.SpectrumMatrix[0] = spectrum

	omega0 := 2 * math.Pi * s.grid.CenterFrequencyHz
	linOp := s.linearOperator()

	for k, dz := range sched.DZ {
		nlPulse, err := s.nonlinearStep(pulse, dz, omega0)
		if err != nil {
			s.state = stateDone
			return nil, fmt.Errorf("step %d: %w", k, err)
		}

		spec, err := s.tr.ToFrequency(nlPulse, s.tol)
		if err != nil {
			s.state = stateDone
			return nil, fmt.Errorf("step %d: %w", k, err)
		}
		for i := range spec {
			spec[i] *= cExp(linOp[i] * dz)
		}

		next, err := s.tr.ToTime(spec, s.tol)
		if err != nil {
			s.state = stateDone
			return nil, fmt.Errorf("step %d: %w", k, err)
		}

		pulse = next
		result.PulseMatrix[k+1] = pulse
		result.SpectrumMatrix[k+1] = spec
	}

	s.state = stateDone
	return result, nil
}

// linearOperator returns, for every frequency bin, the complex rate
// i*D(f) - alpha/2 whose exponential over a step dz is the segment's linear
// propagator, with D(f) = Sum_k (beta_k/(k+2)!)*omega^(k+2) the dispersion
// Taylor series evaluated from fiber.Segment.Beta (spec §4.2: generalized to
// arbitrary order, beta2 is Beta[0], beta3 is Beta[1], ...; reduces to the
// textbook exp(i*beta2/2*omega^2 - alpha/2) when len(Beta)==1, matching
// disp_and_loss in ssfm_functions.py).
func (s *Segment) linearOperator() []complex128 {
	freq := s.grid.Freq()
	op := make([]complex128, len(freq))
	alphaTerm := complex(-s.fiber.AlphaNp()/2, 0)

	for i, f := range freq {
		omega := 2 * math.Pi * f
		var d float64
		for k, beta := range s.fiber.Beta {
			fact := 1.0 // (k+2)!
			for m := 2; m <= k+2; m++ {
				fact *= float64(m)
			}
			d += beta / fact * math.Pow(omega, float64(k+2))
		}
		op[i] = complex(0, d) + alphaTerm
	}
	return op
}

func cExp(z complex128) complex128 {
	r := math.Exp(real(z))
	im := imag(z)
	return complex(r*math.Cos(im), r*math.Sin(im))
}

// nonlinearStep applies the Kerr phase (and, when enabled, the self-
// steepening shock correction) to pulse over an axial distance dz.
func (s *Segment) nonlinearStep(pulse []complex128, dz, omega0 float64) ([]complex128, error) {
	n := len(pulse)
	nlTerm := make([]complex128, n)
	for i, a := range pulse {
		p := real(a)*real(a) + imag(a)*imag(a)
		nlTerm[i] = complex(p, 0) * a
	}

	if s.fiber.SelfSteepening && omega0 != 0 {
		spec, err := s.tr.ToFrequency(nlTerm, s.tol)
		if err != nil {
			return nil, err
		}
		freq := s.grid.Freq()
		deriv := make([]complex128, n)
		for i := range spec {
			omega := 2 * math.Pi * freq[i]
			deriv[i] = spec[i] * complex(0, omega)
		}
		dndt, err := s.tr.ToTime(deriv, s.tol)
		if err != nil {
			return nil, err
		}
		for i := range nlTerm {
			nlTerm[i] += dndt[i] * complex(0, 1/omega0)
		}
	}

	out := make([]complex128, n)
	for i, a := range pulse {
		out[i] = a * cExp(complex(0, s.fiber.Gamma*dz)*perSamplePhase(nlTerm[i], a))
	}
	return out, nil
}

// perSamplePhase divides the nonlinear term by the carrier amplitude to turn
// it into a multiplicative phase: without self-steepening nlTerm is |a|^2*a
// so this reduces to |a|^2; with self-steepening the extra derivative term
// is folded in the same way.
func perSamplePhase(nlTerm, a complex128) complex128 {
	if a == 0 {
		return 0
	}
	return nlTerm / a
}
