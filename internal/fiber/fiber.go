// Package fiber holds the physical parameters of fiber segments and links,
// plus the wavelength/frequency and nonlinearity helpers used to derive them.
package fiber

import (
	"fmt"
	"io"
	"math"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

// Segment is one uniform piece of fiber: length L, nonlinear coefficient
// Gamma, an ordered dispersion Taylor series Beta (Beta[0]=beta2, Beta[1]=
// beta3, ...), attenuation AlphaDB, and an optional self-steepening switch.
type Segment struct {
	L              float64 // m
	Gamma          float64 // 1/W/m
	Beta           []float64
	AlphaDB        float64 // dB/m
	SelfSteepening bool

	alphaNp float64 // Np/m, derived
}

// NewSegment constructs a Segment, deriving AlphaNp = AlphaDB*ln(10)/10.
func NewSegment(length, gamma float64, beta []float64, alphaDB float64, selfSteepening bool) (*Segment, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: fiber length %g, must be > 0", ssfmerr.ErrInvalidParameter, length)
	}
	if gamma < 0 {
		return nil, fmt.Errorf("%w: fiber gamma %g, must be >= 0", ssfmerr.ErrInvalidParameter, gamma)
	}
	if alphaDB < 0 {
		return nil, fmt.Errorf("%w: fiber alpha_dB %g, must be >= 0", ssfmerr.ErrInvalidParameter, alphaDB)
	}

	betaCopy := make([]float64, len(beta))
	copy(betaCopy, beta)

	return &Segment{
		L:              length,
		Gamma:          gamma,
		Beta:           betaCopy,
		AlphaDB:        alphaDB,
		SelfSteepening: selfSteepening,
		alphaNp:        alphaDB * math.Log(10) / 10.0,
	}, nil
}

// AlphaNp returns the attenuation coefficient in Np/m.
func (s *Segment) AlphaNp() float64 { return s.alphaNp }

// TotalLossDB returns the segment's total attenuation in dB.
func (s *Segment) TotalLossDB() float64 { return s.AlphaDB * s.L }

// Beta2 returns the second-order dispersion coefficient, or 0 if Beta is
// empty (used by the step schedule's degenerate fast path, spec §4.3).
func (s *Segment) Beta2() float64 {
	if len(s.Beta) == 0 {
		return 0
	}
	return s.Beta[0]
}

// Describe writes a human-readable summary of the segment to w, in the
// manner of fiber_class.describe_fiber in the original solver.
func (s *Segment) Describe(w io.Writer) {
	fmt.Fprintln(w, " ### Characteristic parameters of fiber: ###")
	fmt.Fprintf(w, "Fiber Length [km]\t= %g\n", s.L/1e3)
	fmt.Fprintf(w, "Fiber gamma [1/W/m]\t= %g\n", s.Gamma)
	fmt.Fprintf(w, "Fiber beta [s^k/m]\t= %v\n", s.Beta)
	fmt.Fprintf(w, "Fiber alpha_dB_per_m\t= %g\n", s.AlphaDB)
	fmt.Fprintf(w, "Fiber alpha_Np_per_m\t= %g\n", s.alphaNp)
	fmt.Fprintf(w, "Fiber total loss [dB]\t= %g\n", s.TotalLossDB())
	fmt.Fprintln(w, " ")
}

// Link is an ordered, non-empty sequence of Segments traversed in order.
type Link struct {
	Segments []*Segment
}

// NewLink builds a Link from an ordered slice of segments. segments must be
// non-empty.
func NewLink(segments []*Segment) (*Link, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: fiber link has no segments", ssfmerr.ErrInvalidParameter)
	}
	cp := make([]*Segment, len(segments))
	copy(cp, segments)
	return &Link{Segments: cp}, nil
}

// Len returns the number of segments in the link.
func (l *Link) Len() int { return len(l.Segments) }
