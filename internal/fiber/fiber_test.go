package fiber

import (
	"errors"
	"math"
	"testing"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

func TestNewSegmentValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		length  float64
		gamma   float64
		alphaDB float64
	}{
		{"zero length", 0, 1e-3, 0.2},
		{"negative length", -1, 1e-3, 0.2},
		{"negative gamma", 1000, -1e-3, 0.2},
		{"negative alpha", 1000, 1e-3, -0.2},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSegment(c.length, c.gamma, nil, c.alphaDB, false)
			if !errors.Is(err, ssfmerr.ErrInvalidParameter) {
				t.Fatalf("got err %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSegmentDerivedFields(t *testing.T) {
	t.Parallel()

	beta := []float64{-21.7e-27, 0.1e-39}
	seg, err := NewSegment(20e3, 1.3e-3, beta, 0.2, true)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}

	if got := seg.Beta2(); got != beta[0] {
		t.Errorf("Beta2() = %g, want %g", got, beta[0])
	}

	wantAlphaNp := 0.2 * math.Log(10) / 10.0
	if got := seg.AlphaNp(); math.Abs(got-wantAlphaNp) > 1e-15 {
		t.Errorf("AlphaNp() = %g, want %g", got, wantAlphaNp)
	}

	wantLossDB := 0.2 * 20e3
	if got := seg.TotalLossDB(); got != wantLossDB {
		t.Errorf("TotalLossDB() = %g, want %g", got, wantLossDB)
	}

	// Beta must be defensively copied: mutating the caller's slice must not
	// affect the segment.
	beta[0] = 1
	if seg.Beta[0] == 1 {
		t.Errorf("Segment.Beta aliases the caller's slice")
	}
}

func TestSegmentBeta2Empty(t *testing.T) {
	t.Parallel()
	seg, err := NewSegment(1000, 1e-3, nil, 0, false)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	if got := seg.Beta2(); got != 0 {
		t.Errorf("Beta2() on empty Beta = %g, want 0", got)
	}
}

func TestNewLink(t *testing.T) {
	t.Parallel()

	if _, err := NewLink(nil); !errors.Is(err, ssfmerr.ErrInvalidParameter) {
		t.Fatalf("NewLink(nil) err = %v, want ErrInvalidParameter", err)
	}

	seg, err := NewSegment(1000, 1e-3, []float64{-21e-27}, 0.2, false)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	segs := []*Segment{seg}
	link, err := NewLink(segs)
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}
	if link.Len() != 1 {
		t.Errorf("Len() = %d, want 1", link.Len())
	}

	// Defensive copy: mutating the caller's slice must not affect the link.
	segs[0] = nil
	if link.Segments[0] == nil {
		t.Errorf("Link.Segments aliases the caller's slice")
	}
}

func TestFrequencyWavelengthHelpers(t *testing.T) {
	t.Parallel()

	wavelength := 1550e-9
	freq := WavelengthToFreq(wavelength)
	if got := FreqToWavelength(freq); math.Abs(got-wavelength) > 1e-20 {
		t.Errorf("FreqToWavelength(WavelengthToFreq(w)) = %g, want %g", got, wavelength)
	}
	if math.Abs(Freq1550nmHz-freq) > 1 {
		t.Errorf("Freq1550nmHz = %g, want %g", Freq1550nmHz, freq)
	}
}

func TestGammaFromFiberParams(t *testing.T) {
	t.Parallel()

	gamma := GammaFromFiberParams(1550e-9, 2.6e-20, 10e-6)
	if gamma <= 0 {
		t.Errorf("GammaFromFiberParams = %g, want > 0", gamma)
	}
}
