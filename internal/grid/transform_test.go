package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

func gaussianField(g *Grid, amplitude, width float64) []complex128 {
	out := make([]complex128, g.N)
	for i, t := range g.Time() {
		x := t / width
		out[i] = complex(amplitude*math.Exp(-0.5*x*x), 0)
	}
	return out
}

func TestTransformRoundTrip(t *testing.T) {
	t.Parallel()

	g, err := New(512, 2e-12, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr := NewTransform(g)

	pulse := gaussianField(g, 1.0, 20e-12)
	spectrum, err := tr.ToFrequency(pulse, 0)
	if err != nil {
		t.Fatalf("ToFrequency: %v", err)
	}
	back, err := tr.ToTime(spectrum, 0)
	if err != nil {
		t.Fatalf("ToTime: %v", err)
	}

	var maxErr float64
	for i := range pulse {
		d := back[i] - pulse[i]
		if e := math.Hypot(real(d), imag(d)); e > maxErr {
			maxErr = e
		}
	}
	if maxErr > 1e-9 {
		t.Errorf("round trip max abs error = %g, want < 1e-9", maxErr)
	}
}

func TestTransformPreservesEnergy(t *testing.T) {
	t.Parallel()

	g, err := New(256, 5e-12, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr := NewTransform(g)

	pulse := gaussianField(g, 2.0, 15e-12)
	timeEnergy := Energy(g.Time(), pulse)

	spectrum, err := tr.ToFrequency(pulse, 0)
	if err != nil {
		t.Fatalf("ToFrequency: %v", err)
	}
	freqEnergy := Energy(g.Freq(), spectrum)

	if eps := math.Abs(timeEnergy/freqEnergy - 1); eps > DefaultEnergyTolerance {
		t.Errorf("relative energy error = %.3e, want <= %.3e", eps, DefaultEnergyTolerance)
	}
}

func TestToFrequencyRejectsWrongLength(t *testing.T) {
	t.Parallel()
	g, err := New(64, 1e-12, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr := NewTransform(g)
	if _, err := tr.ToFrequency(make([]complex128, 32), 0); !errors.Is(err, ssfmerr.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestToFrequencyRejectsNonFinite(t *testing.T) {
	t.Parallel()
	g, err := New(64, 1e-12, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr := NewTransform(g)
	pulse := make([]complex128, g.N)
	pulse[10] = complex(math.NaN(), 0)
	if _, err := tr.ToFrequency(pulse, 0); !errors.Is(err, ssfmerr.ErrNumericalInstability) {
		t.Fatalf("err = %v, want ErrNumericalInstability", err)
	}
}

func TestFFTShiftIsSelfInverseForEvenAndOddN(t *testing.T) {
	t.Parallel()
	for _, n := range []int{4, 5, 8, 9} {
		x := make([]complex128, n)
		for i := range x {
			x[i] = complex(float64(i), 0)
		}
		shifted := fftshift(x)
		back := ifftshift(shifted)
		for i := range x {
			if back[i] != x[i] {
				t.Fatalf("N=%d: ifftshift(fftshift(x))[%d] = %v, want %v", n, i, back[i], x[i])
			}
		}
	}
}
