package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(1, 1e-12, 0); !errors.Is(err, ssfmerr.ErrInvalidParameter) {
		t.Fatalf("N=1: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := New(8, 0, 0); !errors.Is(err, ssfmerr.ErrInvalidParameter) {
		t.Fatalf("dt=0: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := New(8, -1, 0); !errors.Is(err, ssfmerr.ErrInvalidParameter) {
		t.Fatalf("dt<0: err = %v, want ErrInvalidParameter", err)
	}
}

func TestTimeAxisCenteredExactly(t *testing.T) {
	t.Parallel()

	for _, n := range []int{8, 9, 256, 257} {
		g, err := New(n, 1e-12, 0)
		if err != nil {
			t.Fatalf("New(%d): %v", n, err)
		}
		var sum float64
		for _, t := range g.Time() {
			sum += t
		}
		if mean := sum / float64(n); math.Abs(mean) > 1e-25 {
			t.Errorf("N=%d: mean(t) = %g, want exactly 0", n, mean)
		}
		tm := g.Time()
		for i := 1; i < n; i++ {
			if diff := tm[i] - tm[i-1]; math.Abs(diff-g.Dt) > 1e-25 {
				t.Errorf("N=%d: non-uniform spacing at %d: %g, want %g", n, i, diff, g.Dt)
			}
		}
	}
}

func TestFreqAxisMatchesFFTFreqConvention(t *testing.T) {
	t.Parallel()

	// numpy.fft.fftshift(numpy.fft.fftfreq(4)) == [-0.5, -0.25, 0, 0.25]
	g, err := New(4, 1.0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []float64{-0.5, -0.25, 0, 0.25}
	got := g.Freq()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Freq() = %v, want %v", got, want)
		}
	}
}

func TestDescribeDoesNotPanic(t *testing.T) {
	t.Parallel()
	g, err := New(16, 1e-12, 193.4e12)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Describe(discard{})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
