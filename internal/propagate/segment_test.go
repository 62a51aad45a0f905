package propagate

import (
	"math"
	"testing"

	"github.com/syqtju/nlse-ssfm/internal/fiber"
	"github.com/syqtju/nlse-ssfm/internal/grid"
	"github.com/syqtju/nlse-ssfm/internal/step"
)

func gaussian(g *grid.Grid, amplitude, t0 float64) []complex128 {
	out := make([]complex128, g.N)
	for i, t := range g.Time() {
		d := (t - t0) / t0
		out[i] = complex(amplitude*math.Exp(-0.5*d*d), 0)
	}
	return out
}

func TestSegmentRunRecordsEndpoints(t *testing.T) {
	t.Parallel()

	g, err := grid.New(256, 5e-12, 0)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	seg, err := fiber.NewSegment(1e3, 0, nil, 0, false)
	if err != nil {
		t.Fatalf("fiber.NewSegment: %v", err)
	}
	sched, err := step.Compute(seg, 1e-3, 50e-12, g.Dt, step.Config{
		Mode:         step.Fixed,
		Approach:     step.Approach{Kind: step.FixedCount, Count: 3},
		SafetyFactor: 1,
	})
	if err != nil {
		t.Fatalf("step.Compute: %v", err)
	}

	launch := gaussian(g, 1, 50e-12)
	prop := NewSegment(seg, g, 0)
	res, err := prop.Run(launch, sched)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.PulseMatrix) != 2 {
		// degenerate fast path collapses the requested fixed count into one
		// step, so the matrix holds the launch row plus one output row
		t.Fatalf("len(PulseMatrix) = %d, want 2", len(res.PulseMatrix))
	}
	if res.Z[0] != 0 || res.Z[len(res.Z)-1] != seg.L {
		t.Fatalf("Z = %v, want endpoints [0 %g]", res.Z, seg.L)
	}
}

func TestSegmentRunRejectsSecondCall(t *testing.T) {
	t.Parallel()

	g, err := grid.New(64, 5e-12, 0)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	seg, err := fiber.NewSegment(1e3, 0, nil, 0, false)
	if err != nil {
		t.Fatalf("fiber.NewSegment: %v", err)
	}
	sched := &step.Schedule{Z: []float64{0, seg.L}, DZ: []float64{seg.L}}
	launch := gaussian(g, 1, 20e-12)
	prop := NewSegment(seg, g, 0)

	if _, err := prop.Run(launch, sched); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := prop.Run(launch, sched); err == nil {
		t.Fatalf("second Run succeeded, want error")
	}
}

func TestSegmentRunPreservesEnergyWithoutLoss(t *testing.T) {
	t.Parallel()

	g, err := grid.New(512, 2e-12, 0)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	seg, err := fiber.NewSegment(500, 1.3e-3, []float64{-21e-27}, 0, false)
	if err != nil {
		t.Fatalf("fiber.NewSegment: %v", err)
	}
	sched, err := step.Compute(seg, 1e-3, 30e-12, g.Dt, step.Config{
		Mode:         step.Fixed,
		Approach:     step.Approach{Kind: step.FixedCount, Count: 8},
		SafetyFactor: 1,
	})
	if err != nil {
		t.Fatalf("step.Compute: %v", err)
	}

	launch := gaussian(g, 1, 30e-12)
	inputEnergy := grid.Energy(g.Time(), launch)

	prop := NewSegment(seg, g, 1e-6)
	res, err := prop.Run(launch, sched)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := res.PulseMatrix[len(res.PulseMatrix)-1]
	outEnergy := grid.Energy(g.Time(), out)

	if eps := math.Abs(inputEnergy/outEnergy - 1); eps > 1e-4 {
		t.Errorf("lossless propagation changed energy by %.3e, want < 1e-4", eps)
	}
}
