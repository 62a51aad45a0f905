package propagate

import (
	"fmt"
	"math"

	"github.com/syqtju/nlse-ssfm/internal/fiber"
	"github.com/syqtju/nlse-ssfm/internal/grid"
	"github.com/syqtju/nlse-ssfm/internal/step"
)

// ScheduleFunc computes the step schedule for one segment, given the field
// launched into it (peak power and characteristic duration derived by the
// caller from the previous segment's output).
type ScheduleFunc func(seg *fiber.Segment, pMax, durationS float64) (*step.Schedule, error)

// Link drives a fiber.Link's segments in order, recomputing the schedule at
// each segment boundary from the field handed off by the previous segment.
type Link struct {
	link *fiber.Link
	grid *grid.Grid
	tol  float64
	sf   ScheduleFunc
}

// NewLink builds a Link propagator over lk on g. sf is invoked once per
// segment to size that segment's steps from the field actually launched
// into it (spec §4.5: duration and peak power are recomputed at every
// segment boundary, not carried forward from the original input).
func NewLink(lk *fiber.Link, g *grid.Grid, tol float64, sf ScheduleFunc) *Link {
	return &Link{link: lk, grid: g, tol: tol, sf: sf}
}

// Run propagates launch across every segment of the link in order. It
// returns the Result of every segment that completed, and aborts on the
// first segment that fails, returning the partial results alongside the
// error so callers can inspect how far propagation got.
func (l *Link) Run(launch []complex128) ([]*Result, error) {
	results := make([]*Result, 0, l.link.Len())

	field := make([]complex128, len(launch))
	copy(field, launch)

	for i, seg := range l.link.Segments {
		pMax, duration := peakPowerAndDuration(l.grid, field)

		sched, err := l.sf(seg, pMax, duration)
		if err != nil {
			return results, fmt.Errorf("segment %d: %w", i, err)
		}

		prop := NewSegment(seg, l.grid, l.tol)
		res, err := prop.Run(field, sched)
		if err != nil {
			return results, fmt.Errorf("segment %d: %w", i, err)
		}
		results = append(results, res)

		field = res.PulseMatrix[len(res.PulseMatrix)-1]
	}

	return results, nil
}

// peakPowerAndDuration derives the peak power (W) and an RMS-based
// characteristic duration (s) of field on g's time axis, the two quantities
// the step schedule's cautious/approx formulas are sized from.
func peakPowerAndDuration(g *grid.Grid, field []complex128) (pMax, duration float64) {
	power := grid.Power(field)
	for _, p := range power {
		if p > pMax {
			pMax = p
		}
	}

	energy := grid.Energy(g.Time(), field)
	if energy == 0 || pMax == 0 {
		return pMax, 0
	}

	var meanT float64
	t := g.Time()
	for i, p := range power {
		meanT += t[i] * p * g.Dt
	}
	meanT /= energy

	var variance float64
	for i, p := range power {
		d := t[i] - meanT
		variance += d * d * p * g.Dt
	}
	variance /= energy
	if variance < 0 {
		variance = 0
	}
	duration = math.Sqrt(variance)
	return pMax, duration
}
