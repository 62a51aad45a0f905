// Package runconfig reads and writes the parameters of a single solver run
// — grid, fiber link, launched pulse, and step schedule — as a small
// human-readable CSV file, so a run can be archived and replayed exactly.
package runconfig

import (
	"fmt"

	"github.com/syqtju/nlse-ssfm/internal/ssfmerr"
)

// Row tags identify which kind of record a CSV row holds. A header row for
// tag "x" is written as "#x" followed by its column names; every data row
// that follows, tagged plain "x", is keyed by those column names rather
// than by position.
const (
	tagGrid    = "grid"
	tagSegment = "segment"
	tagPulse   = "pulse"
	tagStep    = "step"

	headerPrefix = "#"
)

// Column names, one set per record type, written in the header row and used
// by the reader to look up fields by name instead of position.
var (
	gridColumns    = []string{"N", "Dt", "CenterFrequencyHz"}
	segmentColumns = []string{"Length", "Gamma", "Beta", "AlphaDB", "SelfSteepening"}
	pulseColumns   = []string{"Shape", "PeakAmplitude", "DurationS", "OffsetS", "Chirp", "Order", "CarrierFreqHz", "NoiseAmplitudeW"}
	stepColumns    = []string{"Mode", "Approach", "Count", "SafetyFactor"}
)

// CurrentVersion is the config format version number. Writer does not write
// it into the file and Reader does not check it.
const CurrentVersion = 1

// Errors specific to malformed run configuration files, all wrapping
// ssfmerr.ErrPersistence so callers can match on the shared sentinel.
var (
	ErrMissingGrid   = fmt.Errorf("%w: run config has no grid row", ssfmerr.ErrPersistence)
	ErrMissingPulse  = fmt.Errorf("%w: run config has no pulse row", ssfmerr.ErrPersistence)
	ErrMissingStep   = fmt.Errorf("%w: run config has no step row", ssfmerr.ErrPersistence)
	ErrNoSegments    = fmt.Errorf("%w: run config has no fiber segment rows", ssfmerr.ErrPersistence)
	ErrMalformedRow  = fmt.Errorf("%w: malformed row", ssfmerr.ErrPersistence)
	ErrUnknownTag    = fmt.Errorf("%w: unrecognized row tag", ssfmerr.ErrPersistence)
	ErrMissingHeader = fmt.Errorf("%w: data row with no preceding header", ssfmerr.ErrPersistence)
	ErrUnknownColumn = fmt.Errorf("%w: unrecognized or missing column", ssfmerr.ErrPersistence)
)

// GridConfig mirrors the constructor arguments of grid.New.
type GridConfig struct {
	N                 int
	Dt                float64
	CenterFrequencyHz float64
}

// SegmentConfig mirrors the constructor arguments of fiber.NewSegment.
type SegmentConfig struct {
	Length         float64
	Gamma          float64
	Beta           []float64
	AlphaDB        float64
	SelfSteepening bool
}

// PulseConfig mirrors pulse.Params, minus the random seed (callers choose
// the seed at replay time, not at persistence time, so rerunning a config
// with a different seed is a one-line change).
type PulseConfig struct {
	Shape           string
	PeakAmplitude   float64
	DurationS       float64
	OffsetS         float64
	Chirp           float64
	Order           int
	CarrierFreqHz   float64
	NoiseAmplitudeW float64
}

// StepConfig mirrors step.Config.
type StepConfig struct {
	Mode         string // "fixed" or "variable"
	Approach     string // "count", "cautious", or "approx"
	Count        int    // valid when Approach == "count"
	SafetyFactor float64
}

// RunConfig is the complete, round-trippable description of one solver run.
type RunConfig struct {
	Grid     GridConfig
	Segments []SegmentConfig
	Pulse    PulseConfig
	Step     StepConfig
}
