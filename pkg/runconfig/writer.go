package runconfig

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Writer writes a RunConfig as CSV rows: a "#tag,column,column,..." header
// row ahead of each record type's data rows, so the file documents its own
// layout and a loader can validate column names instead of trusting
// position.
type Writer struct {
	w *csv.Writer
}

// NewWriter wraps w in a csv.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteRunConfig writes every row of cfg and flushes the underlying writer.
func (wr *Writer) WriteRunConfig(cfg *RunConfig) error {
	if err := wr.writeHeader(tagGrid, gridColumns); err != nil {
		return err
	}
	if err := wr.w.Write(append([]string{tagGrid}, strconv.Itoa(cfg.Grid.N), f(cfg.Grid.Dt), f(cfg.Grid.CenterFrequencyHz))); err != nil {
		return err
	}

	if err := wr.writeHeader(tagSegment, segmentColumns); err != nil {
		return err
	}
	for _, seg := range cfg.Segments {
		row := []string{
			tagSegment,
			f(seg.Length),
			f(seg.Gamma),
			joinFloats(seg.Beta),
			f(seg.AlphaDB),
			strconv.FormatBool(seg.SelfSteepening),
		}
		if err := wr.w.Write(row); err != nil {
			return err
		}
	}

	if err := wr.writeHeader(tagPulse, pulseColumns); err != nil {
		return err
	}
	p := cfg.Pulse
	if err := wr.w.Write([]string{
		tagPulse, p.Shape, f(p.PeakAmplitude), f(p.DurationS), f(p.OffsetS),
		f(p.Chirp), strconv.Itoa(p.Order), f(p.CarrierFreqHz), f(p.NoiseAmplitudeW),
	}); err != nil {
		return err
	}

	if err := wr.writeHeader(tagStep, stepColumns); err != nil {
		return err
	}
	s := cfg.Step
	if err := wr.w.Write([]string{
		tagStep, s.Mode, s.Approach, strconv.Itoa(s.Count), f(s.SafetyFactor),
	}); err != nil {
		return err
	}

	wr.w.Flush()
	return wr.w.Error()
}

func (wr *Writer) writeHeader(tag string, columns []string) error {
	return wr.w.Write(append([]string{headerPrefix + tag}, columns...))
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = f(x)
	}
	return strings.Join(parts, ";")
}
