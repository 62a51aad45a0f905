package runconfig

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader reads a RunConfig from CSV rows written by Writer, keying each data
// row's fields by the column names declared in that record type's most
// recent header row rather than by position.
type Reader struct {
	r       *csv.Reader
	headers map[string][]string // tag -> column names, in file order
}

// NewReader wraps r in a csv.Reader configured to tolerate a variable
// number of fields per row, since header and data rows of the grid, segment,
// pulse and step record types each have a different column count.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &Reader{r: cr, headers: make(map[string][]string)}
}

// ReadRunConfig reads every row until EOF and assembles a RunConfig.
func (rr *Reader) ReadRunConfig() (*RunConfig, error) {
	var cfg RunConfig
	var haveGrid, havePulse, haveStep bool

	for {
		row, err := rr.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		if len(row) == 0 {
			continue
		}

		if tag, ok := strings.CutPrefix(row[0], headerPrefix); ok {
			rr.headers[tag] = row[1:]
			continue
		}

		switch row[0] {
		case tagGrid, tagSegment, tagPulse, tagStep:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, row[0])
		}

		rec, err := rr.namedRow(row)
		if err != nil {
			return nil, err
		}

		switch row[0] {
		case tagGrid:
			g, err := parseGridRow(rec)
			if err != nil {
				return nil, err
			}
			cfg.Grid = g
			haveGrid = true
		case tagSegment:
			seg, err := parseSegmentRow(rec)
			if err != nil {
				return nil, err
			}
			cfg.Segments = append(cfg.Segments, seg)
		case tagPulse:
			p, err := parsePulseRow(rec)
			if err != nil {
				return nil, err
			}
			cfg.Pulse = p
			havePulse = true
		case tagStep:
			s, err := parseStepRow(rec)
			if err != nil {
				return nil, err
			}
			cfg.Step = s
			haveStep = true
		}
	}

	if !haveGrid {
		return nil, ErrMissingGrid
	}
	if len(cfg.Segments) == 0 {
		return nil, ErrNoSegments
	}
	if !havePulse {
		return nil, ErrMissingPulse
	}
	if !haveStep {
		return nil, ErrMissingStep
	}

	return &cfg, nil
}

// record is a data row's fields keyed by the column names declared in its
// record type's header row.
type record map[string]string

// namedRow pairs row's fields (after the leading tag) with the column names
// from that tag's most recently read header row, so a field is looked up by
// name regardless of its position in the row.
func (rr *Reader) namedRow(row []string) (record, error) {
	tag := row[0]
	columns, ok := rr.headers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: tag %q", ErrMissingHeader, tag)
	}
	fields := row[1:]
	if len(fields) != len(columns) {
		return nil, fmt.Errorf("%w: row for %q has %d fields, header declares %d columns",
			ErrMalformedRow, tag, len(fields), len(columns))
	}
	rec := make(record, len(columns))
	for i, name := range columns {
		rec[name] = fields[i]
	}
	return rec, nil
}

func (rec record) get(column string) (string, error) {
	v, ok := rec[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return v, nil
}

func (rec record) getFloat(column string) (float64, error) {
	v, err := rec.get(column)
	if err != nil {
		return 0, err
	}
	x, err := parseFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, column, err)
	}
	return x, nil
}

func (rec record) getInt(column string) (int, error) {
	v, err := rec.get(column)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, column, err)
	}
	return n, nil
}

func (rec record) getBool(column string) (bool, error) {
	v, err := rec.get(column)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, column, err)
	}
	return b, nil
}

func parseGridRow(rec record) (GridConfig, error) {
	n, err := rec.getInt("N")
	if err != nil {
		return GridConfig{}, err
	}
	dt, err := rec.getFloat("Dt")
	if err != nil {
		return GridConfig{}, err
	}
	center, err := rec.getFloat("CenterFrequencyHz")
	if err != nil {
		return GridConfig{}, err
	}
	return GridConfig{N: n, Dt: dt, CenterFrequencyHz: center}, nil
}

func parseSegmentRow(rec record) (SegmentConfig, error) {
	length, err := rec.getFloat("Length")
	if err != nil {
		return SegmentConfig{}, err
	}
	gamma, err := rec.getFloat("Gamma")
	if err != nil {
		return SegmentConfig{}, err
	}
	betaStr, err := rec.get("Beta")
	if err != nil {
		return SegmentConfig{}, err
	}
	beta, err := splitFloats(betaStr)
	if err != nil {
		return SegmentConfig{}, fmt.Errorf("%w: column \"Beta\": %w", ErrMalformedRow, err)
	}
	alphaDB, err := rec.getFloat("AlphaDB")
	if err != nil {
		return SegmentConfig{}, err
	}
	selfSteepening, err := rec.getBool("SelfSteepening")
	if err != nil {
		return SegmentConfig{}, err
	}
	return SegmentConfig{Length: length, Gamma: gamma, Beta: beta, AlphaDB: alphaDB, SelfSteepening: selfSteepening}, nil
}

func parsePulseRow(rec record) (PulseConfig, error) {
	shape, err := rec.get("Shape")
	if err != nil {
		return PulseConfig{}, err
	}
	peak, err := rec.getFloat("PeakAmplitude")
	if err != nil {
		return PulseConfig{}, err
	}
	duration, err := rec.getFloat("DurationS")
	if err != nil {
		return PulseConfig{}, err
	}
	offset, err := rec.getFloat("OffsetS")
	if err != nil {
		return PulseConfig{}, err
	}
	chirp, err := rec.getFloat("Chirp")
	if err != nil {
		return PulseConfig{}, err
	}
	order, err := rec.getInt("Order")
	if err != nil {
		return PulseConfig{}, err
	}
	carrier, err := rec.getFloat("CarrierFreqHz")
	if err != nil {
		return PulseConfig{}, err
	}
	noise, err := rec.getFloat("NoiseAmplitudeW")
	if err != nil {
		return PulseConfig{}, err
	}
	return PulseConfig{
		Shape: shape, PeakAmplitude: peak, DurationS: duration, OffsetS: offset,
		Chirp: chirp, Order: order, CarrierFreqHz: carrier, NoiseAmplitudeW: noise,
	}, nil
}

func parseStepRow(rec record) (StepConfig, error) {
	mode, err := rec.get("Mode")
	if err != nil {
		return StepConfig{}, err
	}
	approach, err := rec.get("Approach")
	if err != nil {
		return StepConfig{}, err
	}
	count, err := rec.getInt("Count")
	if err != nil {
		return StepConfig{}, err
	}
	safety, err := rec.getFloat("SafetyFactor")
	if err != nil {
		return StepConfig{}, err
	}
	return StepConfig{Mode: mode, Approach: approach, Count: count, SafetyFactor: safety}, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func splitFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseFloat(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
