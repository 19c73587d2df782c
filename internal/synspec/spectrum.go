package synspec

import (
	"bufio"
	"fmt"
	"io"

	"isynspec/internal/fortio"
)

// SpectrumPoint is one sample of a synthesized or continuum spectrum.
type SpectrumPoint struct {
	Wavelength float64
	Flux       float64
}

// ReadSpectrum decodes a two-column wavelength/flux table, the format of
// the fort.7 spectrum and fort.17 continuum outputs. Values are free-format
// Fortran numbers; a trailing unpaired wavelength fails the decode.
func ReadSpectrum(r io.Reader) ([]SpectrumPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rd := fortio.NewReader(string(data))

	var points []SpectrumPoint
	for rd.More() {
		wl, err := rd.Float("wavelength")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(points)+1, err)
		}
		flux, err := rd.Float("flux")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(points)+1, err)
		}
		points = append(points, SpectrumPoint{Wavelength: wl, Flux: flux})
	}
	return points, nil
}

// WriteSpectrum encodes one point per line, wavelength first.
func WriteSpectrum(w io.Writer, points []SpectrumPoint) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		flux := fortio.FormatScientific(p.Flux, 15, 6, false)
		if _, err := fmt.Fprintf(bw, "%12.4f %s\n", p.Wavelength, flux); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EquivalentWidthBin is one wavelength interval of the fort.16 equivalent
// width output: the interval bounds, the equivalent width, the modified
// equivalent width with emission features cut off, and the running sums of
// both.
type EquivalentWidthBin struct {
	WaveStart float64
	WaveEnd   float64
	EqW       float64
	MEqW      float64
	CumEqW    float64
	CumMEqW   float64
}

// ReadEquivalentWidths decodes a fort.16 table of six-column rows.
func ReadEquivalentWidths(r io.Reader) ([]EquivalentWidthBin, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rd := fortio.NewReader(string(data))

	var bins []EquivalentWidthBin
	for rd.More() {
		var bin EquivalentWidthBin
		cols := []struct {
			dst  *float64
			name string
		}{
			{&bin.WaveStart, "wave start"}, {&bin.WaveEnd, "wave end"},
			{&bin.EqW, "eqw"}, {&bin.MEqW, "meqw"},
			{&bin.CumEqW, "cumulative eqw"}, {&bin.CumMEqW, "cumulative meqw"},
		}
		for _, col := range cols {
			v, err := rd.Float(col.name)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(bins)+1, err)
			}
			*col.dst = v
		}
		bins = append(bins, bin)
	}
	return bins, nil
}
