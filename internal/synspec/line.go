package synspec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"isynspec/internal/fortio"
)

// Column layout of the first physical record of a line entry, from the
// SYNSPEC "NEW format" line list documentation.
var lineSpans = []fortio.Span{
	{Start: 0, End: 10},  // alam
	{Start: 10, End: 16}, // anum
	{Start: 16, End: 23}, // gf
	{Start: 23, End: 35}, // excl
	{Start: 35, End: 39}, // ql
	{Start: 39, End: 51}, // excu
	{Start: 51, End: 55}, // qu
	{Start: 55, End: 63}, // agam
	{Start: 63, End: 70}, // gs
	{Start: 70, End: 77}, // gw
}

// flagSpan holds the continuation flag: everything after the gw column.
var flagSpan = fortio.Span{Start: 77, End: 0}

var lineFieldNames = []string{
	"alam", "anum", "gf", "excl", "ql", "excu", "qu", "agam", "gs", "gw",
}

// Broadening carries the optional second record of a line entry: Stark
// broadening widths at T = 5000, 10000, 20000 and 40000 K plus the three
// control codes. The continuation flag on the first record and the presence
// of this group always agree; there is no partial form.
type Broadening struct {
	WGR1 float64
	WGR2 float64
	WGR3 float64
	WGR4 float64
	ILWN int // NLTE handling: 0 LTE, >0 level index, -1/-2 approximate NLTE
	IUN  int // upper level population: 0 LTE, >0 level index
	IPRF int // Stark method: 0 use GS, <0 use WGR values, >0 special profile
}

// Line is one spectral line entry of a SYNSPEC line list.
type Line struct {
	Alam float64 // wavelength [nm]
	Anum float64 // element and ion code, e.g. 2.00 He I, 26.01 Fe II
	GF   float64 // log gf
	Excl float64 // lower level excitation potential [cm^-1]
	QL   float64 // lower level J quantum number
	Excu float64 // upper level excitation potential [cm^-1]
	QU   float64 // upper level J quantum number
	Agam float64 // radiation damping, 0 for classical
	GS   float64 // Stark broadening, 0 for classical
	GW   float64 // van der Waals broadening, 0 for classical

	// Broadening is nil when the entry has no second record.
	Broadening *Broadening
}

// ElementCode returns the atomic number encoded in Anum.
func (l Line) ElementCode() int {
	return int(l.Anum)
}

// Ionization returns the ionization stage encoded in the fractional part of
// Anum: 0 neutral, 1 first ion, and so on.
func (l Line) Ionization() int {
	return int(math.Round(math.Mod(l.Anum, 1) * 100))
}

// ParseLine decodes a single line entry from text holding one or two
// physical lines.
func ParseLine(text string) (Line, error) {
	rows := strings.Split(text, "\n")
	i := 0
	next := func() (string, bool) {
		if i >= len(rows) {
			return "", false
		}
		row := rows[i]
		i++
		return row, true
	}
	l, ok, err := decodeLineEntry(next)
	if err != nil {
		return Line{}, err
	}
	if !ok {
		return Line{}, fmt.Errorf("%w: empty line entry", fortio.ErrUnexpectedEnd)
	}
	return l, nil
}

// decodeLineEntry consumes one entry from a source of physical lines,
// skipping leading blank lines. ok is false when the source is exhausted
// before any entry starts; a missing continuation record is an error.
func decodeLineEntry(next func() (string, bool)) (Line, bool, error) {
	var first string
	for {
		row, ok := next()
		if !ok {
			return Line{}, false, nil
		}
		if strings.TrimSpace(row) != "" {
			first = row
			break
		}
	}

	values, flag, err := parseFirstRecord(first)
	if err != nil {
		return Line{}, false, err
	}

	l := Line{
		Alam: values[0], Anum: values[1], GF: values[2],
		Excl: values[3], QL: values[4], Excu: values[5], QU: values[6],
		Agam: values[7], GS: values[8], GW: values[9],
	}

	if flag == 1 {
		row, ok := next()
		if !ok {
			return Line{}, false, fmt.Errorf("%w: expected continuation record", fortio.ErrUnexpectedEnd)
		}
		br, err := parseBroadening(row)
		if err != nil {
			return Line{}, false, err
		}
		l.Broadening = &br
	}
	return l, true, nil
}

// parseFirstRecord extracts the ten mandatory values and the continuation
// flag. The fixed-column layout is authoritative, since adjacent fields may
// abut; when the columns do not hold parseable numbers the record is
// re-read as whitespace/comma tokens, which accepts the free-format
// spelling SYNSPEC itself tolerates.
func parseFirstRecord(row string) (values [10]float64, flag int, err error) {
	fields := fortio.Fields(row, lineSpans)
	ok := true
	for i, f := range fields {
		if f == "" {
			ok = false
			break
		}
		v, perr := fortio.ParseFloat(f)
		if perr != nil {
			ok = false
			break
		}
		values[i] = v
	}
	if ok {
		flagField := fortio.Field(row, flagSpan)
		if flagField == "" {
			return values, 0, nil
		}
		flag, err = strconv.Atoi(flagField)
		if err != nil {
			return values, 0, fmt.Errorf("continuation flag: %w: %q", fortio.ErrMalformedNumber, flagField)
		}
		return values, flag, nil
	}

	rd := fortio.NewReader(row)
	for i, name := range lineFieldNames {
		values[i], err = rd.Float(name)
		if err != nil {
			return values, 0, err
		}
	}
	if !rd.More() {
		return values, 0, nil
	}
	flag, err = rd.Int("continuation flag")
	if err != nil {
		return values, 0, err
	}
	return values, flag, nil
}

func parseBroadening(row string) (Broadening, error) {
	var b Broadening
	var err error
	rd := fortio.NewReader(row)
	if b.WGR1, err = rd.Float("wgr1"); err != nil {
		return b, err
	}
	if b.WGR2, err = rd.Float("wgr2"); err != nil {
		return b, err
	}
	if b.WGR3, err = rd.Float("wgr3"); err != nil {
		return b, err
	}
	if b.WGR4, err = rd.Float("wgr4"); err != nil {
		return b, err
	}
	if b.ILWN, err = rd.Int("ilwn"); err != nil {
		return b, err
	}
	if b.IUN, err = rd.Int("iun"); err != nil {
		return b, err
	}
	if b.IPRF, err = rd.Int("iprf"); err != nil {
		return b, err
	}
	return b, nil
}

// Records renders the entry's physical records. The second string is empty
// when the entry has no broadening group, in which case the first record
// carries flag 0 and stands alone.
func (l Line) Records() (string, string) {
	main := fmt.Sprintf("%10.4f%6.2f%7.3f%12.3f%4.1f%12.3f%4.1f%8.2f%7.2f%7.2f",
		l.Alam, l.Anum, l.GF, l.Excl, l.QL, l.Excu, l.QU, l.Agam, l.GS, l.GW)
	if l.Broadening == nil {
		return main + " 0", ""
	}
	b := l.Broadening
	second := fmt.Sprintf("%6.3f %6.3f %6.3f %6.3f %2d %2d %2d",
		b.WGR1, b.WGR2, b.WGR3, b.WGR4, b.ILWN, b.IUN, b.IPRF)
	return main + " 1", second
}

// String renders the entry as it appears in a line-list file, one or two
// newline-terminated records.
func (l Line) String() string {
	main, second := l.Records()
	if second == "" {
		return main + "\n"
	}
	return main + "\n" + second + "\n"
}
