package fortio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fortran source emits exponents without the marker letter when the field
// overflows, e.g. "1.23-4" for 1.23E-4. The mantissa may carry a sign and a
// decimal point; the exponent must be signed.
var implicitExponent = regexp.MustCompile(`^([+-]?[0-9]*\.?[0-9]+)([+-][0-9]+)$`)

// ParseFloat interprets tok as a Fortran floating-point literal. Three
// spellings are accepted, tried in order: standard E notation, D notation
// (double precision, same value), and implicit-exponent notation with no
// marker letter. Equivalent mantissa/exponent pairs parse to the same value
// under all three. A token matching none of the grammars returns
// ErrMalformedNumber; it is never coerced to zero.
func ParseFloat(tok string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(tok))

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	if strings.ContainsRune(s, 'D') {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(s, "D", "E"), 64); err == nil {
			return v, nil
		}
	}

	if m := implicitExponent.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1]+"E"+m[2], 64); err == nil {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, tok)
}

// FormatScientific renders v in fixed-width scientific notation,
// right-justified within width. A width of zero or less produces unpadded
// output, six decimal digits unless decimals says otherwise. When decimals
// is negative and a width is given, decimals defaults to width-7, floored
// at zero: the seven
// reserved columns hold the sign, leading digit, decimal point, and a
// marker plus signed two-digit exponent. The double flag swaps the E marker
// for D.
func FormatScientific(v float64, width, decimals int, double bool) string {
	var s string
	if width <= 0 {
		if decimals < 0 {
			decimals = 6
		}
		s = fmt.Sprintf("%.*E", decimals, v)
	} else {
		if decimals < 0 {
			decimals = width - 7
			if decimals < 0 {
				decimals = 0
			}
		}
		s = fmt.Sprintf("%*.*E", width, decimals, v)
	}
	if double {
		s = strings.ReplaceAll(s, "E", "D")
	}
	return s
}
