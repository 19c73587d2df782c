package synspec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"isynspec/internal/fortio"
)

// ModelInput is the header of a SYNSPEC model input file: effective
// temperature and gravity, the LTE and gray-atmosphere switches, and an
// optional NST parameter-file name on the third line.
type ModelInput struct {
	Teff    float64
	LogG    float64
	LTE     bool
	LTGray  bool
	NSTFile string // empty when the third line is blank or absent
}

// ReadModelInput decodes the model input header. Logical switches follow
// the Fortran convention of a leading T or F; anything after a "!" on the
// filename line is a comment.
func ReadModelInput(r io.Reader) (ModelInput, error) {
	sc := bufio.NewScanner(r)

	var m ModelInput
	if !sc.Scan() {
		return m, fmt.Errorf("%w: missing teff/logg line", fortio.ErrUnexpectedEnd)
	}
	rd := fortio.NewReader(sc.Text())
	var err error
	if m.Teff, err = rd.Float("teff"); err != nil {
		return m, err
	}
	if m.LogG, err = rd.Float("logg"); err != nil {
		return m, err
	}

	if !sc.Scan() {
		return m, fmt.Errorf("%w: missing lte/ltgray line", fortio.ErrUnexpectedEnd)
	}
	rd = fortio.NewReader(sc.Text())
	if m.LTE, err = readLogical(rd, "lte"); err != nil {
		return m, err
	}
	if m.LTGray, err = readLogical(rd, "ltgray"); err != nil {
		return m, err
	}

	if sc.Scan() {
		name, _, _ := strings.Cut(sc.Text(), "!")
		m.NSTFile = strings.TrimSpace(name)
	}
	return m, sc.Err()
}

func readLogical(rd *fortio.Reader, field string) (bool, error) {
	tok, ok := rd.Next()
	if !ok {
		return false, fmt.Errorf("%w: missing %s", fortio.ErrUnexpectedEnd, field)
	}
	// Accept both the bare T/F spelling and the full .TRUE./.FALSE. form.
	trimmed := strings.TrimPrefix(strings.ToUpper(tok), ".")
	if trimmed != "" {
		switch trimmed[0] {
		case 'T':
			return true, nil
		case 'F':
			return false, nil
		}
	}
	return false, fmt.Errorf("%s: expected T or F, got %q", field, tok)
}
