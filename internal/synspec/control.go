package synspec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"isynspec/internal/fortio"
)

// OperationMode is SYNSPEC's basic mode of operation (imode).
type OperationMode int

const (
	ModeNormal      OperationMode = 0  // normal synthetic spectrum
	ModeFewLines    OperationMode = 1  // spectrum for a few lines (obsolete)
	ModeContinuum   OperationMode = 2  // continuum plus H and He II lines only
	ModeMolecular   OperationMode = 10 // spectrum with molecular lines
	ModeIronCurtain OperationMode = -1 // opacity at standard depth, no transfer
)

// ModelType identifies the input model atmosphere format (inmod).
type ModelType int

const (
	ModelKurucz        ModelType = 0
	ModelTlusty        ModelType = 1
	ModelAccretionDisk ModelType = 2
)

// TransferSolver selects the radiative transfer scheme (ifreq).
type TransferSolver int

const (
	SolverDFE       TransferSolver = 1  // discontinuous finite elements (default)
	SolverFeautrier TransferSolver = 10
)

// AngleSet requests specific intensities at nmu0 angle points.
type AngleSet struct {
	NMu0  int     // number of angle points
	Ang0  float64 // minimum angle cosine
	IFlux int     // flux calculation flag
}

// Control is the fort.55 configuration record steering a synthesis run.
// Field names follow the SYNSPEC source. The molecular-list count of the
// wire format is carried implicitly as len(IUnitM); VTB and Angles are the
// optional trailing groups, absent when nil.
type Control struct {
	IMode OperationMode
	IDStd int // standard depth index
	IPrin int // print detail level

	InMod  ModelType
	Intrpl int // model interpolation flag
	IChang int // model change flag
	IChemC int // chemistry change flag, needs an abundance-change file

	IOphli int // far L-alpha wings treatment (obsolete)
	NunAlp int // L-alpha quasi-molecular satellites
	NunBet int // L-beta satellites
	NunGam int // L-gamma satellites
	NunBal int // H-alpha satellites

	IFreq  TransferSolver
	INLTE  int // 1 NLTE, 0 forced LTE
	IContl int // obsolete
	INList int // obsolete
	IFHe2  int // He II hydrogenic treatment

	IHydPr int // special H line profiles
	IHe1Pr int // special He I line profiles
	IHe2Pr int // special He II line profiles

	Alam0  float64 // starting wavelength [A]
	Alast  float64 // ending wavelength [A]; negative requests vacuum wavelengths
	Cutof0 float64 // line opacity cutoff [A]
	Cutofs float64 // dummy
	Relop  float64 // line rejection threshold
	Space  float64 // maximum wavelength spacing [A]

	IUnitM []int // unit numbers of additional molecular line lists

	VTB    *float64 // turbulent velocity [km/s]; required by Angles
	Angles *AngleSet
}

// Validate checks the record's domain invariants. It runs before any
// encoding output is produced, so an invalid record never yields a partial
// file.
func (c Control) Validate() error {
	// Alast's sign is the air/vacuum flag, so the bound check uses its
	// magnitude.
	if c.Alam0 > math.Abs(c.Alast) {
		return fmt.Errorf("%w: alam0 (%g) exceeds |alast| (%g)", fortio.ErrInvariant, c.Alam0, math.Abs(c.Alast))
	}
	if c.Angles != nil {
		if c.VTB == nil {
			return fmt.Errorf("%w: angle-dependent output requires vtb", fortio.ErrInvariant)
		}
		if c.Angles.NMu0 < 0 {
			return fmt.Errorf("%w: negative nmu0 %d", fortio.ErrInvariant, c.Angles.NMu0)
		}
	}
	return nil
}

// ReadControl decodes a fort.55 file. Fields are consumed strictly in
// declaration order as tokens; the two trailing groups are present exactly
// when tokens remain at their position, the one place where end of stream
// is a valid outcome rather than a truncation error.
func ReadControl(r io.Reader) (Control, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Control{}, err
	}
	rd := fortio.NewReader(string(data))

	var c Control
	ints := []struct {
		dst  *int
		name string
	}{
		{&c.IDStd, "idstd"}, {&c.IPrin, "iprin"},
		{&c.Intrpl, "intrpl"}, {&c.IChang, "ichang"}, {&c.IChemC, "ichemc"},
		{&c.IOphli, "iophli"}, {&c.NunAlp, "nunalp"}, {&c.NunBet, "nunbet"},
		{&c.NunGam, "nungam"}, {&c.NunBal, "nunbal"},
		{&c.INLTE, "inlte"}, {&c.IContl, "icontl"}, {&c.INList, "inlist"}, {&c.IFHe2, "ifhe2"},
		{&c.IHydPr, "ihydpr"}, {&c.IHe1Pr, "ihe1pr"}, {&c.IHe2Pr, "ihe2pr"},
	}

	imode, err := rd.Int("imode")
	if err != nil {
		return Control{}, err
	}
	c.IMode = OperationMode(imode)
	for _, f := range ints[:2] {
		if *f.dst, err = rd.Int(f.name); err != nil {
			return Control{}, err
		}
	}

	inmod, err := rd.Int("inmod")
	if err != nil {
		return Control{}, err
	}
	c.InMod = ModelType(inmod)
	for _, f := range ints[2:10] {
		if *f.dst, err = rd.Int(f.name); err != nil {
			return Control{}, err
		}
	}

	ifreq, err := rd.Int("ifreq")
	if err != nil {
		return Control{}, err
	}
	c.IFreq = TransferSolver(ifreq)
	for _, f := range ints[10:] {
		if *f.dst, err = rd.Int(f.name); err != nil {
			return Control{}, err
		}
	}

	floats := []struct {
		dst  *float64
		name string
	}{
		{&c.Alam0, "alam0"}, {&c.Alast, "alast"}, {&c.Cutof0, "cutof0"},
		{&c.Cutofs, "cutofs"}, {&c.Relop, "relop"}, {&c.Space, "space"},
	}
	for _, f := range floats {
		if *f.dst, err = rd.Float(f.name); err != nil {
			return Control{}, err
		}
	}

	if err := readMolecularList(rd, &c); err != nil {
		return Control{}, err
	}

	// Optional trailing groups. Exhaustion here is "group absent", not an
	// error; a group that starts must complete.
	if !rd.More() {
		return c, nil
	}
	vtb, err := rd.Float("vtb")
	if err != nil {
		return Control{}, err
	}
	c.VTB = &vtb

	if !rd.More() {
		return c, nil
	}
	var a AngleSet
	if a.NMu0, err = rd.Int("nmu0"); err != nil {
		return Control{}, err
	}
	if a.Ang0, err = rd.Float("ang0"); err != nil {
		return Control{}, err
	}
	if a.IFlux, err = rd.Int("iflux"); err != nil {
		return Control{}, err
	}
	c.Angles = &a
	return c, nil
}

// readMolecularList reads the declared count and then either exactly that
// many unit numbers or, for a zero count, the placeholder token Fortran
// writes in place of an empty list ("0i" conventionally; any token ending
// in the i marker is accepted).
func readMolecularList(rd *fortio.Reader, c *Control) error {
	n, err := rd.Int("nmlist")
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative nmlist %d", fortio.ErrInvariant, n)
	}
	if n == 0 {
		tok, ok := rd.Next()
		if !ok {
			return fmt.Errorf("%w: missing empty-list placeholder after nmlist 0", fortio.ErrUnexpectedEnd)
		}
		if !strings.HasSuffix(tok, "i") && !strings.HasSuffix(tok, "I") {
			return fmt.Errorf("%w: expected empty-list placeholder after nmlist 0, got %q", fortio.ErrSentinel, tok)
		}
		return nil
	}
	units := make([]int, 0, n)
	for i := 0; i < n; i++ {
		u, err := rd.Int("iunitm")
		if err != nil {
			if errors.Is(err, fortio.ErrUnexpectedEnd) {
				return fmt.Errorf("%w: nmlist declares %d units, found %d", fortio.ErrArityMismatch, n, i)
			}
			return err
		}
		units = append(units, u)
	}
	c.IUnitM = units
	return nil
}

// WriteControl encodes the record as a fort.55 file, one line per logical
// row. Validate runs first so an invalid record produces no output at all.
func WriteControl(w io.Writer, c Control) error {
	if err := c.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", int(c.IMode), c.IDStd, c.IPrin)
	fmt.Fprintf(bw, "%d %d %d %d\n", int(c.InMod), c.Intrpl, c.IChang, c.IChemC)
	fmt.Fprintf(bw, "%d %d %d %d %d\n", c.IOphli, c.NunAlp, c.NunBet, c.NunGam, c.NunBal)
	fmt.Fprintf(bw, "%d %d %d %d %d\n", int(c.IFreq), c.INLTE, c.IContl, c.INList, c.IFHe2)
	fmt.Fprintf(bw, "%d %d %d\n", c.IHydPr, c.IHe1Pr, c.IHe2Pr)
	fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
		formatG(c.Alam0), formatG(c.Alast), formatG(c.Cutof0),
		formatG(c.Cutofs), formatG(c.Relop), formatG(c.Space))

	if len(c.IUnitM) > 0 {
		parts := make([]string, 0, len(c.IUnitM)+1)
		parts = append(parts, strconv.Itoa(len(c.IUnitM)))
		for _, u := range c.IUnitM {
			parts = append(parts, strconv.Itoa(u))
		}
		fmt.Fprintln(bw, strings.Join(parts, " "))
	} else {
		fmt.Fprintln(bw, "0 0i")
	}

	if c.VTB != nil {
		fmt.Fprintln(bw, formatG(*c.VTB))
	}
	if c.Angles != nil {
		fmt.Fprintf(bw, "%d %s %d\n", c.Angles.NMu0, formatG(c.Angles.Ang0), c.Angles.IFlux)
	}
	return bw.Flush()
}

func formatG(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
