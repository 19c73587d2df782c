package synspec

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"isynspec/internal/fortio"
)

// AbundanceChange overrides the model-atmosphere abundance of one element.
type AbundanceChange struct {
	AtomicNumber int
	Abundance    float64
}

// ReadAbundanceChanges decodes an abundance-change file (fort.56): a count
// followed by exactly that many (atomic number, abundance) pairs. The
// declared count is binding; missing or surplus pairs fail the decode.
func ReadAbundanceChanges(r io.Reader) ([]AbundanceChange, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rd := fortio.NewReader(string(data))

	n, err := rd.Int("nchang")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative change count %d", fortio.ErrInvariant, n)
	}

	changes := make([]AbundanceChange, 0, n)
	for i := 0; i < n; i++ {
		iatom, err := rd.Int("iatom")
		if err != nil {
			if errors.Is(err, fortio.ErrUnexpectedEnd) {
				return nil, fmt.Errorf("%w: count declares %d pairs, found %d", fortio.ErrArityMismatch, n, i)
			}
			return nil, fmt.Errorf("pair %d: %w", i+1, err)
		}
		if iatom <= 0 {
			return nil, fmt.Errorf("%w: atomic number %d in pair %d", fortio.ErrInvariant, iatom, i+1)
		}
		abn, err := rd.Float("abn")
		if err != nil {
			if errors.Is(err, fortio.ErrUnexpectedEnd) {
				return nil, fmt.Errorf("%w: count declares %d pairs, found %d", fortio.ErrArityMismatch, n, i)
			}
			return nil, fmt.Errorf("pair %d: %w", i+1, err)
		}
		changes = append(changes, AbundanceChange{AtomicNumber: iatom, Abundance: abn})
	}
	if rd.More() {
		tok, _ := rd.Next()
		return nil, fmt.Errorf("%w: count declares %d pairs but input continues at %q", fortio.ErrArityMismatch, n, tok)
	}
	return changes, nil
}

// WriteAbundanceChanges encodes the count in a five-character field, then
// one line per pair with the atomic number right-justified and the
// abundance in three-decimal scientific notation.
func WriteAbundanceChanges(w io.Writer, changes []AbundanceChange) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%5d\n", len(changes)); err != nil {
		return err
	}
	for _, ch := range changes {
		abn := fortio.FormatScientific(ch.Abundance, 0, 3, false)
		if _, err := fmt.Fprintf(bw, "%3d %s\n", ch.AtomicNumber, abn); err != nil {
			return err
		}
	}
	return bw.Flush()
}
