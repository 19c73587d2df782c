package synspec

import (
	"bufio"
	"fmt"
	"io"
)

// ReadLineList decodes a whole line-list file (fort.19 and friends) by
// reading entries until the input is exhausted. Each entry consumes one or
// two physical lines; blank lines between entries are skipped. Order is
// preserved, since downstream line-opacity processing is order sensitive.
func ReadLineList(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	var lines []Line
	for {
		l, ok, err := decodeLineEntry(next)
		if err != nil {
			return nil, fmt.Errorf("line entry %d: %w", len(lines)+1, err)
		}
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteLineList encodes the entries in sequence order.
func WriteLineList(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for i := range lines {
		if _, err := bw.WriteString(lines[i].String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
