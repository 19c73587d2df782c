package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"isynspec/internal/synspec"
)

func newLinesCommand(ctx *commandContext) *cobra.Command {
	linesCmd := &cobra.Command{
		Use:   "lines",
		Short: "Inspect and reformat atomic line lists",
	}

	linesCmd.AddCommand(newLinesShowCommand(ctx))
	linesCmd.AddCommand(newLinesFmtCommand(ctx))

	return linesCmd
}

func newLinesShowCommand(ctx *commandContext) *cobra.Command {
	var rangeFlag string
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display the lines of a line-list file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLineListFile(args[0])
			if err != nil {
				return err
			}

			if rangeFlag != "" {
				lo, hi, err := parseRange(rangeFlag)
				if err != nil {
					return err
				}
				lines = filterLines(lines, lo, hi)
			}

			out := cmd.OutOrStdout()
			if plain || !isTerminal(out) {
				return synspec.WriteLineList(out, lines)
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Wavelength", "Species", "Ion", "log gf", "E low", "E up", "Broadened"},
				buildLineRows(lines),
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d lines\n", len(lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Wavelength range filter, e.g. 4000:5000")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print fixed-format records instead of a table")
	return cmd
}

func newLinesFmtCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a line list in canonical fixed columns",
		Long: "Reads a line list in any accepted layout, including free-format\n" +
			"whitespace or comma separated records, and writes it back with the\n" +
			"canonical column positions.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLineListFile(args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				return synspec.WriteLineList(cmd.OutOrStdout(), lines)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			if err := synspec.WriteLineList(f, lines); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(lines), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (default stdout)")
	return cmd
}

func readLineListFile(path string) ([]synspec.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open line list: %w", err)
	}
	defer f.Close()

	lines, err := synspec.ReadLineList(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func filterLines(lines []synspec.Line, lo, hi float64) []synspec.Line {
	filtered := make([]synspec.Line, 0, len(lines))
	for _, line := range lines {
		if line.Alam >= lo && line.Alam <= hi {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

func buildLineRows(lines []synspec.Line) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			strconv.FormatFloat(line.Alam, 'f', 4, 64),
			strconv.Itoa(line.ElementCode()),
			strconv.Itoa(line.Ionization()),
			strconv.FormatFloat(line.GF, 'f', 3, 64),
			strconv.FormatFloat(line.Excl, 'f', 3, 64),
			strconv.FormatFloat(line.Excu, 'f', 3, 64),
			yesNo(line.Broadening != nil),
		})
	}
	return rows
}

func parseRange(value string) (lo, hi float64, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q: expected lo:hi", value)
	}
	lo, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q", parts[0])
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q", parts[1])
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("invalid range %q: start exceeds end", value)
	}
	return lo, hi, nil
}
