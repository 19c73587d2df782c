package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"isynspec/internal/fortio"
	"isynspec/internal/synspec"
)

func newSpectrumCommand(ctx *commandContext) *cobra.Command {
	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Inspect computed spectra",
	}

	spectrumCmd.AddCommand(newSpectrumShowCommand(ctx))
	spectrumCmd.AddCommand(newSpectrumWidthsCommand(ctx))

	return spectrumCmd
}

func newSpectrumShowCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display spectrum points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open spectrum: %w", err)
			}
			defer f.Close()

			points, err := synspec.ReadSpectrum(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			total := len(points)
			if limit > 0 && limit < total {
				points = points[:limit]
			}

			rows := make([][]string, 0, len(points))
			for _, point := range points {
				rows = append(rows, []string{
					strconv.FormatFloat(point.Wavelength, 'f', 4, 64),
					fortio.FormatScientific(point.Flux, 0, 6, false),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Wavelength", "Flux"},
				rows,
				[]columnAlignment{alignRight, alignRight},
			))
			if len(points) < total {
				fmt.Fprintf(out, "Showing %d of %d points\n", len(points), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of points to display (0 = all)")
	return cmd
}

func newSpectrumWidthsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "widths <file>",
		Short: "Display per-interval equivalent widths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open equivalent widths: %w", err)
			}
			defer f.Close()

			bins, err := synspec.ReadEquivalentWidths(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			rows := make([][]string, 0, len(bins))
			for _, bin := range bins {
				rows = append(rows, []string{
					strconv.FormatFloat(bin.WaveStart, 'f', 4, 64),
					strconv.FormatFloat(bin.WaveEnd, 'f', 4, 64),
					fortio.FormatScientific(bin.EqW, 0, 4, false),
					fortio.FormatScientific(bin.MEqW, 0, 4, false),
					fortio.FormatScientific(bin.CumEqW, 0, 4, false),
					fortio.FormatScientific(bin.CumMEqW, 0, 4, false),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"From", "To", "EqW", "Mod EqW", "Cum EqW", "Cum Mod EqW"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
