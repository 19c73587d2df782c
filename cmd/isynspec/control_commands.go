package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"isynspec/internal/synspec"
)

func newControlCommand(ctx *commandContext) *cobra.Command {
	controlCmd := &cobra.Command{
		Use:   "control",
		Short: "Inspect synthesis control files",
	}

	controlCmd.AddCommand(newControlCheckCommand(ctx))
	controlCmd.AddCommand(newControlShowCommand(ctx))

	return controlCmd
}

func newControlCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a control file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := readControlFile(args[0])
			if err != nil {
				return err
			}
			if err := ctl.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%g to %g A)\n", args[0], ctl.Alam0, ctl.Alast)
			return nil
		},
	}
}

func newControlShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Display control parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := readControlFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Parameter", "Value"},
				buildControlRows(ctl),
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func readControlFile(path string) (synspec.Control, error) {
	f, err := os.Open(path)
	if err != nil {
		return synspec.Control{}, fmt.Errorf("open control file: %w", err)
	}
	defer f.Close()

	ctl, err := synspec.ReadControl(f)
	if err != nil {
		return synspec.Control{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ctl, nil
}

func buildControlRows(ctl synspec.Control) [][]string {
	rows := [][]string{
		{"mode", describeMode(ctl.IMode)},
		{"model", describeModel(ctl.InMod)},
		{"solver", describeSolver(ctl.IFreq)},
		{"nlte", yesNo(ctl.INLTE == 1)},
		{"wavelength start", strconv.FormatFloat(ctl.Alam0, 'g', -1, 64)},
		{"wavelength end", strconv.FormatFloat(ctl.Alast, 'g', -1, 64)},
		{"opacity cutoff", strconv.FormatFloat(ctl.Cutof0, 'g', -1, 64)},
		{"rejection threshold", strconv.FormatFloat(ctl.Relop, 'g', -1, 64)},
		{"max spacing", strconv.FormatFloat(ctl.Space, 'g', -1, 64)},
	}

	if len(ctl.IUnitM) > 0 {
		units := make([]string, 0, len(ctl.IUnitM))
		for _, unit := range ctl.IUnitM {
			units = append(units, strconv.Itoa(unit))
		}
		rows = append(rows, []string{"molecular list units", strings.Join(units, ", ")})
	}
	if ctl.VTB != nil {
		rows = append(rows, []string{"turbulent velocity", strconv.FormatFloat(*ctl.VTB, 'g', -1, 64)})
	}
	if ctl.Angles != nil {
		rows = append(rows, []string{"angle points", strconv.Itoa(ctl.Angles.NMu0)})
		rows = append(rows, []string{"minimum mu", strconv.FormatFloat(ctl.Angles.Ang0, 'g', -1, 64)})
		rows = append(rows, []string{"flux flag", strconv.Itoa(ctl.Angles.IFlux)})
	}
	return rows
}

func describeMode(mode synspec.OperationMode) string {
	switch mode {
	case synspec.ModeNormal:
		return "normal"
	case synspec.ModeFewLines:
		return "few lines"
	case synspec.ModeContinuum:
		return "continuum"
	case synspec.ModeMolecular:
		return "molecular"
	case synspec.ModeIronCurtain:
		return "iron curtain"
	default:
		return strconv.Itoa(int(mode))
	}
}

func describeModel(model synspec.ModelType) string {
	switch model {
	case synspec.ModelKurucz:
		return "kurucz"
	case synspec.ModelTlusty:
		return "tlusty"
	case synspec.ModelAccretionDisk:
		return "accretion disk"
	default:
		return strconv.Itoa(int(model))
	}
}

func describeSolver(solver synspec.TransferSolver) string {
	switch solver {
	case synspec.SolverDFE:
		return "discontinuous finite elements"
	case synspec.SolverFeautrier:
		return "feautrier"
	default:
		return strconv.Itoa(int(solver))
	}
}
