package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"isynspec/internal/fortio"
	"isynspec/internal/synspec"
)

func newAbundCommand(ctx *commandContext) *cobra.Command {
	abundCmd := &cobra.Command{
		Use:   "abund",
		Short: "Inspect abundance-change files",
	}

	abundCmd.AddCommand(newAbundShowCommand(ctx))

	return abundCmd
}

func newAbundShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Display abundance overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open abundance file: %w", err)
			}
			defer f.Close()

			changes, err := synspec.ReadAbundanceChanges(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			rows := make([][]string, 0, len(changes))
			for _, change := range changes {
				rows = append(rows, []string{
					strconv.Itoa(change.AtomicNumber),
					fortio.FormatScientific(change.Abundance, 0, 3, false),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Atom", "Abundance"},
				rows,
				[]columnAlignment{alignRight, alignRight},
			))
			return nil
		},
	}
}
