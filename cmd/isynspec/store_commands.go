package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"isynspec/internal/linestore"
	"isynspec/internal/synspec"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the line-list database",
	}

	storeCmd.AddCommand(newStoreImportCommand(ctx))
	storeCmd.AddCommand(newStoreListCommand(ctx))
	storeCmd.AddCommand(newStoreQueryCommand(ctx))
	storeCmd.AddCommand(newStoreExportCommand(ctx))
	storeCmd.AddCommand(newStoreDeleteCommand(ctx))

	return storeCmd
}

func newStoreImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a line-list file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			lines, err := readLineListFile(path)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *linestore.Store) error {
				if err := store.Import(cmd.Context(), name, lines); err != nil {
					return err
				}
				ctx.ensureLogger().Info("imported line list", "name", name, "lines", len(lines))
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lines as %q\n", len(lines), name)
				return nil
			})
		},
	}
}

func newStoreListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored line lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *linestore.Store) error {
				infos, err := store.Lists(cmd.Context())
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Store is empty")
					return nil
				}

				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{
						info.Name,
						strconv.Itoa(info.Lines),
						strconv.FormatFloat(info.MinAlam, 'f', 4, 64),
						strconv.FormatFloat(info.MaxAlam, 'f', 4, 64),
						info.ImportedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Name", "Lines", "Min wavelength", "Max wavelength", "Imported"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newStoreQueryCommand(ctx *commandContext) *cobra.Command {
	var rangeFlag string
	var outPath string

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Select lines of a stored list by wavelength range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rangeFlag == "" {
				return fmt.Errorf("--range is required")
			}
			lo, hi, err := parseRange(rangeFlag)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *linestore.Store) error {
				lines, err := store.SelectRange(cmd.Context(), args[0], lo, hi)
				if err != nil {
					return err
				}

				if outPath != "" {
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
				}

				return synspec.WriteLineList(cmd.OutOrStdout(), lines)
			})
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Wavelength range, e.g. 4000:5000")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (default stdout)")
	return cmd
}

func newStoreExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Export a stored list to a line-list file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *linestore.Store) error {
				f, err := os.Create(args[1])
				if err != nil {
					return fmt.Errorf("create %s: %w", args[1], err)
				}
				if err := store.Export(cmd.Context(), args[0], f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newStoreDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored line list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *linestore.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
				return nil
			})
		},
	}
}
