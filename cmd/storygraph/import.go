package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fablekeep/storygraph/internal/domain/services"
)

func newImportCmd() *cobra.Command {
	var format string
	var dryRun bool
	var onConflict string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import characters from a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}
			if !contains(validConflictStrategies, onConflict) {
				return fmt.Errorf("invalid conflict strategy %q (valid: %s)", onConflict, strings.Join(validConflictStrategies, ", "))
			}

			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer f.Close()

				opts := services.ImportOptions{
					DryRun:     dryRun,
					OnConflict: services.ConflictStrategy(onConflict),
				}
				result, err := deps.Import.HandleImport(ctx, deps.StoryID, f, format, opts)
				if err != nil {
					return err
				}

				printImportResult(result, dryRun)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format, json or csv (default from file extension)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without saving")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "skip", "existing characters: skip or overwrite")

	return cmd
}

func printImportResult(result *services.ImportResult, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Printf("%s %d characters", verb, result.Imported)
	if result.Skipped > 0 {
		fmt.Printf(", skipped %d existing", result.Skipped)
	}
	fmt.Println()

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", e.Error())
	}
}
