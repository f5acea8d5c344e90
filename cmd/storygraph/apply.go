package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fablekeep/storygraph/internal/application/handlers"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <a> <b> <file>",
		Short: "Apply a batch of relationship operations between two characters",
		Long: `Apply a batch of relationship operations between two characters in
one transaction. The file (or stdin when "-") holds a JSON array of
operations:

  [
    {"action": "add_pair", "source": "John", "target": "Jane", "type": "Friend", "primary": true},
    {"action": "update", "id": "<edge-id>", "set_primary": false},
    {"action": "delete", "id": "<edge-id>"}
  ]

The whole batch is rejected when more than one relationship between the
two characters would be flagged primary; a batch leaving several
relationships with no primary flag is not applied until one is chosen.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readBatchFile(args[2])
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				check, err := deps.Relationships.HandleApply(ctx, deps.StoryID, args[0], args[1], items)
				if err != nil {
					return err
				}

				if check.Status == services.PrimaryNeedsDisambiguation {
					fmt.Println("Nothing applied: multiple relationships and none flagged primary.")
					fmt.Println("Re-submit with exactly one of these flagged primary:")
					for _, id := range check.Candidates {
						fmt.Printf("  %s\n", id)
					}
					return nil
				}

				fmt.Printf("Applied %d operations between %q and %q\n", len(items), args[0], args[1])
				return nil
			})
		},
	}
}

func readBatchFile(path string) ([]handlers.BatchItem, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []handlers.BatchItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("batch file has no operations")
	}
	return items, nil
}
