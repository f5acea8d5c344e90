package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fablekeep/storygraph/internal/application/handlers"
)

func newRelateCmd() *cobra.Command {
	var opts handlers.RelateOptions

	cmd := &cobra.Command{
		Use:   "relate <source> <target> [type]",
		Short: "Create a relationship between two characters",
		Long: `Create a relationship between two characters.

By default both directions are created as a linked pair; the backward
type is resolved from the forward type's registered inverses and the
target's gender unless --backward overrides it. Use --single for one
directed edge only. The type argument can be omitted when --label
provides a custom label.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := ""
			if len(args) == 3 {
				typeName = args[2]
			}
			if typeName == "" && opts.CustomLabel == "" {
				return fmt.Errorf("a relationship type or --label is required")
			}

			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				result, err := deps.Relationships.HandleRelate(ctx, deps.StoryID, args[0], args[1], typeName, opts)
				if err != nil {
					return err
				}
				fmt.Println(result.Description)
				fmt.Printf("  forward:  %s\n", result.Forward.ID)
				if result.Backward != nil {
					fmt.Printf("  backward: %s\n", result.Backward.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Single, "single", false, "create one directed edge instead of a pair")
	cmd.Flags().BoolVar(&opts.Primary, "primary", false, "flag the relationship as primary")
	cmd.Flags().StringVar(&opts.BackwardType, "backward", "", "backward type name (defaults to the resolved inverse)")
	cmd.Flags().StringVarP(&opts.CustomLabel, "label", "l", "", "custom display label")
	cmd.Flags().IntVar(&opts.Strength, "strength", 0, "relationship strength 1-10 (default 3)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "free-form description")

	cmd.AddCommand(newRelateDeleteCmd())

	return cmd
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a relationship edge by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				deleted, err := deps.Relationships.HandleDelete(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("relationship not found: %s", args[0])
				}
				fmt.Printf("Deleted relationship %s\n", args[0])
				return nil
			})
		},
	}
}
