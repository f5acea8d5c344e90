package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type"},
		Short:   "Manage the relationship type registry",
	}

	cmd.AddCommand(
		newTypesListCmd(),
		newTypesAddCmd(),
		newTypesShowCmd(),
		newTypesInversesCmd(),
	)

	return cmd
}

func newTypesListCmd() *cobra.Command {
	var category string
	var genderContext string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List relationship types grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				listings, err := deps.Types.HandleList(ctx, category, genderContext)
				if err != nil {
					return err
				}

				for _, listing := range listings {
					fmt.Printf("%s\n", listing.Category.Name)
					for _, rt := range listing.Types {
						variants := ""
						if rt.MaleVariant != "" || rt.FemaleVariant != "" {
							variants = fmt.Sprintf("  (m: %s, f: %s)", rt.MaleVariant, rt.FemaleVariant)
						}
						fmt.Printf("  %-20s %-10s%s\n", rt.Name, rt.GenderContext, variants)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category name")
	cmd.Flags().StringVar(&genderContext, "context", "", "filter by gender context (masculine, feminine, neutral)")

	return cmd
}

func newTypesAddCmd() *cobra.Command {
	var label string
	var genderContext string
	var category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom relationship type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				if _, err := deps.Types.HandleAdd(ctx, args[0], label, genderContext, category); err != nil {
					return err
				}
				fmt.Printf("Added relationship type %q in category %q\n", args[0], category)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "display label (defaults to the name)")
	cmd.Flags().StringVar(&genderContext, "context", "neutral", "gender context (masculine, feminine, neutral)")
	cmd.Flags().StringVarP(&category, "category", "c", "Other", "category name")

	return cmd
}

func newTypesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a relationship type and its inverse candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				detail, err := deps.Types.HandleShow(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("Name:     %s\n", detail.Type.Name)
				fmt.Printf("Label:    %s\n", detail.Type.Label)
				fmt.Printf("Category: %s\n", detail.Category.Name)
				fmt.Printf("Context:  %s\n", detail.Type.GenderContext)
				if detail.Type.MaleVariant != "" || detail.Type.FemaleVariant != "" {
					fmt.Printf("Variants: male=%s female=%s\n", detail.Type.MaleVariant, detail.Type.FemaleVariant)
				}

				if len(detail.Inverses) == 0 {
					fmt.Println("Inverses: none")
					return nil
				}
				names := make([]string, 0, len(detail.Inverses))
				for _, inv := range detail.Inverses {
					names = append(names, inv.Name)
				}
				fmt.Printf("Inverses: %s\n", strings.Join(names, ", "))
				return nil
			})
		},
	}
}

func newTypesInversesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverses <name> <inverse>...",
		Short: "Replace the inverse candidates of a relationship type",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				if err := deps.Types.HandleSetInverses(ctx, args[0], args[1:]); err != nil {
					return err
				}
				fmt.Printf("Set inverses of %q to %s\n", args[0], strings.Join(args[1:], ", "))
				return nil
			})
		},
	}
}
