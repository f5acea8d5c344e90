package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fablekeep/storygraph/internal/domain/entities"
)

func newCharactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"character"},
		Short:   "Manage the characters of a story",
	}

	cmd.AddCommand(
		newCharactersAddCmd(),
		newCharactersListCmd(),
		newCharactersShowCmd(),
		newCharactersRemoveCmd(),
	)

	return cmd
}

func newCharactersAddCmd() *cobra.Command {
	var gender string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a character to the story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				c, err := deps.Characters.HandleAdd(ctx, deps.StoryID, args[0], gender)
				if err != nil {
					return err
				}
				fmt.Printf("Added character %q (%s)\n", c.Name, formatGender(c.Gender))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&gender, "gender", "g", "", "character gender (male, female, other)")

	return cmd
}

func newCharactersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the characters of the story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				characters, err := deps.Characters.HandleList(ctx, deps.StoryID)
				if err != nil {
					return err
				}
				if len(characters) == 0 {
					fmt.Println("No characters yet.")
					return nil
				}

				fmt.Printf("%-24s %s\n", "NAME", "GENDER")
				for _, c := range characters {
					fmt.Printf("%-24s %s\n", c.Name, formatGender(c.Gender))
				}
				return nil
			})
		},
	}
}

func newCharactersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a character and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				detail, err := deps.Characters.HandleShow(ctx, deps.StoryID, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("Name:   %s\n", detail.Character.Name)
				fmt.Printf("Gender: %s\n", formatGender(detail.Character.Gender))

				if len(detail.Relations) == 0 {
					fmt.Println("No relationships.")
					return nil
				}

				fmt.Println("\nRelationships:")
				for _, rel := range detail.Relations {
					printRelation(detail.Character.Name, rel)
				}
				return nil
			})
		},
	}
}

func newCharactersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a character and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				if err := deps.Characters.HandleRemove(ctx, deps.StoryID, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed character %q\n", args[0])
				return nil
			})
		},
	}
}

func formatGender(g entities.Gender) string {
	return strings.ToLower(string(g))
}

// printRelation prints one relationship row of a character listing,
// oriented so the owning character always reads left to right.
func printRelation(ownName string, rel entities.CharacterRelation) {
	label := rel.Label
	if label == "" {
		label = "(untyped)"
	}
	switch rel.Direction {
	case "outgoing":
		fmt.Printf("  %s -> %s: %-16s strength %d  [%s]\n", ownName, rel.OtherName, label, rel.Strength, rel.RelationshipID)
	default:
		fmt.Printf("  %s <- %s: %-16s strength %d  [%s]\n", ownName, rel.OtherName, label, rel.Strength, rel.RelationshipID)
	}
}
