package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRelationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations <character>",
		Short: "List the relationships of a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				relations, err := deps.Relationships.HandleRelations(ctx, deps.StoryID, args[0])
				if err != nil {
					return err
				}
				if len(relations) == 0 {
					fmt.Println("No relationships.")
					return nil
				}
				for _, rel := range relations {
					printRelation(args[0], rel)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(newRelationsBetweenCmd())

	return cmd
}

func newRelationsBetweenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "between <a> <b>",
		Short: "Show the relationship pairs between two characters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				descriptors, err := deps.Relationships.HandleBetween(ctx, deps.StoryID, args[0], args[1])
				if err != nil {
					return err
				}
				if len(descriptors) == 0 {
					fmt.Println("No relationships between these characters.")
					return nil
				}
				for _, d := range descriptors {
					marker := " "
					if d.IsPrimary {
						marker = "*"
					}
					fmt.Printf("%s %s\n", marker, d.Description)
				}
				return nil
			})
		},
	}
}
