package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fablekeep/storygraph/internal/infrastructure/config"
	"github.com/fablekeep/storygraph/internal/infrastructure/relationaldb/sqlite"
)

func newStoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Manage stories",
	}

	cmd.AddCommand(
		newStoriesListCmd(),
		newStoriesCreateCmd(),
		newStoriesDeleteCmd(),
	)

	return cmd
}

func newStoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			stories, err := config.LoadStories(basePath)
			if err != nil {
				return err
			}
			if len(stories.Stories) == 0 {
				fmt.Println("No stories configured. Run 'storygraph stories create <name>' first.")
				return nil
			}

			fmt.Printf("%-24s %s\n", "NAME", "DESCRIPTION")
			for name, entry := range stories.Stories {
				fmt.Printf("%-24s %s\n", name, entry.Description)
			}
			return nil
		},
	}
}

func newStoriesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			basePath, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			if !config.Exists(basePath) {
				if err := config.WriteDefault(basePath); err != nil {
					return err
				}
				fmt.Printf("Initialized configuration in %s\n", config.ConfigDir(basePath))
			}

			stories, err := config.LoadStories(basePath)
			if err != nil {
				return err
			}
			if stories.Exists(name) {
				return fmt.Errorf("story %q already exists", name)
			}

			if err := os.MkdirAll(config.StoryDir(basePath, name), 0755); err != nil {
				return fmt.Errorf("creating story directory: %w", err)
			}

			stories.Add(name, config.StoryEntry{
				ID:          uuid.New().String(),
				Description: description,
			})
			if err := stories.Save(basePath); err != nil {
				return err
			}

			fmt.Printf("Created story %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "story description")

	return cmd
}

func newStoriesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a story and its database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			basePath, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}

			stories, err := config.LoadStories(basePath)
			if err != nil {
				return err
			}
			entry, err := stories.Get(name)
			if err != nil {
				return err
			}

			if !force {
				count, err := storyCharacterCount(cmd, basePath, name, entry.ID)
				if err != nil {
					return err
				}
				if count > 0 {
					return fmt.Errorf("story %q has %d characters; use --force to delete anyway", name, count)
				}
			}

			if err := os.RemoveAll(config.StoryDir(basePath, name)); err != nil {
				return fmt.Errorf("removing story directory: %w", err)
			}

			stories.Remove(name)
			if err := stories.Save(basePath); err != nil {
				return err
			}

			fmt.Printf("Deleted story %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete even when the story has characters")

	return cmd
}

// storyCharacterCount opens the story database just long enough to count
// its characters. A missing database means an empty story.
func storyCharacterCount(cmd *cobra.Command, basePath, name, storyID string) (int, error) {
	dbPath := config.SQLitePathForStory(basePath, name)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return 0, nil
	}

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	if err != nil {
		return 0, fmt.Errorf("opening story database: %w", err)
	}
	defer db.Close()

	return db.CountCharacters(cmd.Context(), storyID)
}
