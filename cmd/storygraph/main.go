// Command storygraph models the relationship graph of a story from the
// command line: characters, a typed relationship registry, and paired
// directed edges between characters.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalStory holds the --story flag shared by all story-scoped commands.
var globalStory string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storygraph",
		Short:         "Model the relationships between the characters of a story",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalStory, "story", "s", "", "story to operate on")

	rootCmd.AddCommand(
		newStoriesCmd(),
		newCharactersCmd(),
		newTypesCmd(),
		newRelateCmd(),
		newRelationsCmd(),
		newApplyCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return rootCmd
}
