package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// exportFlags holds the export command flags.
type exportFlags struct {
	format string
	output string
}

// characterRow is one exported character.
type characterRow struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// relationshipRow is one exported relationship edge.
type relationshipRow struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label"`
	Strength int    `json:"strength"`
}

// exportData is the full export payload.
type exportData struct {
	Story         string            `json:"story"`
	Characters    []characterRow    `json:"characters"`
	Relationships []relationshipRow `json:"relationships"`
}

func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the characters and relationships of a story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !contains(validFormats, flags.format) {
				return fmt.Errorf("invalid format %q (valid: %s)", flags.format, strings.Join(validFormats, ", "))
			}

			return withDeps(cmd.Context(), func(ctx context.Context, deps *Deps) error {
				data, err := collectExportData(ctx, deps)
				if err != nil {
					return err
				}

				content, err := formatExport(data, flags.format)
				if err != nil {
					return err
				}

				return writeOutput(content, flags.output)
			})
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// collectExportData reads all characters and, through each character's
// outgoing rows, every relationship edge exactly once.
func collectExportData(ctx context.Context, deps *Deps) (*exportData, error) {
	characters, err := deps.Characters.HandleList(ctx, deps.StoryID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	data := &exportData{
		Story:         deps.StoryName,
		Characters:    make([]characterRow, 0, len(characters)),
		Relationships: []relationshipRow{},
	}

	for _, c := range characters {
		data.Characters = append(data.Characters, characterRow{
			Name:   c.Name,
			Gender: formatGender(c.Gender),
		})

		relations, err := deps.Relationships.HandleRelations(ctx, deps.StoryID, c.Name)
		if err != nil {
			return nil, fmt.Errorf("listing relationships of %q: %w", c.Name, err)
		}
		for _, rel := range relations {
			if rel.Direction != "outgoing" {
				continue
			}
			data.Relationships = append(data.Relationships, relationshipRow{
				ID:       rel.RelationshipID,
				Source:   c.Name,
				Target:   rel.OtherName,
				Label:    rel.Label,
				Strength: rel.Strength,
			})
		}
	}

	return data, nil
}

func formatExport(data *exportData, format string) ([]byte, error) {
	switch format {
	case "json":
		return formatJSON(data)
	case "csv":
		return formatCSV(data)
	case "markdown":
		return formatMarkdown(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(data *exportData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export: %w", err)
	}
	return append(out, '\n'), nil
}

// formatCSV writes the relationship table; characters without
// relationships do not appear.
func formatCSV(data *exportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "source", "target", "label", "strength"}); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, rel := range data.Relationships {
		record := []string{rel.ID, rel.Source, rel.Target, rel.Label, strconv.Itoa(rel.Strength)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMarkdown(data *exportData) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(data.Story))

	b.WriteString("## Characters\n\n")
	b.WriteString("| Name | Gender |\n")
	b.WriteString("|------|--------|\n")
	for _, c := range data.Characters {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeMarkdown(c.Name), c.Gender)
	}

	b.WriteString("\n## Relationships\n\n")
	b.WriteString("| Source | Label | Target | Strength |\n")
	b.WriteString("|--------|-------|--------|----------|\n")
	for _, rel := range data.Relationships {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
			escapeMarkdown(rel.Source), escapeMarkdown(rel.Label), escapeMarkdown(rel.Target), rel.Strength)
	}

	return []byte(b.String()), nil
}

// escapeMarkdown escapes characters that would break a markdown table.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// writeOutput writes content to the output file, or stdout when empty.
func writeOutput(content []byte, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(content)
		return err
	}

	if err := os.WriteFile(output, content, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Printf("Exported to %s\n", output)
	return nil
}
