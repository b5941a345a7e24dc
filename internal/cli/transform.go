package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cutline/internal/config"
	"github.com/wesleyorama2/cutline/performance/transform"
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Convert a swim-standards JSON document into a standards file",
		Long: `Extract one event's label/cut table from a JSON document and write it as a
standards file that compute and validate accept.

  cutline transform -i motivational.json -p '$.SCY["500 Free"]' --levels B,BB,A,AA

List the events under a path:
  cutline transform -i motivational.json -p '$.SCY' --list`,
		RunE: runTransform,
	}

	cmd.Flags().StringP("input", "i", "", "JSON document ('-' for stdin)")
	cmd.Flags().StringP("path", "p", "$", "JSONPath to the label/cut table")
	cmd.Flags().StringSlice("levels", nil, "Level order, worst to best (comma separated)")
	cmd.Flags().String("name", "", "Name written into the standards file")
	cmd.Flags().String("direction", "", "Direction written into the standards file")
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().Bool("list", false, "List the keys of the object at --path instead")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	path, _ := cmd.Flags().GetString("path")
	levels, _ := cmd.Flags().GetStringSlice("levels")
	name, _ := cmd.Flags().GetString("name")
	direction, _ := cmd.Flags().GetString("direction")
	format, _ := cmd.Flags().GetString("format")
	list, _ := cmd.Flags().GetBool("list")

	if input == "" {
		return errors.New("--input is required")
	}

	doc, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	if list {
		events, err := transform.Events(doc, path)
		if err != nil {
			return err
		}
		for _, e := range events {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	}

	standards, err := transform.FromJSON(doc, path, levels)
	if err != nil {
		return err
	}

	file := config.StandardsFile{
		Name:      name,
		Direction: direction,
		Levels:    levels,
		Standards: standards,
	}

	var out []byte
	switch strings.ToLower(format) {
	case "yaml", "yml":
		out, err = yaml.Marshal(file)
	case "json":
		out, err = json.MarshalIndent(file, "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown transform format %q (expected yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode standards: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
