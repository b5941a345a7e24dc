package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cutline/internal/config"
	"github.com/wesleyorama2/cutline/internal/output"
	"github.com/wesleyorama2/cutline/performance"
)

// addStandardsFlags registers the flags shared by compute and validate.
func addStandardsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("standards", "s", "", "Standards file (YAML or JSON)")
	cmd.Flags().String("direction", "", "Override direction (higher, lower, auto)")
	cmd.Flags().StringSlice("levels", nil, "Override level order, worst to best (comma separated)")
	cmd.Flags().String("validation-mode", "", "Override validation mode (warn, throw)")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml, junit)")
	cmd.Flags().StringP("output", "o", "", "Write output to a file instead of stdout")
}

// fileOptions converts the file settings into computation options and
// applies any command line overrides.
func fileOptions(cmd *cobra.Command, file *config.StandardsFile) (*performance.Options, error) {
	opts, err := file.Options()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("direction") {
		s, _ := cmd.Flags().GetString("direction")
		if opts.Direction, err = performance.ParseDirection(s); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("levels") {
		opts.Levels, _ = cmd.Flags().GetStringSlice("levels")
	}
	if cmd.Flags().Changed("validation-mode") {
		s, _ := cmd.Flags().GetString("validation-mode")
		if opts.ValidationMode, err = performance.ParseValidationMode(s); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// resolvedDirection is the direction a computation with opts will use.
func resolvedDirection(standards []performance.Standard, opts *performance.Options) performance.Direction {
	switch opts.Direction {
	case performance.DirectionAuto:
		dir, _ := performance.InferDirection(standards, opts.Levels, opts.Parser)
		return dir
	case performance.DirectionHigher:
		return performance.DirectionHigher
	default:
		return performance.DirectionLower
	}
}

// outputTarget opens the destination selected by --output.
func outputTarget(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// closeInto runs closeFn and stores its error in err unless err is already
// set. A failed flush of an --output file must not go unreported.
func closeInto(err *error, closeFn func() error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}

// formatterFor selects the formatter for the --format flag; text output is
// colored only when w is a terminal.
func formatterFor(cmd *cobra.Command, w io.Writer) (output.FormatProvider, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return output.GetFormatter(format, verbose, !colorEnabled(w, noColor)), nil
}
