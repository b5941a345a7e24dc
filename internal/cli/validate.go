package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cutline/internal/config"
	"github.com/wesleyorama2/cutline/internal/output"
	"github.com/wesleyorama2/cutline/performance"
)

var errInvalidStandards = errors.New("standards file has validation errors")

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a standards file",
		Long: `Load a standards file and check every standard set in it: labels, levels,
level ordering and cut parsing. With --watch the file is checked again on
every write until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	addStandardsFlags(cmd)
	cmd.Flags().BoolP("watch", "w", false, "Re-validate whenever the file changes")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("standards")
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("a standards file is required (argument or --standards)")
	}
	watch, _ := cmd.Flags().GetBool("watch")

	w, closeOutput, err := outputTarget(cmd)
	if err != nil {
		return err
	}
	defer closeInto(&err, closeOutput)

	formatter, err := formatterFor(cmd, w)
	if err != nil {
		return err
	}

	file, loadErr := config.Load(path)
	report := validationReport(cmd, path, file, loadErr)
	if err := writeValidation(w, formatter, report); err != nil {
		return err
	}

	if !watch {
		if !report.Valid() {
			return errInvalidStandards
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var writeErr error
	err = config.Watch(ctx, path, logger, func(file *config.StandardsFile, loadErr error) {
		if writeErr != nil {
			return
		}
		writeErr = writeValidation(w, formatter, validationReport(cmd, path, file, loadErr))
	})
	if err != nil {
		return err
	}
	return writeErr
}

// validationReport checks every set of a loaded file. When loading failed
// the report carries the load errors instead.
func validationReport(cmd *cobra.Command, path string, file *config.StandardsFile, loadErr error) *output.ValidationReport {
	report := &output.ValidationReport{File: path}

	if loadErr != nil {
		var verrs *config.ValidationErrors
		if errors.As(loadErr, &verrs) {
			for _, e := range verrs.Errors {
				report.FileErrors = append(report.FileErrors, e.Error())
			}
		} else {
			report.FileErrors = append(report.FileErrors, loadErr.Error())
		}
		return report
	}

	opts, err := fileOptions(cmd, file)
	if err != nil {
		report.FileErrors = append(report.FileErrors, err.Error())
		return report
	}

	for _, set := range file.Sets() {
		report.Sets = append(report.Sets, output.SetValidation{
			Name:       set.Name,
			Direction:  resolvedDirection(set.Standards, opts),
			Validation: performance.Validate(set.Standards, opts),
		})
	}
	return report
}

func writeValidation(w io.Writer, formatter output.FormatProvider, report *output.ValidationReport) error {
	out, err := formatter.FormatValidation(report)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
