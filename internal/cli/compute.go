package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cutline/internal/config"
	"github.com/wesleyorama2/cutline/internal/output"
	"github.com/wesleyorama2/cutline/internal/summary"
	"github.com/wesleyorama2/cutline/performance"
)

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute [metric...]",
		Short: "Match metrics against a standard set",
		Long: `Match one or more metrics against a standard set from a standards file and
report the achieved standard, the next standard and the gap to it.

Single metric:
  cutline compute -s motivational.yaml --set "500 Free" 6:15.00

Batch with summary:
  cutline compute -s motivational.yaml --set "500 Free" --metrics-file times.txt`,
		RunE: runCompute,
	}

	addStandardsFlags(cmd)
	cmd.Flags().String("set", "", "Standard set (event) to use; optional when the file has only one")
	cmd.Flags().StringArrayP("metric", "m", nil, "Metric to evaluate (repeatable)")
	cmd.Flags().String("metrics-file", "", "File with one metric per line ('-' for stdin)")
	cmd.Flags().BoolP("verbose", "v", false, "Show details of the matched standard")

	return cmd
}

func runCompute(cmd *cobra.Command, args []string) (err error) {
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	standardsPath, _ := cmd.Flags().GetString("standards")
	setName, _ := cmd.Flags().GetString("set")
	if standardsPath == "" {
		return errors.New("--standards is required")
	}

	metrics, err := collectMetrics(cmd, args)
	if err != nil {
		return err
	}
	if len(metrics) == 0 {
		return errors.New("at least one metric is required")
	}

	file, err := config.Load(standardsPath)
	if err != nil {
		return fmt.Errorf("error loading standards: %w", err)
	}
	opts, err := fileOptions(cmd, file)
	if err != nil {
		return err
	}
	set, err := file.Set(setName)
	if err != nil {
		return err
	}

	logger.Debug("computing", "set", set.Name, "metrics", len(metrics), "direction", opts.Direction)

	report := &output.Report{Name: file.Name}
	collector := summary.NewCollector()
	failed := 0

	for _, metric := range metrics {
		eval := output.Evaluation{Set: set.Name, Metric: metric}

		result, err := performance.ComputePerformance(metric, set.Standards, opts)
		if err != nil {
			failed++
			eval.Error = err.Error()
			collector.AddFailure()
			logger.Error("computation failed", "set", set.Name, "metric", metric, "err", err)
		} else {
			eval.Result = result
			collector.Add(result)
			for _, d := range result.Validation.Errors {
				logger.Warn(d, "set", set.Name, "metric", metric)
			}
		}

		report.Evaluations = append(report.Evaluations, eval)
	}

	if len(metrics) > 1 {
		report.Summary = collector.Summary()
	}

	w, closeOutput, err := outputTarget(cmd)
	if err != nil {
		return err
	}
	defer closeInto(&err, closeOutput)

	formatter, err := formatterFor(cmd, w)
	if err != nil {
		return err
	}
	out, err := formatter.FormatReport(report)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d computations failed", failed, len(metrics))
	}
	return nil
}

// collectMetrics gathers metrics from positional arguments, --metric and
// --metrics-file, in that order. Blank lines and lines starting with '#'
// in the file are skipped.
func collectMetrics(cmd *cobra.Command, args []string) ([]string, error) {
	metrics := append([]string{}, args...)

	flagMetrics, _ := cmd.Flags().GetStringArray("metric")
	metrics = append(metrics, flagMetrics...)

	path, _ := cmd.Flags().GetString("metrics-file")
	if path == "" {
		return metrics, nil
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open metrics file: %w", err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		metrics = append(metrics, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metrics file: %w", err)
	}
	return metrics, nil
}
