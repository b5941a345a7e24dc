package output

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/cutline/internal/summary"
	"github.com/wesleyorama2/cutline/performance"
)

// Formatter renders reports as human-readable text
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  colors,
	}
}

// FormatReport formats a compute report for display
func (f *Formatter) FormatReport(r *Report) (string, error) {
	var buf strings.Builder

	if r.Name != "" {
		buf.WriteString(f.colors.Highlight.Sprint(r.Name))
		buf.WriteString("\n\n")
	}

	for _, e := range r.Evaluations {
		f.writeEvaluation(&buf, e)
	}

	if r.Summary != nil {
		f.writeSummary(&buf, r.Summary)
	}

	return buf.String(), nil
}

func (f *Formatter) writeEvaluation(buf *strings.Builder, e Evaluation) {
	buf.WriteString(fmt.Sprintf("▶ %s  %s\n", f.colors.Set.Sprint(e.Set), f.colors.Metric.Sprint(e.Metric)))

	if e.Error != "" {
		buf.WriteString(fmt.Sprintf("  %s %s\n\n", ErrorIcon(f.NoColor), f.colors.Error.Sprint(e.Error)))
		return
	}

	r := e.Result
	if r.Matched() {
		buf.WriteString(fmt.Sprintf("  Level:  %s (index %d, direction %s)\n", f.colors.Label.Sprint(r.Label), r.Index, r.Direction))
		if f.Verbose && r.Standard != nil {
			buf.WriteString(fmt.Sprintf("  Cut:    %v\n", r.Standard.Cut))
			if r.Standard.ID != "" {
				buf.WriteString(fmt.Sprintf("  ID:     %s\n", r.Standard.ID))
			}
			if r.Standard.Description != "" {
				buf.WriteString(fmt.Sprintf("  About:  %s\n", r.Standard.Description))
			}
		}
	} else {
		buf.WriteString(fmt.Sprintf("  Level:  %s (direction %s)\n", f.colors.Unknown.Sprint(r.Label), r.Direction))
	}

	if r.NextStandard != nil {
		buf.WriteString(fmt.Sprintf("  Next:   %s\n", f.colors.Next.Sprint(r.NextCut)))
	} else if r.Matched() {
		buf.WriteString(fmt.Sprintf("  Next:   %s top standard reached\n", SuccessIcon(f.NoColor)))
	}

	if r.DiffToNextFormatted != nil {
		buf.WriteString(fmt.Sprintf("  Gap:    %s (%s)\n",
			f.colors.Gap.Sprint(r.DiffToNextFormatted.Absolute),
			r.DiffToNextFormatted.Relative))
	}

	for _, d := range r.Validation.Errors {
		buf.WriteString(fmt.Sprintf("  %s %s\n", WarningIcon(f.NoColor), f.colors.Diagnostic.Sprint(d)))
	}
	buf.WriteString("\n")
}

func (f *Formatter) writeSummary(buf *strings.Builder, s *summary.Summary) {
	buf.WriteString(f.colors.Highlight.Sprint("Summary"))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("  Evaluated: %d (matched %d, unmatched %d, failed %d)\n",
		s.Total, s.Matched, s.Unmatched, s.Failed))

	if s.Invalid > 0 {
		buf.WriteString(fmt.Sprintf("  %s %d with diagnostics\n", WarningIcon(f.NoColor), s.Invalid))
	}
	if s.AtTop > 0 {
		buf.WriteString(fmt.Sprintf("  %s %d at the top standard\n", SuccessIcon(f.NoColor), s.AtTop))
	}

	if len(s.Labels) > 0 {
		parts := make([]string, len(s.Labels))
		for i, l := range s.Labels {
			parts[i] = fmt.Sprintf("%s %d", f.colors.Label.Sprint(l.Label), l.Count)
		}
		buf.WriteString(fmt.Sprintf("  Labels:    %s\n", strings.Join(parts, ", ")))
	}

	if s.Absolute.Count > 0 {
		buf.WriteString(fmt.Sprintf("  Gap:       p50 %.2f  p90 %.2f  p99 %.2f  max %.2f\n",
			s.Absolute.P50, s.Absolute.P90, s.Absolute.P99, s.Absolute.Max))
		buf.WriteString(fmt.Sprintf("  Gap %%:     p50 %.1f%%  p90 %.1f%%  p99 %.1f%%  max %.1f%%\n",
			s.Relative.P50, s.Relative.P90, s.Relative.P99, s.Relative.Max))
	}
}

// FormatValidation formats a validation report for display
func (f *Formatter) FormatValidation(v *ValidationReport) (string, error) {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("Standards file: %s\n", f.colors.Set.Sprint(v.File)))

	for _, e := range v.FileErrors {
		buf.WriteString(fmt.Sprintf("  %s %s\n", ErrorIcon(f.NoColor), f.colors.Error.Sprint(e)))
	}

	for _, s := range v.Sets {
		icon := SuccessIcon(f.NoColor)
		if !s.Validation.Valid {
			icon = ErrorIcon(f.NoColor)
		}
		buf.WriteString(fmt.Sprintf("  %s %s (direction %s)\n", icon, s.Name, s.Direction))
		for _, d := range s.Validation.Errors {
			buf.WriteString(fmt.Sprintf("      - %s\n", f.colors.Diagnostic.Sprint(d)))
		}
	}

	if v.Valid() {
		buf.WriteString(f.colors.Success.Sprint("All standard sets are valid"))
	} else {
		buf.WriteString(f.colors.Error.Sprint("Validation failed"))
	}
	buf.WriteString("\n")

	return buf.String(), nil
}

// describeNext summarizes the way to the next standard in one line.
func describeNext(r *performance.Result) string {
	if r.NextStandard == nil {
		if r.Matched() {
			return "top standard reached"
		}
		return "no achievable standard"
	}
	if r.DiffToNextFormatted == nil {
		return "next " + r.NextCut
	}
	return fmt.Sprintf("next %s: %s (%s) to go", r.NextCut, r.DiffToNextFormatted.Absolute, r.DiffToNextFormatted.Relative)
}
