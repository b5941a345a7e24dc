package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Set        *color.Color
	Metric     *color.Color
	Label      *color.Color
	Unknown    *color.Color
	Next       *color.Color
	Gap        *color.Color
	Diagnostic *color.Color
	Success    *color.Color
	Error      *color.Color
	Highlight  *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Set:        color.New(color.FgBlue, color.Bold),
		Metric:     color.New(color.FgCyan),
		Label:      color.New(color.FgGreen, color.Bold),
		Unknown:    color.New(color.FgRed, color.Bold),
		Next:       color.New(color.FgYellow),
		Gap:        color.New(color.FgMagenta),
		Diagnostic: color.New(color.FgYellow),
		Success:    color.New(color.FgGreen),
		Error:      color.New(color.FgRed),
		Highlight:  color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	for _, c := range []*color.Color{
		scheme.Set, scheme.Metric, scheme.Label, scheme.Unknown, scheme.Next,
		scheme.Gap, scheme.Diagnostic, scheme.Success, scheme.Error, scheme.Highlight,
	} {
		c.DisableColor()
	}

	return scheme
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}
