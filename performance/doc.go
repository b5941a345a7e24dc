// Package performance maps a single metric onto an ordered set of threshold
// definitions ("standards") and reports how far the metric is from the next
// better threshold.
//
// A standard is a label plus a cut. Under DirectionLower a cut is a maximum
// (the metric qualifies when metric <= cut); under DirectionHigher it is a
// minimum (metric >= cut). Cuts and metrics may be numbers or strings; the
// default parser understands swim-style durations such as "1:05.39".
//
// # Quick Start
//
//	standards := []performance.Standard{
//	    {Label: "AA", Cut: "51.69"},
//	    {Label: "A", Cut: "55.49"},
//	    {Label: "BB", Cut: "59.29"},
//	    {Label: "B", Cut: "1:05.39"},
//	}
//
//	result, _ := performance.ComputePerformance("57.10", standards, nil)
//
//	fmt.Println(result.Label)                          // BB
//	fmt.Println(result.NextStandard.Label)             // A
//	fmt.Println(result.DiffToNextFormatted.Absolute)   // 01.61
//
// # Levels and Direction
//
// Options.Levels lists labels from worst to best. When set, every pair of
// levels is checked for consistent ordering, and DirectionAuto infers the
// direction from the monotonicity of the level cuts.
//
// # Diagnostics
//
// Schema problems (duplicate labels, missing levels, ordering violations,
// unparsable values, parser failures) never abort a computation by default.
// They are collected in Result.Validation. With ValidationModeThrow the first
// diagnostic stage that reports anything aborts the call with a
// *ValidationError instead.
//
// ComputePerformance is a pure function and safe for concurrent use.
package performance
