// Package summary aggregates many performance results into counts per label
// and percentiles of the gap to the next standard.
package summary

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/cutline/performance"
)

// Gaps are recorded in thousandths so sub-second differences survive the
// integer histogram.
const scale = 1000

// Config controls histogram precision.
type Config struct {
	// HistogramMax is the largest recordable gap, in thousandths (default: 1e12)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HistogramMax:     1_000_000_000_000,
		HistogramSigFigs: 3,
	}
}

// LabelCount is the number of results that matched a label.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Percentiles summarizes a distribution of gaps.
type Percentiles struct {
	Count int64   `json:"count" yaml:"count"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
	P50   float64 `json:"p50" yaml:"p50"`
	P90   float64 `json:"p90" yaml:"p90"`
	P99   float64 `json:"p99" yaml:"p99"`
}

// Summary is the aggregate over a batch of results.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Matched   int `json:"matched" yaml:"matched"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`
	Failed    int `json:"failed" yaml:"failed"`

	// Invalid counts results that carried diagnostics
	Invalid int `json:"invalid" yaml:"invalid"`

	// AtTop counts matched results with no better standard left
	AtTop int `json:"atTop" yaml:"atTop"`

	// Labels lists matched labels in order of first appearance
	Labels []LabelCount `json:"labels" yaml:"labels"`

	Absolute Percentiles `json:"absolute" yaml:"absolute"`
	Relative Percentiles `json:"relative" yaml:"relative"`
}

// Collector accumulates results. It is not safe for concurrent use.
type Collector struct {
	absHist *hdrhistogram.Histogram
	relHist *hdrhistogram.Histogram
	config  Config

	total, matched, unmatched, failed, invalid, atTop int

	counts map[string]int
	order  []string
}

// NewCollector creates a collector with the default configuration.
func NewCollector() *Collector {
	return NewCollectorWithConfig(DefaultConfig())
}

// NewCollectorWithConfig creates a collector with a custom configuration.
func NewCollectorWithConfig(config Config) *Collector {
	return &Collector{
		absHist: hdrhistogram.New(1, config.HistogramMax, config.HistogramSigFigs),
		relHist: hdrhistogram.New(1, config.HistogramMax, config.HistogramSigFigs),
		config:  config,
		counts:  make(map[string]int),
	}
}

// Add records one result.
func (c *Collector) Add(r *performance.Result) {
	if r == nil {
		c.AddFailure()
		return
	}

	c.total++
	if !r.Validation.Valid {
		c.invalid++
	}

	if r.Matched() {
		c.matched++
		if _, ok := c.counts[r.Label]; !ok {
			c.order = append(c.order, r.Label)
		}
		c.counts[r.Label]++
		if r.NextStandard == nil {
			c.atTop++
		}
	} else {
		c.unmatched++
	}

	if r.DiffToNext != nil {
		c.record(c.absHist, r.DiffToNext.Absolute)
		c.record(c.relHist, r.DiffToNext.Relative)
	}
}

// AddFailure records a computation that returned an error.
func (c *Collector) AddFailure() {
	c.total++
	c.failed++
}

// record stores v, clamped into the histogram's range.
func (c *Collector) record(h *hdrhistogram.Histogram, v float64) {
	if math.IsNaN(v) {
		return
	}
	scaled := int64(math.Round(v * scale))
	if v*scale >= float64(c.config.HistogramMax) {
		scaled = c.config.HistogramMax
	}
	if scaled < 0 {
		scaled = 0
	}
	_ = h.RecordValue(scaled)
}

// Summary returns the aggregate of everything recorded so far.
func (c *Collector) Summary() *Summary {
	labels := make([]LabelCount, 0, len(c.order))
	for _, label := range c.order {
		labels = append(labels, LabelCount{Label: label, Count: c.counts[label]})
	}

	return &Summary{
		Total:     c.total,
		Matched:   c.matched,
		Unmatched: c.unmatched,
		Failed:    c.failed,
		Invalid:   c.invalid,
		AtTop:     c.atTop,
		Labels:    labels,
		Absolute:  percentiles(c.absHist),
		Relative:  percentiles(c.relHist),
	}
}

func percentiles(h *hdrhistogram.Histogram) Percentiles {
	if h.TotalCount() == 0 {
		return Percentiles{}
	}
	return Percentiles{
		Count: h.TotalCount(),
		Min:   float64(h.Min()) / scale,
		Max:   float64(h.Max()) / scale,
		Mean:  h.Mean() / scale,
		P50:   float64(h.ValueAtQuantile(50)) / scale,
		P90:   float64(h.ValueAtQuantile(90)) / scale,
		P99:   float64(h.ValueAtQuantile(99)) / scale,
	}
}
