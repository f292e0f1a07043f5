package fip

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownAnnotation is returned for an annotation key that is neither
// "periods", "none", nor a significance metric.
var ErrUnknownAnnotation = errors.New("unknown annotation mode")

// Annotation keys accepted by ParseAnnotationMode besides metric names.
const (
	AnnotationPeriodsKey = "periods"
	AnnotationNoneKey    = "none"
)

// Significance maps a metric name (for instance "log10faps") to one value
// per highlighted peak, in rank order.
type Significance map[string][]float64

// Lookup returns the j-th value of the named metric. It reports false when
// the metric is missing or j is out of range.
func (s Significance) Lookup(name string, j int) (float64, bool) {
	vals, ok := s[name]
	if !ok || j < 0 || j >= len(vals) {
		return 0, false
	}
	return vals[j], true
}

// Keys returns the metric names in sorted order.
func (s Significance) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type annotationKind int

const (
	annotateNone annotationKind = iota
	annotatePeriods
	annotateMetric
)

// AnnotationMode selects what text is printed next to each highlighted peak.
// The zero value prints nothing.
type AnnotationMode struct {
	kind   annotationKind
	metric string
}

// Periods labels each peak with its period.
func Periods() AnnotationMode { return AnnotationMode{kind: annotatePeriods} }

// Metric labels each peak with the named significance value.
func Metric(name string) AnnotationMode { return AnnotationMode{kind: annotateMetric, metric: name} }

// NoAnnotation draws markers without labels.
func NoAnnotation() AnnotationMode { return AnnotationMode{} }

// ParseAnnotationMode resolves a user supplied key once, before any label is
// placed.
func ParseAnnotationMode(key string, sig Significance) (AnnotationMode, error) {
	switch key {
	case AnnotationPeriodsKey:
		return Periods(), nil
	case "", AnnotationNoneKey:
		return NoAnnotation(), nil
	}
	if _, ok := sig[key]; ok {
		return Metric(key), nil
	}

	choices := append([]string{AnnotationPeriodsKey, AnnotationNoneKey}, sig.Keys()...)
	return AnnotationMode{}, fmt.Errorf("%w %q: must be one of %s", ErrUnknownAnnotation, key, strings.Join(choices, ", "))
}

// IsNone reports whether labels are disabled.
func (m AnnotationMode) IsNone() bool { return m.kind == annotateNone }

// MetricName returns the metric key for Metric modes and "" otherwise.
func (m AnnotationMode) MetricName() string {
	if m.kind != annotateMetric {
		return ""
	}
	return m.metric
}

func (m AnnotationMode) String() string {
	switch m.kind {
	case annotatePeriods:
		return AnnotationPeriodsKey
	case annotateMetric:
		return m.metric
	default:
		return AnnotationNoneKey
	}
}

// metricLegends gives cleaner legend names for the usual significance metrics.
var metricLegends = map[string]string{
	"log10faps":            `$\log_{10}$ FAPs`,
	"log_bayesf_laplace":   `$\log$ Bayes factor`,
	"log10_bayesf_laplace": `$\log_{10}$ Bayes factor`,
}

// LegendLabel is the legend entry of the peak markers.
func (m AnnotationMode) LegendLabel() string {
	switch m.kind {
	case annotatePeriods:
		return "Peak periods (d)"
	case annotateMetric:
		if l, ok := metricLegends[m.metric]; ok {
			return l
		}
		return m.metric
	default:
		return ""
	}
}

// Text returns the label of the j-th ranked peak. Metric values missing for
// j give an empty label.
func (m AnnotationMode) Text(j int, period float64, sig Significance) string {
	switch m.kind {
	case annotatePeriods:
		return FormatPeriod(period)
	case annotateMetric:
		v, ok := sig.Lookup(m.metric, j)
		if !ok {
			return ""
		}
		return SciNotation(v)
	default:
		return ""
	}
}
