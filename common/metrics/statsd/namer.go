/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statsd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gmsuite/gmsuite/common/metrics"
)

// namer renders the statsd bucket of a meter from its StatsdFormat and the
// label values supplied to With.
type namer struct {
	namespace  string
	subsystem  string
	name       string
	nameFormat string
	labelNames map[string]struct{}
}

func newNamer(namespace, subsystem, name, format string, labelNames []string) *namer {
	if format == "" {
		format = defaultFormat
	}
	set := map[string]struct{}{}
	for _, l := range labelNames {
		set[l] = struct{}{}
	}
	return &namer{
		namespace:  namespace,
		subsystem:  subsystem,
		name:       name,
		nameFormat: format,
		labelNames: set,
	}
}

func counterNamer(o metrics.CounterOpts) *namer {
	return newNamer(o.Namespace, o.Subsystem, o.Name, o.StatsdFormat, o.LabelNames)
}

func gaugeNamer(o metrics.GaugeOpts) *namer {
	return newNamer(o.Namespace, o.Subsystem, o.Name, o.StatsdFormat, o.LabelNames)
}

func histogramNamer(o metrics.HistogramOpts) *namer {
	return newNamer(o.Namespace, o.Subsystem, o.Name, o.StatsdFormat, o.LabelNames)
}

func (n *namer) fullyQualifiedName() string {
	var parts []string
	for _, p := range []string{n.namespace, n.subsystem, n.name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// labels pairs up label names and values. A trailing name without a value
// maps to "unknown".
func (n *namer) labels(labelValues []string) map[string]string {
	labels := map[string]string{}
	for i := 0; i < len(labelValues); i += 2 {
		key := labelValues[i]
		if _, ok := n.labelNames[key]; !ok {
			panic("invalid label name: " + key)
		}
		if i == len(labelValues)-1 {
			labels[key] = "unknown"
		} else {
			labels[key] = labelValues[i+1]
		}
	}
	return labels
}

var (
	formatRegexp            = regexp.MustCompile(`%{([#?[:alnum:]_]+)}`)
	invalidLabelValueRegexp = regexp.MustCompile(`[.|:\s]`)
)

// Format expands the name format. %{#namespace}, %{#subsystem}, %{#name} and
// %{#fqname} refer to the meter itself, any other reference to a label.
func (n *namer) Format(labelValues ...string) string {
	labels := n.labels(labelValues)

	return formatRegexp.ReplaceAllStringFunc(n.nameFormat, func(ref string) string {
		key := formatRegexp.FindStringSubmatch(ref)[1]
		switch key {
		case "#namespace":
			return n.namespace
		case "#subsystem":
			return n.subsystem
		case "#name":
			return n.name
		case "#fqname":
			return n.fullyQualifiedName()
		}
		value, ok := labels[key]
		if !ok {
			panic(fmt.Sprintf("invalid label in name format: %s", key))
		}
		return invalidLabelValueRegexp.ReplaceAllString(value, "_")
	})
}
