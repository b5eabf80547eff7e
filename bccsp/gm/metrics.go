/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"strconv"
	"time"

	"github.com/gmsuite/gmsuite/common/metrics"
)

var (
	operationsCounterOpts = metrics.CounterOpts{
		Namespace:    "bccsp",
		Subsystem:    "gm",
		Name:         "operations",
		Help:         "The number of cryptographic operations served by the GM provider.",
		LabelNames:   []string{"operation", "algorithm", "success"},
		StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}.%{success}",
	}

	operationDurationOpts = metrics.HistogramOpts{
		Namespace:    "bccsp",
		Subsystem:    "gm",
		Name:         "operation_duration",
		Help:         "The time to complete a cryptographic operation, in seconds.",
		Buckets:      []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		LabelNames:   []string{"operation", "algorithm"},
		StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}",
	}
)

// Metrics holds the instruments the GM provider reports to.
type Metrics struct {
	Operations        metrics.Counter
	OperationDuration metrics.Histogram
}

// NewMetrics registers the provider instruments with p.
func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		Operations:        p.NewCounter(operationsCounterOpts),
		OperationDuration: p.NewHistogram(operationDurationOpts),
	}
}

func (m *Metrics) observe(operation, algorithm string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Operations.With(
		"operation", operation,
		"algorithm", algorithm,
		"success", strconv.FormatBool(err == nil),
	).Add(1)
	m.OperationDuration.With(
		"operation", operation,
		"algorithm", algorithm,
	).Observe(time.Since(start).Seconds())
}
