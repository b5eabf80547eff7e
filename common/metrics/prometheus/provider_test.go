/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus_test

import (
	"testing"

	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/gmsuite/gmsuite/common/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prom.Registry, name string) *dto.MetricFamily {
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestCounter(t *testing.T) {
	reg := prom.NewRegistry()
	p := &prometheus.Provider{Registerer: reg}

	c := p.NewCounter(metrics.CounterOpts{
		Namespace:  "bccsp",
		Subsystem:  "gm",
		Name:       "operations",
		Help:       "operation count",
		LabelNames: []string{"operation", "success"},
	})
	c.With("operation", "sign", "success", "true").Add(1)
	c.With("operation", "sign", "success", "true").Add(2)

	f := gather(t, reg, "bccsp_gm_operations")
	require.Len(t, f.GetMetric(), 1)
	m := f.GetMetric()[0]
	require.Equal(t, "sign", labelValue(m, "operation"))
	require.Equal(t, float64(3), m.GetCounter().GetValue())
}

func TestCounterReRegistration(t *testing.T) {
	reg := prom.NewRegistry()
	p := &prometheus.Provider{Registerer: reg}
	opts := metrics.CounterOpts{Name: "twice", Help: "registered twice", LabelNames: []string{"a"}}

	p.NewCounter(opts).With("a", "x").Add(1)
	p.NewCounter(opts).With("a", "x").Add(1)

	f := gather(t, reg, "twice")
	require.Equal(t, float64(2), f.GetMetric()[0].GetCounter().GetValue())
}

func TestGauge(t *testing.T) {
	reg := prom.NewRegistry()
	p := &prometheus.Provider{Registerer: reg}

	g := p.NewGauge(metrics.GaugeOpts{Name: "keys", Help: "stored keys", LabelNames: []string{"store"}})
	g.With("store", "memory").Set(4)
	g.With("store", "memory").Add(1)

	f := gather(t, reg, "keys")
	require.Equal(t, float64(5), f.GetMetric()[0].GetGauge().GetValue())
}

func TestHistogram(t *testing.T) {
	reg := prom.NewRegistry()
	p := &prometheus.Provider{Registerer: reg}

	h := p.NewHistogram(metrics.HistogramOpts{
		Name:       "duration",
		Help:       "operation duration",
		Buckets:    []float64{0.1, 1},
		LabelNames: []string{"operation"},
	})
	h.With("operation", "pair").Observe(0.5)
	h.With("operation", "pair").Observe(2)

	f := gather(t, reg, "duration")
	hist := f.GetMetric()[0].GetHistogram()
	require.Equal(t, uint64(2), hist.GetSampleCount())
	require.Equal(t, 2.5, hist.GetSampleSum())
}
