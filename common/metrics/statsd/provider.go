/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statsd

import (
	"github.com/go-kit/kit/metrics/statsd"
	"github.com/gmsuite/gmsuite/common/metrics"
)

const defaultFormat = "%{#fqname}"

// Provider creates go-kit statsd meters. Meters with labels are bound to a
// bucket when With is called.
type Provider struct {
	Statsd *statsd.Statsd
}

func (p *Provider) NewCounter(o metrics.CounterOpts) metrics.Counter {
	c := &Counter{
		statsdProvider: p.Statsd,
		namer:          counterNamer(o),
	}
	if len(o.LabelNames) == 0 {
		c.Counter = p.Statsd.NewCounter(c.namer.Format(), 1)
	}
	return c
}

func (p *Provider) NewGauge(o metrics.GaugeOpts) metrics.Gauge {
	g := &Gauge{
		statsdProvider: p.Statsd,
		namer:          gaugeNamer(o),
	}
	if len(o.LabelNames) == 0 {
		g.Gauge = p.Statsd.NewGauge(g.namer.Format())
	}
	return g
}

func (p *Provider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram {
	h := &Histogram{
		statsdProvider: p.Statsd,
		namer:          histogramNamer(o),
	}
	if len(o.LabelNames) == 0 {
		h.Timing = p.Statsd.NewTiming(h.namer.Format(), 1)
	}
	return h
}

type Counter struct {
	Counter        *statsd.Counter
	namer          *namer
	statsdProvider *statsd.Statsd
}

func (c *Counter) Add(delta float64) {
	if c.Counter == nil {
		panic("label values must be provided by calling With")
	}
	c.Counter.Add(delta)
}

func (c *Counter) With(labelValues ...string) metrics.Counter {
	name := c.namer.Format(labelValues...)
	return &Counter{Counter: c.statsdProvider.NewCounter(name, 1)}
}

type Gauge struct {
	Gauge          *statsd.Gauge
	namer          *namer
	statsdProvider *statsd.Statsd
}

func (g *Gauge) Add(delta float64) {
	if g.Gauge == nil {
		panic("label values must be provided by calling With")
	}
	g.Gauge.Add(delta)
}

func (g *Gauge) Set(value float64) {
	if g.Gauge == nil {
		panic("label values must be provided by calling With")
	}
	g.Gauge.Set(value)
}

func (g *Gauge) With(labelValues ...string) metrics.Gauge {
	name := g.namer.Format(labelValues...)
	return &Gauge{Gauge: g.statsdProvider.NewGauge(name)}
}

// Histogram reports observations as statsd timings.
type Histogram struct {
	Timing         *statsd.Timing
	namer          *namer
	statsdProvider *statsd.Statsd
}

func (h *Histogram) With(labelValues ...string) metrics.Histogram {
	name := h.namer.Format(labelValues...)
	return &Histogram{Timing: h.statsdProvider.NewTiming(name, 1)}
}

func (h *Histogram) Observe(value float64) {
	if h.Timing == nil {
		panic("label values must be provided by calling With")
	}
	h.Timing.Observe(value)
}
