/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statsd

import (
	"bytes"

	"github.com/go-kit/kit/log"
	kitstatsd "github.com/go-kit/kit/metrics/statsd"
	"github.com/gmsuite/gmsuite/common/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provider", func() {
	var (
		s        *kitstatsd.Statsd
		provider *Provider
	)

	BeforeEach(func() {
		s = kitstatsd.New("", log.NewNopLogger())
		provider = &Provider{Statsd: s}
	})

	written := func() string {
		buf := &bytes.Buffer{}
		_, err := s.WriteTo(buf)
		Expect(err).NotTo(HaveOccurred())
		return buf.String()
	}

	Describe("NewCounter", func() {
		It("writes labelled counters to the formatted bucket", func() {
			c := provider.NewCounter(metrics.CounterOpts{
				Namespace:    "bccsp",
				Subsystem:    "gm",
				Name:         "operations",
				LabelNames:   []string{"operation", "algorithm"},
				StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}",
			})
			c.With("operation", "sign", "algorithm", "SM9").Add(2)

			Expect(written()).To(Equal("bccsp.gm.operations.sign.SM9:2.000000|c\n"))
		})

		It("binds unlabelled counters at creation", func() {
			c := provider.NewCounter(metrics.CounterOpts{Namespace: "bccsp", Name: "keys"})
			c.Add(1)

			Expect(written()).To(Equal("bccsp.keys:1.000000|c\n"))
		})

		It("panics when labels are required", func() {
			c := provider.NewCounter(metrics.CounterOpts{Name: "keys", LabelNames: []string{"algorithm"}})
			Expect(func() { c.Add(1) }).To(Panic())
		})
	})

	Describe("NewGauge", func() {
		It("writes the last value set", func() {
			g := provider.NewGauge(metrics.GaugeOpts{
				Name:         "goroutines",
				LabelNames:   []string{"process"},
				StatsdFormat: "%{#name}.%{process}",
			})
			g.With("process", "kgc").Set(7)

			Expect(written()).To(Equal("goroutines.kgc:7.000000|g\n"))
		})

		It("panics when labels are required", func() {
			g := provider.NewGauge(metrics.GaugeOpts{Name: "goroutines", LabelNames: []string{"process"}})
			Expect(func() { g.Set(1) }).To(Panic())
			Expect(func() { g.Add(1) }).To(Panic())
		})
	})

	Describe("NewHistogram", func() {
		It("writes observations as timings", func() {
			h := provider.NewHistogram(metrics.HistogramOpts{
				Namespace: "bccsp",
				Name:      "duration",
			})
			h.Observe(3)

			Expect(written()).To(Equal("bccsp.duration:3.000000|ms\n"))
		})

		It("panics when labels are required", func() {
			h := provider.NewHistogram(metrics.HistogramOpts{Name: "duration", LabelNames: []string{"operation"}})
			Expect(func() { h.Observe(1) }).To(Panic())
		})
	})
})
