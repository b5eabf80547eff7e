/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package disabled_test

import (
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/bccsp/gm"
	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/gmsuite/gmsuite/common/metrics/disabled"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provider", func() {
	var p metrics.Provider

	BeforeEach(func() {
		p = &disabled.Provider{}
	})

	It("hands out no-op instruments for the GM operation metrics", func() {
		c := p.NewCounter(metrics.CounterOpts{
			Namespace:  "bccsp",
			Subsystem:  "gm",
			Name:       "operations",
			LabelNames: []string{"operation", "algorithm", "success"},
		})
		Expect(c).To(BeAssignableToTypeOf(&disabled.Counter{}))
		labelled := c.With("operation", "sign", "algorithm", "SM9", "success", "true")
		Expect(labelled).To(BeIdenticalTo(c))
		labelled.Add(1)

		h := p.NewHistogram(metrics.HistogramOpts{Name: "operation_duration", Buckets: []float64{0.001, 0.01}})
		Expect(h.With("operation", "verify")).To(BeIdenticalTo(h))
		h.Observe(0.002)

		g := p.NewGauge(metrics.GaugeOpts{Name: "gmsuite_version", LabelNames: []string{"version"}})
		Expect(g.With("version", "dev")).To(BeIdenticalTo(g))
		g.Set(1)
		g.Add(-1)
	})

	It("backs a GM provider without affecting its results", func() {
		csp, err := gm.New(gm.NewInMemoryKeyStore(), p)
		Expect(err).NotTo(HaveOccurred())

		k, err := csp.KeyGen(&bccsp.SM4KeyGenOpts{Temporary: true})
		Expect(err).NotTo(HaveOccurred())

		ct, err := csp.Encrypt(k, []byte("plaintext"), &bccsp.SM4CBCPKCS7ModeOpts{})
		Expect(err).NotTo(HaveOccurred())
		pt, err := csp.Decrypt(k, ct, &bccsp.SM4CBCPKCS7ModeOpts{})
		Expect(err).NotTo(HaveOccurred())
		Expect(pt).To(Equal([]byte("plaintext")))
	})
})
