/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statsd

import (
	"github.com/gmsuite/gmsuite/common/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Namer", func() {
	var n *namer

	BeforeEach(func() {
		n = counterNamer(metrics.CounterOpts{
			Namespace:    "bccsp",
			Subsystem:    "gm",
			Name:         "operations",
			LabelNames:   []string{"operation", "algorithm", "success"},
			StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}.%{success}",
		})
	})

	It("places label values after the fully qualified name", func() {
		Expect(n.Format("operation", "sign", "algorithm", "SM9", "success", "true")).To(
			Equal("bccsp.gm.operations.sign.SM9.true"))
	})

	It("accepts label values in any order", func() {
		Expect(n.Format("success", "false", "operation", "decrypt", "algorithm", "SM4")).To(
			Equal("bccsp.gm.operations.decrypt.SM4.false"))
	})

	It("reports a label without a value as unknown", func() {
		Expect(n.Format("operation", "keygen", "success", "true", "algorithm")).To(
			Equal("bccsp.gm.operations.keygen.unknown.true"))
	})

	It("renders the name parts individually", func() {
		n.nameFormat = "gmsuite.%{#namespace}.%{#subsystem}.%{#name}.%{algorithm}"
		Expect(n.Format("algorithm", "ZUC")).To(Equal("gmsuite.bccsp.gm.operations.ZUC"))
	})

	DescribeTable("sanitizes label values into a single statsd segment",
		func(value, segment string) {
			Expect(n.Format("operation", value, "algorithm", "SM9", "success", "true")).To(
				Equal("bccsp.gm.operations." + segment + ".SM9.true"))
		},
		Entry("colons and pipes", "key:exchange|init", "key_exchange_init"),
		Entry("whitespace", "key exchange\n\tend", "key_exchange__end"),
		Entry("periods", "sm9.encapsulate", "sm9_encapsulate"),
		Entry("multi-byte runes", "签名", "签名"),
	)

	It("panics on a label it was not declared with", func() {
		Expect(func() { n.Format("curve", "bn256") }).To(PanicWith("invalid label name: curve"))
	})

	It("panics when the format references an undeclared label", func() {
		n.nameFormat = "%{#fqname}.%{hid}"
		Expect(func() { n.Format() }).To(PanicWith("invalid label in name format: hid"))
	})

	It("falls back to the fully qualified name without a format", func() {
		h := histogramNamer(metrics.HistogramOpts{Namespace: "bccsp", Subsystem: "gm", Name: "operation_duration"})
		Expect(h.Format()).To(Equal("bccsp.gm.operation_duration"))
	})

	DescribeTable("#fqname skips empty parts",
		func(namespace, subsystem, expected string) {
			g := gaugeNamer(metrics.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: "gmsuite_version", StatsdFormat: "%{#fqname}"})
			Expect(g.Format()).To(Equal(expected))
		},
		Entry("all parts", "core", "operations", "core.operations.gmsuite_version"),
		Entry("no namespace", "", "operations", "operations.gmsuite_version"),
		Entry("no subsystem", "core", "", "core.gmsuite_version"),
		Entry("name only", "", "", "gmsuite_version"),
	)
})
