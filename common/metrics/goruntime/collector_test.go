/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package goruntime_test

import (
	"bytes"
	"time"

	"github.com/go-kit/kit/log"
	kitstatsd "github.com/go-kit/kit/metrics/statsd"
	"github.com/gmsuite/gmsuite/common/metrics/goruntime"
	"github.com/gmsuite/gmsuite/common/metrics/statsd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Collector", func() {
	var (
		s         *kitstatsd.Statsd
		collector *goruntime.Collector
	)

	BeforeEach(func() {
		s = kitstatsd.New("", log.NewNopLogger())
		collector = goruntime.NewCollector(&statsd.Provider{Statsd: s})
	})

	written := func() string {
		buf := &bytes.Buffer{}
		_, err := s.WriteTo(buf)
		Expect(err).NotTo(HaveOccurred())
		return buf.String()
	}

	It("acquires runtime statistics", func() {
		stats := goruntime.CollectStats()
		Expect(stats.GoRoutines).To(BeNumerically(">", 0))
		Expect(stats.MemStats.HeapSys).To(BeNumerically(">", 0))
	})

	It("publishes statistics under the runtime prefix", func() {
		stats := goruntime.Stats{GoRoutines: 3, ThreadsCreated: 4}
		stats.MemStats.HeapAlloc = 1024
		stats.MemStats.NumGC = 2
		collector.Publish(stats)

		out := written()
		Expect(out).To(ContainSubstring("runtime.go.goroutine.count:3.000000|g\n"))
		Expect(out).To(ContainSubstring("runtime.go.threads.created:4.000000|g\n"))
		Expect(out).To(ContainSubstring("runtime.go.mem.heap_alloc_bytes:1024.000000|g\n"))
		Expect(out).To(ContainSubstring("runtime.go.mem.gc_completed_count:2.000000|g\n"))
	})

	It("collects and publishes on every tick", func() {
		ticks := make(chan time.Time)
		done := make(chan struct{})
		go func() {
			collector.CollectAndPublish(ticks)
			close(done)
		}()

		ticks <- time.Now()
		close(ticks)
		Eventually(done).Should(BeClosed())

		Expect(written()).To(ContainSubstring("runtime.go.goroutine.count:"))
	})
})
