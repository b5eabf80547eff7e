/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package goruntime

import (
	"runtime"
	"time"

	"github.com/gmsuite/gmsuite/common/metrics"
)

var (
	goRoutinesGaugeOpts     = gaugeOpts("goroutine", "count", "Current number of goroutines.")
	threadsCreatedGaugeOpts = gaugeOpts("threads", "created", "Number of OS threads created.")
	heapAllocGaugeOpts      = gaugeOpts("mem", "heap_alloc_bytes", "Bytes of allocated heap objects.")
	totalAllocGaugeOpts     = gaugeOpts("mem", "heap_total_alloc_bytes", "Cumulative bytes allocated for heap objects.")
	heapObjectsGaugeOpts    = gaugeOpts("mem", "heap_objects", "Number of allocated heap objects.")
	heapSysGaugeOpts        = gaugeOpts("mem", "heap_sys_bytes", "Bytes of heap memory obtained from the OS.")
	stackInuseGaugeOpts     = gaugeOpts("mem", "stack_inuse_bytes", "Bytes in stack spans.")
	nextGCGaugeOpts         = gaugeOpts("mem", "gc_next_bytes", "Target heap size of the next GC cycle.")
	pauseTotalNsGaugeOpts   = gaugeOpts("mem", "gc_pause_total_ns", "Cumulative nanoseconds in GC stop-the-world pauses.")
	numGCGaugeOpts          = gaugeOpts("mem", "gc_completed_count", "Number of completed GC cycles.")
)

func gaugeOpts(subsystem, name, help string) metrics.GaugeOpts {
	return metrics.GaugeOpts{
		Namespace:    "go",
		Subsystem:    subsystem,
		Name:         name,
		Help:         help,
		StatsdFormat: "runtime.%{#fqname}",
	}
}

// Collector publishes Go runtime statistics to gauges. It is started by
// the operations system when metrics are pushed to statsd.
type Collector struct {
	GoRoutines     metrics.Gauge
	ThreadsCreated metrics.Gauge
	HeapAlloc      metrics.Gauge
	TotalAlloc     metrics.Gauge
	HeapObjects    metrics.Gauge
	HeapSys        metrics.Gauge
	StackInuse     metrics.Gauge
	NextGC         metrics.Gauge
	PauseTotalNs   metrics.Gauge
	NumGC          metrics.Gauge
}

func NewCollector(p metrics.Provider) *Collector {
	return &Collector{
		GoRoutines:     p.NewGauge(goRoutinesGaugeOpts),
		ThreadsCreated: p.NewGauge(threadsCreatedGaugeOpts),
		HeapAlloc:      p.NewGauge(heapAllocGaugeOpts),
		TotalAlloc:     p.NewGauge(totalAllocGaugeOpts),
		HeapObjects:    p.NewGauge(heapObjectsGaugeOpts),
		HeapSys:        p.NewGauge(heapSysGaugeOpts),
		StackInuse:     p.NewGauge(stackInuseGaugeOpts),
		NextGC:         p.NewGauge(nextGCGaugeOpts),
		PauseTotalNs:   p.NewGauge(pauseTotalNsGaugeOpts),
		NumGC:          p.NewGauge(numGCGaugeOpts),
	}
}

// CollectAndPublish publishes fresh statistics on every tick until ticks is
// closed.
func (c *Collector) CollectAndPublish(ticks <-chan time.Time) {
	for range ticks {
		c.Publish(CollectStats())
	}
}

func (c *Collector) Publish(stats Stats) {
	c.GoRoutines.Set(float64(stats.GoRoutines))
	c.ThreadsCreated.Set(float64(stats.ThreadsCreated))
	c.HeapAlloc.Set(float64(stats.MemStats.HeapAlloc))
	c.TotalAlloc.Set(float64(stats.MemStats.TotalAlloc))
	c.HeapObjects.Set(float64(stats.MemStats.HeapObjects))
	c.HeapSys.Set(float64(stats.MemStats.HeapSys))
	c.StackInuse.Set(float64(stats.MemStats.StackInuse))
	c.NextGC.Set(float64(stats.MemStats.NextGC))
	c.PauseTotalNs.Set(float64(stats.MemStats.PauseTotalNs))
	c.NumGC.Set(float64(stats.MemStats.NumGC))
}

type Stats struct {
	GoRoutines     int
	ThreadsCreated int
	MemStats       runtime.MemStats
}

func CollectStats() Stats {
	stats := Stats{
		GoRoutines: runtime.NumGoroutine(),
	}
	stats.ThreadsCreated, _ = runtime.ThreadCreateProfile(nil)
	runtime.ReadMemStats(&stats.MemStats)
	return stats
}
