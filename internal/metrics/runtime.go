package metrics

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics reports the footprint of a single attendance run. Large
// input files show up as heap growth and GC cycles.
type RuntimeMetrics struct {
	goroutines metric.Int64ObservableGauge
	heapAlloc  metric.Int64ObservableGauge
	gcCycles   metric.Int64ObservableCounter
	runTime    metric.Float64ObservableCounter
	started    time.Time
}

func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	rm := &RuntimeMetrics{started: time.Now()}

	var err error

	if rm.goroutines, err = meter.Int64ObservableGauge(
		"runtime.go.goroutines",
		metric.WithDescription("Goroutines alive during the run"),
		metric.WithUnit("{goroutine}"),
	); err != nil {
		return nil, err
	}

	if rm.heapAlloc, err = meter.Int64ObservableGauge(
		"runtime.go.mem.heap_alloc",
		metric.WithDescription("Heap bytes held while processing input"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	if rm.gcCycles, err = meter.Int64ObservableCounter(
		"runtime.go.gc.count",
		metric.WithDescription("GC cycles completed since the run started"),
		metric.WithUnit("{gc}"),
	); err != nil {
		return nil, err
	}

	if rm.runTime, err = meter.Float64ObservableCounter(
		"process.uptime",
		metric.WithDescription("Seconds elapsed in the current attendance run"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(rm.observe,
		rm.goroutines,
		rm.heapAlloc,
		rm.gcCycles,
		rm.runTime,
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

func (rm *RuntimeMetrics) observe(_ context.Context, observer metric.Observer) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	observer.ObserveInt64(rm.goroutines, int64(runtime.NumGoroutine()))
	observer.ObserveInt64(rm.heapAlloc, int64(mem.HeapAlloc))
	observer.ObserveInt64(rm.gcCycles, int64(mem.NumGC))
	observer.ObserveFloat64(rm.runTime, time.Since(rm.started).Seconds())
	return nil
}
