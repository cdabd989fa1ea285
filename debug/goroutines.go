package debug

// Periodic runtime loggers, started only when config.Debug is true. They help
// tell decoder/backend leaks (goroutines, native RSS) apart from Go heap growth
// across many detection passes.

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"sync"
	"time"
)

// StartGoroutineLogger logs goroutine count and stack memory every interval
// until the returned stop func is called.
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = time.Second
	}
	return every(interval, func() {
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		metrics.Read(samples)
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		logger.Info("goroutine-stacks",
			slog.Uint64("goroutines", samples[0].Value.Uint64()),
			slog.Uint64("stack_inuse", ms.StackInuse),
			slog.Uint64("stack_sys", ms.StackSys),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
		)
	})
}

// StartMemLogger logs Go heap figures next to the process RSS every interval
// until the returned stop func is called. RSS failures are logged once.
func StartMemLogger(interval time.Duration, logger *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	var rssErrLogged bool
	return every(interval, func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		rss, err := residentSetBytes()
		if err != nil && !rssErrLogged {
			logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
			rssErrLogged = true
		}
		logger.Info("memstats",
			slog.Int("goroutines", runtime.NumGoroutine()),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
			slog.Uint64("heap_inuse", ms.HeapInuse),
			slog.Uint64("heap_idle", ms.HeapIdle),
			slog.Uint64("heap_sys", ms.HeapSys),
			slog.Uint64("next_gc", ms.NextGC),
			slog.Uint64("rss", rss),
			slog.Uint64("num_gc", uint64(ms.NumGC)),
		)
	})
}

func every(interval time.Duration, fn func()) func() {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
