package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cyberax/somfy-sdn/internal/metrics"
)

// startMetricsLogger periodically logs the metrics snapshot, for deployments
// that don't scrape Prometheus. A non-positive interval disables it.
func startMetricsLogger(ctx context.Context, interval time.Duration, l *slog.Logger, wg *sync.WaitGroup) {
	if interval <= 0 {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s := metrics.Snap()
				l.Info("metrics",
					"frames_decoded", s.FramesDecoded,
					"frames_rejected", s.FramesRejected,
					"frames_sent", s.FramesSent,
					"sniffer_dropped", s.SnifferDropped,
					"exchanges_started", s.ExchangesStarted,
					"exchanges_timed_out", s.ExchangesTimedOut,
					"reconnect_attempts", s.ReconnectAttempts,
					"errors", s.Errors,
				)
			}
		}
	}()
}
