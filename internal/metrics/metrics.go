package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus counters
var (
	FramesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_frames_decoded_total",
		Help: "Total SDN frames extracted from the bus by the recognizer.",
	})
	FramesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_frames_rejected_total",
		Help: "Total candidate regions whose checksum matched but try_parse rejected (ghost/garbled frames).",
	})
	FramesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_frames_sent_total",
		Help: "Total SDN frames written to the bus by exchanges.",
	})
	SnifferDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_sniffer_dropped_total",
		Help: "Total sniffed frames dropped because the sniffer dispatch buffer or an observer's queue was full.",
	})
	HubActiveObservers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sdn_sniff_observers",
		Help: "Current number of subscribed sniff observers.",
	})
	ExchangesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_exchanges_started_total",
		Help: "Total foreground exchanges initiated.",
	})
	ExchangesTimedOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_exchanges_timed_out_total",
		Help: "Total foreground exchanges that hit the communication deadline.",
	})
	ReconnectAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_reconnect_attempts_total",
		Help: "Total channel reconnect attempts made by the supervisor.",
	})
	BusQuietViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sdn_bus_quiet_violations_total",
		Help: "Canary counter: should never increment. Bumped if an exchange writes before honoring bus-quiet-time.",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build metadata (value is always 1).",
	}, []string{"version", "commit", "date"})
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "errors_total",
		Help: "Error counters by subsystem.",
	}, []string{"where"})

	readinessMu sync.RWMutex
	readinessFn func() bool
)

// Error label constants (stable label values to bound cardinality)
const (
	ErrChannelRead  = "channel_read"
	ErrChannelWrite = "channel_write"
	ErrReconnect    = "reconnect"
)

// StartHTTP serves Prometheus metrics at /metrics on its own mux.
func StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if IsReady() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready\n"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready\n"))
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		logging.L().Info("metrics_listen", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L().Error("metrics_http_error", "error", err)
		}
	}()
	return srv
}

// Local mirrored counters for periodic non-Prometheus logging.
var (
	localDecoded    uint64
	localRejected   uint64
	localSent       uint64
	localSniffDrop  uint64
	localExchanges  uint64
	localTimeouts   uint64
	localReconnects uint64
	localErrors     uint64
)

// Snapshot is a cheap copy of local counters.
type Snapshot struct {
	FramesDecoded     uint64
	FramesRejected    uint64
	FramesSent        uint64
	SnifferDropped    uint64
	ExchangesStarted  uint64
	ExchangesTimedOut uint64
	ReconnectAttempts uint64
	Errors            uint64
}

func Snap() Snapshot {
	return Snapshot{
		FramesDecoded:     atomic.LoadUint64(&localDecoded),
		FramesRejected:    atomic.LoadUint64(&localRejected),
		FramesSent:        atomic.LoadUint64(&localSent),
		SnifferDropped:    atomic.LoadUint64(&localSniffDrop),
		ExchangesStarted:  atomic.LoadUint64(&localExchanges),
		ExchangesTimedOut: atomic.LoadUint64(&localTimeouts),
		ReconnectAttempts: atomic.LoadUint64(&localReconnects),
		Errors:            atomic.LoadUint64(&localErrors),
	}
}

func IncFramesDecoded() {
	FramesDecoded.Inc()
	atomic.AddUint64(&localDecoded, 1)
}

func IncFramesRejected() {
	FramesRejected.Inc()
	atomic.AddUint64(&localRejected, 1)
}

func IncFramesSent() {
	FramesSent.Inc()
	atomic.AddUint64(&localSent, 1)
}

func IncSnifferDropped() {
	SnifferDropped.Inc()
	atomic.AddUint64(&localSniffDrop, 1)
}

func SetSniffObservers(n int) { HubActiveObservers.Set(float64(n)) }

func IncExchangeStarted() {
	ExchangesStarted.Inc()
	atomic.AddUint64(&localExchanges, 1)
}

func IncExchangeTimedOut() {
	ExchangesTimedOut.Inc()
	atomic.AddUint64(&localTimeouts, 1)
}

func IncReconnectAttempt() {
	ReconnectAttempts.Inc()
	atomic.AddUint64(&localReconnects, 1)
}

func IncBusQuietViolation() { BusQuietViolations.Inc() }

func IncError(label string) {
	Errors.WithLabelValues(label).Inc()
	atomic.AddUint64(&localErrors, 1)
}

// InitBuildInfo sets the build info gauge (should be called once at startup).
func InitBuildInfo(version, commit, date string) {
	BuildInfo.WithLabelValues(version, commit, date).Set(1)
	for _, lbl := range []string{ErrChannelRead, ErrChannelWrite, ErrReconnect} {
		Errors.WithLabelValues(lbl).Add(0)
	}
}

// SetReadinessFunc registers a function used by /ready and IsReady.
func SetReadinessFunc(fn func() bool) { readinessMu.Lock(); readinessFn = fn; readinessMu.Unlock() }

// IsReady invokes the registered readiness function if present.
func IsReady() bool {
	readinessMu.RLock()
	fn := readinessFn
	readinessMu.RUnlock()
	if fn == nil {
		return true
	}
	return fn()
}
