package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cyberax/somfy-sdn/internal/bus"
	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/cyberax/somfy-sdn/internal/metrics"
)

func main() {
	cfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("sdn-driver %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if cfg == nil {
		os.Exit(2)
	}

	l := setupLogger(cfg.logFormat, cfg.logLevel)
	metrics.InitBuildInfo(version, commit, date)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	hub := bus.NewHub()
	dispatch := bus.NewSnifferDispatch(ctx, 1024, hub)
	defer dispatch.Close()

	factory, err := channelFactory(cfg)
	if err != nil {
		l.Error("transport_config_error", "error", err)
		cancel()
		os.Exit(1)
	}

	backoff := bus.NewBackoff(cfg.maxReconnectWait)
	conn := bus.NewReconnecting(factory, dispatch.Dispatch, backoff)
	if err := conn.Start(ctx); err != nil {
		l.Error("bus_start_failed", "error", err)
		cancel()
		os.Exit(1)
	}
	metrics.SetReadinessFunc(func() bool { return true })

	startMetricsLogger(ctx, cfg.logMetricsEvery, l, &wg)

	var srv *sniffServer
	var mdnsCleanup func()
	if cfg.sniffListenAddr != "" {
		srv = newSniffServer(hub)
		addr, err := srv.Start(ctx, cfg.sniffListenAddr, cfg.sniffPolicy, cfg.sniffBuffer)
		if err != nil {
			l.Error("sniff_listen_failed", "error", err)
			cancel()
			os.Exit(1)
		}
		l.Info("sniff_listening", "addr", addr)

		if port, err := portFromAddr(addr.String()); err == nil {
			cleanup, err := startMDNS(ctx, cfg, port)
			if err != nil {
				l.Warn("mdns_register_failed", "error", err)
			} else {
				mdnsCleanup = cleanup
			}
		}
	} else if cfg.mdnsEnable {
		l.Warn("mdns_enabled_without_sniff_listener")
	}

	var metricsSrv interface{ Close() error }
	if cfg.metricsAddr != "" {
		metricsSrv = metrics.StartHTTP(cfg.metricsAddr)
	}

	l.Info("sdn_driver_started", "transport", cfg.transport, "version", version)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	l.Info("shutting_down")
	cancel()
	if mdnsCleanup != nil {
		mdnsCleanup()
	}
	if srv != nil {
		srv.Wait()
	}
	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}
	_ = conn.Stop()
	wg.Wait()
}
