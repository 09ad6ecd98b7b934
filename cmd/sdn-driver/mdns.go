package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/grandcat/zeroconf"
)

const mdnsServiceType = "_somfy-sdn._tcp"

// startMDNS advertises the sniff fanout listener over mDNS so LAN tools can
// discover it without a hardcoded address. A no-op if cfg.mdnsEnable is
// false or the sniff listener itself is disabled.
func startMDNS(ctx context.Context, cfg *appConfig, port int) (func(), error) {
	if !cfg.mdnsEnable {
		return func() {}, nil
	}

	instance := cfg.mdnsName
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		instance = "sdn-driver-" + host
	}

	meta := []string{
		"transport=" + cfg.transport,
		"version=" + version,
	}
	server, err := zeroconf.Register(instance, mdnsServiceType, "local.", port, meta, nil)
	if err != nil {
		return nil, fmt.Errorf("mdns register: %w", err)
	}
	logging.L().Info("mdns_advertised", "instance", instance, "service", mdnsServiceType, "port", port)

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()
	return func() { server.Shutdown() }, nil
}

// portFromAddr extracts the numeric port out of a "host:port" or ":port"
// listen address, for passing to zeroconf.Register.
func portFromAddr(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
