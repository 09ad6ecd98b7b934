package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type appConfig struct {
	transport string // "serial" or "tcp"
	serialDev string
	busAddr   string // host:port of an RS-485-over-IP bridge, when transport=tcp

	sniffListenAddr string // optional TCP fanout of sniffed traffic; empty disables
	sniffBuffer     int
	sniffPolicy     string // drop|kick

	logFormat       string
	logLevel        string
	metricsAddr     string
	logMetricsEvery time.Duration

	maxReconnectWait time.Duration

	mdnsEnable bool
	mdnsName   string
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}
	transport := flag.String("transport", "serial", "Bus transport: serial|tcp")
	serialDev := flag.String("serial", "/dev/ttyUSB0", "Serial device path (when --transport=serial, fixed at 4800 8O1 per the SDN wire spec)")
	busAddr := flag.String("bus-addr", "", "host:port of an RS-485-over-IP bridge (when --transport=tcp)")
	sniffListen := flag.String("sniff-listen", "", "TCP listen address for streaming sniffed traffic (e.g., :7890); empty disables")
	sniffBuffer := flag.Int("sniff-buffer", 256, "Per-observer sniff buffer (frames)")
	sniffPolicy := flag.String("sniff-policy", "drop", "Backpressure policy for slow sniff observers: drop|kick")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g., :9100); empty disables")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log metrics counters (for non-Prometheus setups)")
	maxReconnectWait := flag.Duration("max-reconnect-wait", 100*time.Second, "Cap on reconnect backoff")
	mdnsEnable := flag.Bool("mdns-enable", false, "Enable mDNS advertisement of the sniff fanout listener")
	mdnsName := flag.String("mdns-name", "", "mDNS instance name (default sdn-driver-<hostname>)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	setFlags := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = struct{}{} })

	cfg.transport = *transport
	cfg.serialDev = *serialDev
	cfg.busAddr = *busAddr
	cfg.sniffListenAddr = *sniffListen
	cfg.sniffBuffer = *sniffBuffer
	cfg.sniffPolicy = *sniffPolicy
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.logMetricsEvery = *logMetricsEvery
	cfg.maxReconnectWait = *maxReconnectWait
	cfg.mdnsEnable = *mdnsEnable
	cfg.mdnsName = *mdnsName

	if err := applyEnvOverrides(cfg, setFlags); err != nil {
		fmt.Printf("environment override error: %v\n", err)
		return nil, *showVersion
	}
	if err := cfg.validate(); err != nil {
		fmt.Printf("configuration error: %v\n", err)
		return nil, *showVersion
	}
	return cfg, *showVersion
}

// validate performs basic semantic validation of the parsed configuration.
// It does not attempt to open devices or listeners, only checks values/ranges.
func (c *appConfig) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	switch c.transport {
	case "serial", "tcp":
	default:
		return fmt.Errorf("invalid transport: %s", c.transport)
	}
	if c.transport == "tcp" && c.busAddr == "" {
		return errors.New("bus-addr is required when transport=tcp")
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format: %s", c.logFormat)
	}
	switch c.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.logLevel)
	}
	switch c.sniffPolicy {
	case "drop", "kick":
	default:
		return fmt.Errorf("invalid sniff-policy: %s", c.sniffPolicy)
	}
	if c.sniffBuffer <= 0 {
		return fmt.Errorf("sniff-buffer must be > 0 (got %d)", c.sniffBuffer)
	}
	if c.maxReconnectWait <= 0 {
		return errors.New("max-reconnect-wait must be > 0")
	}
	return nil
}

// applyEnvOverrides maps SDN_DRIVER_* environment variables to config fields
// unless a corresponding flag was explicitly set (flags take precedence).
func applyEnvOverrides(c *appConfig, set map[string]struct{}) error {
	var firstErr error
	get := func(k string) (string, bool) { v, ok := os.LookupEnv(k); return strings.TrimSpace(v), ok }

	if _, ok := set["transport"]; !ok {
		if v, ok := get("SDN_DRIVER_TRANSPORT"); ok && v != "" {
			c.transport = v
		}
	}
	if _, ok := set["serial"]; !ok {
		if v, ok := get("SDN_DRIVER_SERIAL"); ok && v != "" {
			c.serialDev = v
		}
	}
	if _, ok := set["bus-addr"]; !ok {
		if v, ok := get("SDN_DRIVER_BUS_ADDR"); ok && v != "" {
			c.busAddr = v
		}
	}
	if _, ok := set["sniff-listen"]; !ok {
		if v, ok := get("SDN_DRIVER_SNIFF_LISTEN"); ok {
			c.sniffListenAddr = v
		}
	}
	if _, ok := set["sniff-buffer"]; !ok {
		if v, ok := get("SDN_DRIVER_SNIFF_BUFFER"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.sniffBuffer = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SDN_DRIVER_SNIFF_BUFFER: %w", err)
			}
		}
	}
	if _, ok := set["sniff-policy"]; !ok {
		if v, ok := get("SDN_DRIVER_SNIFF_POLICY"); ok && v != "" {
			c.sniffPolicy = v
		}
	}
	if _, ok := set["log-format"]; !ok {
		if v, ok := get("SDN_DRIVER_LOG_FORMAT"); ok && v != "" {
			c.logFormat = v
		}
	}
	if _, ok := set["log-level"]; !ok {
		if v, ok := get("SDN_DRIVER_LOG_LEVEL"); ok && v != "" {
			c.logLevel = v
		}
	}
	if _, ok := set["metrics-addr"]; !ok {
		if v, ok := get("SDN_DRIVER_METRICS"); ok {
			c.metricsAddr = v
		}
	}
	if _, ok := set["log-metrics-interval"]; !ok {
		if v, ok := get("SDN_DRIVER_LOG_METRICS_INTERVAL"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				c.logMetricsEvery = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SDN_DRIVER_LOG_METRICS_INTERVAL: %w", err)
			}
		}
	}
	if _, ok := set["max-reconnect-wait"]; !ok {
		if v, ok := get("SDN_DRIVER_MAX_RECONNECT_WAIT"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				c.maxReconnectWait = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SDN_DRIVER_MAX_RECONNECT_WAIT: %w", err)
			}
		}
	}
	if _, ok := set["mdns-enable"]; !ok {
		if v, ok := get("SDN_DRIVER_MDNS_ENABLE"); ok && v != "" {
			switch strings.ToLower(v) {
			case "1", "true", "yes", "on":
				c.mdnsEnable = true
			case "0", "false", "no", "off":
				c.mdnsEnable = false
			}
		}
	}
	if _, ok := set["mdns-name"]; !ok {
		if v, ok := get("SDN_DRIVER_MDNS_NAME"); ok && v != "" {
			c.mdnsName = v
		}
	}
	return firstErr
}
