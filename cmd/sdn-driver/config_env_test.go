package main

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvOverrides_Basic(t *testing.T) {
	base := baseConfig()

	os.Setenv("SDN_DRIVER_TRANSPORT", "tcp")
	os.Setenv("SDN_DRIVER_BUS_ADDR", "10.0.0.9:4000")
	os.Setenv("SDN_DRIVER_MDNS_ENABLE", "true")
	os.Setenv("SDN_DRIVER_LOG_METRICS_INTERVAL", "5s")
	t.Cleanup(func() {
		os.Unsetenv("SDN_DRIVER_TRANSPORT")
		os.Unsetenv("SDN_DRIVER_BUS_ADDR")
		os.Unsetenv("SDN_DRIVER_MDNS_ENABLE")
		os.Unsetenv("SDN_DRIVER_LOG_METRICS_INTERVAL")
	})

	if err := applyEnvOverrides(base, map[string]struct{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.transport != "tcp" {
		t.Fatalf("expected transport override, got %s", base.transport)
	}
	if base.busAddr != "10.0.0.9:4000" {
		t.Fatalf("expected busAddr override, got %s", base.busAddr)
	}
	if !base.mdnsEnable {
		t.Fatal("expected mdnsEnable true")
	}
	if base.logMetricsEvery != 5*time.Second {
		t.Fatalf("expected logMetricsEvery 5s got %v", base.logMetricsEvery)
	}
}

func TestApplyEnvOverrides_FlagPrecedence(t *testing.T) {
	base := baseConfig()
	base.transport = "serial"
	os.Setenv("SDN_DRIVER_TRANSPORT", "tcp")
	t.Cleanup(func() { os.Unsetenv("SDN_DRIVER_TRANSPORT") })

	if err := applyEnvOverrides(base, map[string]struct{}{"transport": {}}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if base.transport != "serial" {
		t.Fatalf("expected transport unchanged serial, got %s", base.transport)
	}
}

func TestApplyEnvOverrides_BadInt(t *testing.T) {
	base := baseConfig()
	os.Setenv("SDN_DRIVER_SNIFF_BUFFER", "notint")
	t.Cleanup(func() { os.Unsetenv("SDN_DRIVER_SNIFF_BUFFER") })
	if err := applyEnvOverrides(base, map[string]struct{}{}); err == nil {
		t.Fatal("expected error for bad integer")
	}
}

func TestApplyEnvOverrides_BadDuration(t *testing.T) {
	base := baseConfig()
	os.Setenv("SDN_DRIVER_MAX_RECONNECT_WAIT", "notaduration")
	t.Cleanup(func() { os.Unsetenv("SDN_DRIVER_MAX_RECONNECT_WAIT") })
	if err := applyEnvOverrides(base, map[string]struct{}{}); err == nil {
		t.Fatal("expected error for bad duration")
	}
}
