package main

import (
	"testing"
	"time"
)

func baseConfig() *appConfig {
	return &appConfig{
		transport:        "serial",
		serialDev:        "/dev/null",
		sniffBuffer:      64,
		sniffPolicy:      "drop",
		logFormat:        "text",
		logLevel:         "info",
		maxReconnectWait: 100 * time.Second,
	}
}

func TestConfigValidate_OK(t *testing.T) {
	c := baseConfig()
	if err := c.validate(); err != nil {
		t.Fatalf("expected ok got %v", err)
	}
}

func TestConfigValidate_TCPRequiresBusAddr(t *testing.T) {
	c := baseConfig()
	c.transport = "tcp"
	if err := c.validate(); err == nil {
		t.Fatal("expected error for tcp transport without bus-addr")
	}
	c.busAddr = "10.0.0.5:5555"
	if err := c.validate(); err != nil {
		t.Fatalf("expected ok got %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*appConfig)
	}{
		{"badTransport", func(c *appConfig) { c.transport = "usb" }},
		{"badFormat", func(c *appConfig) { c.logFormat = "xx" }},
		{"badLevel", func(c *appConfig) { c.logLevel = "nope" }},
		{"badSniffPolicy", func(c *appConfig) { c.sniffPolicy = "x" }},
		{"badSniffBuffer", func(c *appConfig) { c.sniffBuffer = 0 }},
		{"badMaxReconnectWait", func(c *appConfig) { c.maxReconnectWait = 0 }},
	}
	for _, tc := range tests {
		c := baseConfig()
		tc.mod(c)
		if err := c.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
