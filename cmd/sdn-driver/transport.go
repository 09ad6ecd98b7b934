package main

import (
	"fmt"

	"github.com/cyberax/somfy-sdn/internal/bus"
	"github.com/cyberax/somfy-sdn/internal/channel"
)

// channelFactory builds the ChannelFactory bus.Reconnecting uses to open
// (and, after a drop, reopen) the physical transport.
func channelFactory(cfg *appConfig) (bus.ChannelFactory, error) {
	switch cfg.transport {
	case "serial":
		return func() channel.Channel {
			return channel.NewSerialChannel(cfg.serialDev)
		}, nil
	case "tcp":
		return func() channel.Channel {
			return channel.NewTCPChannel(cfg.busAddr)
		}, nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", cfg.transport)
	}
}
