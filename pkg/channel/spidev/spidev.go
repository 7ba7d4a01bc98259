// Package spidev opens Linux spidev character devices as bridge channels.
package spidev

import (
	"fmt"

	"github.com/robotalks/fpgabridge/pkg/channel"
)

// Config configures the SPI bus. Zero fields keep the device settings.
type Config struct {
	// Path of the device, e.g. /dev/spidev0.0.
	Path string
	// Mode is the SPI mode 0-3.
	Mode int
	// BitsPerWord defaults to 8 in the kernel.
	BitsPerWord int
	// SpeedHz is the maximum clock rate.
	SpeedHz uint32
}

// Open opens the device and applies the configuration.
// Reads and writes on the returned channel are half-duplex spidev transfers.
func Open(conf Config) (*channel.Stream, error) {
	if conf.Mode < 0 || conf.Mode > 3 {
		return nil, fmt.Errorf("invalid SPI mode %d", conf.Mode)
	}
	if conf.BitsPerWord < 0 || conf.BitsPerWord > 32 {
		return nil, fmt.Errorf("invalid SPI bits per word %d", conf.BitsPerWord)
	}
	dev, err := openDevice(conf)
	if err != nil {
		return nil, fmt.Errorf("open spidev %q: %w", conf.Path, err)
	}
	return channel.NewStream(dev), nil
}
