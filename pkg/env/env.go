// Package env provides the configuration shared by bridge commands.
package env

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/fpgabridge/pkg/bridge"
	"github.com/robotalks/fpgabridge/pkg/channel"
	"github.com/robotalks/fpgabridge/pkg/channel/remote"
	"github.com/robotalks/fpgabridge/pkg/channel/spidev"
)

// Channel is a bridge channel owned by the command.
type Channel interface {
	bridge.Channel
	io.Closer
}

// Config provides common options to reach the bridge.
type Config struct {
	// Device specifies the control channel. One of
	//   /dev/spidevB.C   local spidev device
	//   loop:            in-memory loopback
	//   tcp://, ws://, wss://, mqtt://  remote bridge daemon
	Device string
	// DataDevice specifies a separate channel for RAM data, optional.
	DataDevice string
	// SpeedHz is the SPI clock for spidev devices, 0 keeps the default.
	SpeedHz uint
	// Mode is the SPI mode for spidev devices.
	Mode int
	// BlockWords is the RAM block word size.
	BlockWords int
	// BootFile is the FPGA bitstream sent before anything else, optional.
	BootFile string
}

var defaultConfig = Config{
	Device:     "/dev/spidev0.0",
	BlockWords: bridge.DefaultRAMBlockWordSize,
}

func init() {
	if val := os.Getenv("BRIDGE_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
	if val := os.Getenv("BRIDGE_DATA_DEVICE"); val != "" {
		defaultConfig.DataDevice = val
	}
	if val := os.Getenv("BRIDGE_BOOT_FILE"); val != "" {
		defaultConfig.BootFile = val
	}
	if val, err := strconv.ParseUint(os.Getenv("BRIDGE_SPEED_HZ"), 10, 32); err == nil {
		defaultConfig.SpeedHz = uint(val)
	}
	if val, err := strconv.Atoi(os.Getenv("BRIDGE_SPI_MODE")); err == nil {
		defaultConfig.Mode = val
	}
	if val, err := strconv.Atoi(os.Getenv("BRIDGE_BLOCK_WORDS")); err == nil {
		defaultConfig.BlockWords = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Bridge control channel: spidev path, loop: or remote URL.")
	flag.StringVar(&defaultConfig.DataDevice, "data-device", defaultConfig.DataDevice, "Separate channel for RAM data.")
	flag.UintVar(&defaultConfig.SpeedHz, "speed", defaultConfig.SpeedHz, "SPI clock in Hz.")
	flag.IntVar(&defaultConfig.Mode, "mode", defaultConfig.Mode, "SPI mode (0-3).")
	flag.IntVar(&defaultConfig.BlockWords, "block-words", defaultConfig.BlockWords, "RAM block word size.")
	flag.StringVar(&defaultConfig.BootFile, "boot", defaultConfig.BootFile, "FPGA bitstream to load on start.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewSession creates a Session with configured block size.
func (c *Config) NewSession(opts ...bridge.Option) (*bridge.Session, error) {
	if c.BlockWords < 1 {
		return nil, fmt.Errorf("%w: %d", bridge.ErrInvalidBlockSize, c.BlockWords)
	}
	return bridge.New(append([]bridge.Option{bridge.WithRAMBlockWordSize(c.BlockWords)}, opts...)...), nil
}

// Channels holds the opened control and data channels.
// Data is Ctl when no data device is configured.
type Channels struct {
	Ctl  Channel
	Data Channel
}

// Close closes all channels.
func (c *Channels) Close() error {
	err := c.Ctl.Close()
	if c.Data != c.Ctl {
		if dataErr := c.Data.Close(); err == nil {
			err = dataErr
		}
	}
	return err
}

// Open opens the configured channels.
func (c *Config) Open() (*Channels, error) {
	ctl, err := c.OpenChannel(c.Device)
	if err != nil {
		return nil, err
	}
	chs := &Channels{Ctl: ctl, Data: ctl}
	if c.DataDevice != "" && c.DataDevice != c.Device {
		if chs.Data, err = c.OpenChannel(c.DataDevice); err != nil {
			ctl.Close()
			return nil, err
		}
	}
	return chs, nil
}

// OpenChannel opens a single channel from its spec.
func (c *Config) OpenChannel(spec string) (Channel, error) {
	switch {
	case spec == "":
		return nil, fmt.Errorf("no device specified")
	case spec == "loop:" || spec == "loop":
		glog.V(1).Info("using loopback channel")
		return channel.NewLoopback(), nil
	case strings.Contains(spec, "://"):
		return remote.Dial(withClientID(spec))
	default:
		return spidev.Open(spidev.Config{
			Path:    spec,
			Mode:    c.Mode,
			SpeedHz: uint32(c.SpeedHz),
		})
	}
}

// withClientID adds a default client-id to MQTT URLs.
func withClientID(spec string) string {
	u, err := url.Parse(spec)
	if err != nil || (u.Scheme != "mqtt" && u.Scheme != "ssl" && u.Scheme != "tls") {
		return spec
	}
	query := u.Query()
	if query.Get("client-id") == "" {
		query.Set("client-id", ClientID("client"))
		u.RawQuery = query.Encode()
	}
	return u.String()
}
