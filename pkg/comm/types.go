// Package comm defines packet transports used to reach a remote bridge.
package comm

import "errors"

// ErrPacketTooLarge indicates a packet exceeds MaxPacketSize.
var ErrPacketTooLarge = errors.New("packet too large")

// MaxPacketSize bounds a single packet. It must hold the largest transfer,
// e.g. a full FPGA bitstream.
const MaxPacketSize = 64 << 20

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// PacketConn is a PacketReadWriter that can be closed.
type PacketConn interface {
	PacketReadWriter
	Close() error
}
