package bridge

import "fmt"

// FrameLen is the length of command and response frames.
const FrameLen = 5

// readFlag is set in the opcode byte of read commands.
const readFlag byte = 0x80

// Command is a bridge opcode.
type Command byte

// Bridge commands.
const (
	CmdReadVersion    Command = 0x00
	CmdReadPcb1       Command = 0x01
	CmdReadPcb2       Command = 0x02
	CmdReadDevice     Command = 0x03
	CmdSetupRAMAccess Command = 0x10
)

// IsRead reports whether the command expects a response frame.
func (c Command) IsRead() bool {
	switch c {
	case CmdReadVersion, CmdReadPcb1, CmdReadPcb2, CmdReadDevice:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (c Command) String() string {
	switch c {
	case CmdReadVersion:
		return "read-version"
	case CmdReadPcb1:
		return "read-pcb1"
	case CmdReadPcb2:
		return "read-pcb2"
	case CmdReadDevice:
		return "read-device"
	case CmdSetupRAMAccess:
		return "setup-ram-access"
	default:
		return fmt.Sprintf("cmd-0x%02x", byte(c))
	}
}

// Frame is a fixed-length command or response frame.
type Frame [FrameLen]byte

// EncodeCommand builds the frame for cmd. Up to 4 bytes of params are copied,
// missing ones are zero and extra ones are ignored.
func EncodeCommand(cmd Command, params []byte) (f Frame) {
	f[0] = byte(cmd)
	if cmd.IsRead() {
		f[0] |= readFlag
	}
	copy(f[1:], params)
	return
}

// DecodeResponse validates a received response frame.
func DecodeResponse(b []byte) (f Frame, err error) {
	if len(b) != FrameLen {
		return f, &FrameError{Len: len(b)}
	}
	copy(f[:], b)
	return f, nil
}

// Opcode returns the opcode byte.
func (f Frame) Opcode() byte {
	return f[0]
}

// Params returns the parameter bytes.
func (f Frame) Params() []byte {
	return f[1:]
}

// Bytes returns the encoded bytes for sending.
func (f Frame) Bytes() []byte {
	b := make([]byte, FrameLen)
	copy(b, f[:])
	return b
}
