package bridge

import "encoding/binary"

// WriteEnableFlag is set in the first address byte to request write access.
const WriteEnableFlag byte = 0x80

// EncodeAddress serializes addr big-endian. With writeEnable the top bit of
// the first byte is forced to 1.
func EncodeAddress(addr uint32, writeEnable bool) (b [4]byte) {
	binary.BigEndian.PutUint32(b[:], addr)
	if writeEnable {
		b[0] |= WriteEnableFlag
	}
	return
}

// DecodeAddress is the inverse of EncodeAddress for read setups.
func DecodeAddress(b [4]byte) uint32 {
	return binary.BigEndian.Uint32(b[:])
}

// SetupFrame builds the SetupRAMAccess frame for addr.
func SetupFrame(addr uint32, writeEnable bool) Frame {
	param := EncodeAddress(addr, writeEnable)
	return EncodeCommand(CmdSetupRAMAccess, param[:])
}
