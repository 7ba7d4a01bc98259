// Package bridge implements the command/data framing layer of the FPGA bridge.
package bridge

// The bridge is reached over a synchronous, full-duplex byte channel
// (typically SPI). Two kinds of traffic exist:
//
// Commands are fixed 5-byte frames: one opcode byte followed by 4 parameter
// bytes. Read commands carry bit 7 in the opcode and are followed by a second
// transfer reading a 5-byte response frame.
//
// RAM access is two-phase. A SetupRAMAccess frame carries the big-endian start
// address, with bit 7 of the first address byte set to request write access.
// Then any number of 16-bit big-endian words are streamed, grouped into blocks
// of a configurable number of words per physical transfer.
//
// The layer does not validate the prepare-then-transfer ordering, it doesn't
// retry and it keeps no resumption state. A short write or read is reported
// as an error to the caller and aborts the remaining blocks.
