package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelNotOpen indicates the channel is not open for transfers.
	ErrChannelNotOpen = errors.New("channel not open")
	// ErrShortWrite indicates the channel accepted fewer bytes than sent.
	ErrShortWrite = errors.New("short write")
	// ErrShortRead indicates the channel returned fewer bytes than requested.
	ErrShortRead = errors.New("short read")
	// ErrIncomplete indicates a frame or firmware image was not transferred
	// completely.
	ErrIncomplete = errors.New("incomplete")
	// ErrInvalidBlockSize indicates a RAM block word size less than 1.
	ErrInvalidBlockSize = errors.New("invalid RAM block word size")
	// ErrInvalidWordCount indicates a negative RAM word count.
	ErrInvalidWordCount = errors.New("invalid RAM word count")
)

// TransferError reports a failed physical transfer with the byte counts.
type TransferError struct {
	// Step names the protocol step, e.g. "send command".
	Step string
	// Kind is ErrShortWrite or ErrShortRead.
	Kind error
	// Block is the 0-based block index for RAM block transfers, -1 otherwise.
	Block int
	Want  int
	Got   int
	// Err is the error returned by the channel, if any.
	Err error
}

// Error implements error.
func (e *TransferError) Error() string {
	msg := fmt.Sprintf("%s: %v (%d of %d bytes)", e.Step, e.Kind, e.Got, e.Want)
	if e.Block >= 0 {
		msg = fmt.Sprintf("%s: %v in block %d (%d of %d bytes)", e.Step, e.Kind, e.Block, e.Got, e.Want)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *TransferError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the channel error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// FrameError indicates a malformed frame.
type FrameError struct {
	Len int
}

// Error implements error.
func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %v: got %d bytes, want %d", ErrIncomplete, e.Len, FrameLen)
}

// Is matches ErrIncomplete.
func (e *FrameError) Is(target error) bool {
	return target == ErrIncomplete
}

// IOError reports an incomplete firmware boot transfer.
type IOError struct {
	Name string
	Want int
	Got  int
	Err  error
}

// Error implements error.
func (e *IOError) Error() string {
	name := "firmware"
	if e.Name != "" {
		name = fmt.Sprintf("boot file %q", e.Name)
	}
	msg := fmt.Sprintf("%s %v: sent %d of %d bytes", name, ErrIncomplete, e.Got, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrIncomplete.
func (e *IOError) Is(target error) bool {
	return target == ErrIncomplete
}

// Unwrap returns the channel error.
func (e *IOError) Unwrap() error {
	return e.Err
}
