package channel

import (
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by transfers on a closed channel.
var ErrClosed = errors.New("channel closed")

// Stream adapts an io.ReadWriteCloser as a bridge channel.
// Each Write and Read is passed through as exactly one call, so
// a short count of the underlying device surfaces unchanged.
type Stream struct {
	rwc    io.ReadWriteCloser
	lock   sync.RWMutex
	closed bool
}

// NewStream wraps rwc, the stream is open until Close.
func NewStream(rwc io.ReadWriteCloser) *Stream {
	return &Stream{rwc: rwc}
}

// IsOpen implements bridge.Channel.
func (s *Stream) IsOpen() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return !s.closed
}

// Write implements bridge.Channel.
func (s *Stream) Write(p []byte) (int, error) {
	if !s.IsOpen() {
		return 0, ErrClosed
	}
	return s.rwc.Write(p)
}

// Read implements bridge.Channel.
func (s *Stream) Read(p []byte) (int, error) {
	if !s.IsOpen() {
		return 0, ErrClosed
	}
	return s.rwc.Read(p)
}

// Close implements io.Closer.
func (s *Stream) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rwc.Close()
}
