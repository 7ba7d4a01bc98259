package channel

import (
	"bytes"
	"sync"
)

// Loopback is an in-memory channel: written bytes are read back in order.
// It simulates a bridge echoing the bus and supports short transfer
// injection.
type Loopback struct {
	// WriteLimit caps the bytes accepted per Write when > 0.
	WriteLimit int
	// ReadLimit caps the bytes returned per Read when > 0.
	ReadLimit int

	lock      sync.Mutex
	buf       bytes.Buffer
	closed    bool
	transfers []int
}

// NewLoopback creates an open Loopback.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// IsOpen implements bridge.Channel.
func (l *Loopback) IsOpen() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return !l.closed
}

// Write implements bridge.Channel.
func (l *Loopback) Write(p []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	if l.WriteLimit > 0 && len(p) > l.WriteLimit {
		p = p[:l.WriteLimit]
	}
	l.transfers = append(l.transfers, len(p))
	return l.buf.Write(p)
}

// Read implements bridge.Channel.
// Reading more than buffered returns what is available.
func (l *Loopback) Read(p []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	if l.ReadLimit > 0 && len(p) > l.ReadLimit {
		p = p[:l.ReadLimit]
	}
	l.transfers = append(l.transfers, -len(p))
	if l.buf.Len() == 0 {
		return 0, nil
	}
	return l.buf.Read(p)
}

// Inject queues bytes to be read, as if sent by the bridge.
func (l *Loopback) Inject(b []byte) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.buf.Write(b)
}

// Buffered returns the number of bytes waiting to be read.
func (l *Loopback) Buffered() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.buf.Len()
}

// Transfers returns the sizes of all transfers so far, writes are positive
// and reads negative.
func (l *Loopback) Transfers() []int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]int(nil), l.transfers...)
}

// Close implements io.Closer.
func (l *Loopback) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.closed = true
	return nil
}
