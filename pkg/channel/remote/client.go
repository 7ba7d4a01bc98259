// Package remote proxies a bridge channel over a packet transport.
package remote

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robotalks/fpgabridge/pkg/comm"
)

// ErrClosed is returned by transfers after Close.
var ErrClosed = errors.New("remote channel closed")

// Channel implements bridge.Channel by forwarding each transfer to a Server.
type Channel struct {
	conn   comm.PacketConn
	lock   sync.Mutex
	closed bool
}

// NewChannel creates a Channel over conn.
func NewChannel(conn comm.PacketConn) *Channel {
	return &Channel{conn: conn}
}

// IsOpen queries whether the server side channel is open. Each call is a
// status round trip, the result is not cached.
func (c *Channel) IsOpen() bool {
	rep, err := c.do(&Request{Op: OpStatus})
	return err == nil && rep.Open
}

// Write implements bridge.Channel.
func (c *Channel) Write(p []byte) (int, error) {
	rep, err := c.do(&Request{Op: OpWrite, Data: p})
	if err != nil {
		return 0, err
	}
	n := rep.Count
	if n > len(p) {
		n = len(p)
	}
	return n, replyError(rep)
}

// Read implements bridge.Channel.
func (c *Channel) Read(p []byte) (int, error) {
	rep, err := c.do(&Request{Op: OpRead, Length: len(p)})
	if err != nil {
		return 0, err
	}
	return copy(p, rep.Data), replyError(rep)
}

// Close closes the transport.
func (c *Channel) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Channel) do(req *Request) (*Reply, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.conn.WritePacket(req.Marshal()); err != nil {
		return nil, fmt.Errorf("remote %s: %w", req.Op, err)
	}
	pkt, err := c.conn.ReadPacket()
	if err != nil {
		return nil, fmt.Errorf("remote %s: %w", req.Op, err)
	}
	var rep Reply
	if err := rep.Unmarshal(pkt); err != nil {
		return nil, fmt.Errorf("remote %s: %w", req.Op, err)
	}
	return &rep, nil
}

// RemoteError is an error reported by the server side channel.
type RemoteError struct {
	Message string
}

// Error implements error.
func (e *RemoteError) Error() string {
	return "remote: " + e.Message
}

func replyError(rep *Reply) error {
	if rep.Error == "" {
		return nil
	}
	return &RemoteError{Message: rep.Error}
}
