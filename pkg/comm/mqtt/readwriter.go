package mqtt

import (
	"io"
	"sync"
)

// ReadWriter implements comm.PacketConn over a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh  chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, 16),
		done:     make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForClient sets topics using default convention for a bridge client:
// SubTopic = name/reply
// PubTopic = name/request
func (p *ReadWriter) ForClient(name string) *ReadWriter {
	return p.WithTopics(name+"/reply", name+"/request")
}

// ForServer sets topics using default convention for the bridge daemon:
// SubTopic = name/request
// PubTopic = name/reply
func (p *ReadWriter) ForServer(name string) *ReadWriter {
	return p.WithTopics(name+"/request", name+"/reply")
}

// Start subscribes SubTopic.
func (p *ReadWriter) Start() error {
	return p.Queue.Sub(p.SubTopic, p.handleMsg)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return p.Queue.Pub(p.PubTopic, pkt)
}

// Close unsubscribes and unblocks pending reads.
func (p *ReadWriter) Close() (err error) {
	p.closeOnce.Do(func() {
		close(p.done)
		err = p.Queue.Unsub(p.SubTopic)
	})
	return
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.done:
	}
}
