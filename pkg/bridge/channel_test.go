package bridge

import (
	"bytes"
	"errors"
)

var errBusFault = errors.New("bus fault")

// testChannel records every transfer and loops written bytes back to reads.
// The transfer numbered shortWriteAt/shortReadAt (0-based) moves one byte less
// than requested and returns shortErr.
type testChannel struct {
	closed       bool
	writes       [][]byte
	reads        []int
	rx           bytes.Buffer
	shortWriteAt int
	shortReadAt  int
	shortErr     error
}

func newTestChannel() *testChannel {
	return &testChannel{shortWriteAt: -1, shortReadAt: -1}
}

func (c *testChannel) IsOpen() bool {
	return !c.closed
}

func (c *testChannel) Write(p []byte) (int, error) {
	n, err := len(p), error(nil)
	if len(c.writes) == c.shortWriteAt {
		n, err = len(p)-1, c.shortErr
	}
	c.writes = append(c.writes, append([]byte(nil), p[:n]...))
	c.rx.Write(p[:n])
	return n, err
}

func (c *testChannel) Read(p []byte) (int, error) {
	want, err := p, error(nil)
	if len(c.reads) == c.shortReadAt {
		want, err = p[:len(p)-1], c.shortErr
	}
	c.reads = append(c.reads, len(p))
	n, _ := c.rx.Read(want)
	return n, err
}

func (c *testChannel) inject(b ...byte) *testChannel {
	c.rx.Write(b)
	return c
}

func (c *testChannel) transfers() int {
	return len(c.writes) + len(c.reads)
}
