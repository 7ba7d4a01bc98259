package bridge

// Channel is the synchronous byte channel towards the bridge.
// Every Write or Read is one physical transfer and blocks until it completes.
// A count smaller than the buffer length signals failure; it is never a cue
// to continue with the remaining bytes.
type Channel interface {
	IsOpen() bool
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// Transaction holds the bytes of one operation.
type Transaction struct {
	Sent     []byte
	Received []byte
}
